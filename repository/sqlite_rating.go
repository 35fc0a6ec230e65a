package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/vitrin/database"
	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/google/uuid"
)

// sqliteRatingRepo, RatingRepository interface'inin SQLite implementasyonu.
//
// conn: transaction başlatmak için root bağlantı (InTx dışında nil olabilir).
// q: aktif sorgu hedefi — normal akışta *sql.DB, InTx içinde *sql.Tx.
type sqliteRatingRepo struct {
	conn *sql.DB
	q    database.TxQuerier
}

// NewSQLiteRatingRepo, constructor — interface döner.
func NewSQLiteRatingRepo(conn *sql.DB) RatingRepository {
	return &sqliteRatingRepo{conn: conn, q: conn}
}

// InTx, fn'i tek bir transaction'a bağlı repo kopyasıyla çalıştırır.
// İç içe InTx çağrısı desteklenmez — mevcut tasarımda gerek yok.
func (r *sqliteRatingRepo) InTx(ctx context.Context, fn func(RatingRepository) error) error {
	return database.WithTx(ctx, r.conn, func(tx *sql.Tx) error {
		return fn(&sqliteRatingRepo{conn: r.conn, q: tx})
	})
}

func (r *sqliteRatingRepo) ProductExists(ctx context.Context, productID string) (bool, error) {
	var one int
	err := r.q.QueryRowContext(ctx,
		`SELECT 1 FROM products WHERE id = ?`, productID).Scan(&one)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}

	return true, nil
}

func (r *sqliteRatingRepo) GetByProductAndUser(ctx context.Context, productID, userID string) (*models.Rating, error) {
	query := `
		SELECT id, product_id, posted_by, star, created_at, updated_at
		FROM ratings WHERE product_id = ? AND posted_by = ?`

	rt := &models.Rating{}
	err := r.q.QueryRowContext(ctx, query, productID, userID).Scan(
		&rt.ID, &rt.ProductID, &rt.PostedBy, &rt.Star, &rt.CreatedAt, &rt.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}

	return rt, nil
}

// UpdateStar, (product, owner) eşleşmesiyle star değerini yerinde günceller.
// Etkilenen satır sayısını döner — 0, kaydın bu arada silindiği anlamına gelir.
func (r *sqliteRatingRepo) UpdateStar(ctx context.Context, productID, userID string, star int) (int64, error) {
	result, err := r.q.ExecContext(ctx,
		`UPDATE ratings SET star = ?, updated_at = ? WHERE product_id = ? AND posted_by = ?`,
		star, time.Now().UTC(), productID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to update rating: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

func (r *sqliteRatingRepo) Insert(ctx context.Context, rating *models.Rating) error {
	rating.ID = uuid.NewString()
	now := time.Now().UTC()
	rating.CreatedAt = now
	rating.UpdatedAt = now

	query := `
		INSERT INTO ratings (id, product_id, posted_by, star, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.q.ExecContext(ctx, query,
		rating.ID, rating.ProductID, rating.PostedBy, rating.Star,
		rating.CreatedAt, rating.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rating: %w", err)
	}

	return nil
}

func (r *sqliteRatingRepo) ListByProduct(ctx context.Context, productID string) ([]models.Rating, error) {
	query := `
		SELECT id, product_id, posted_by, star, created_at, updated_at
		FROM ratings WHERE product_id = ? ORDER BY created_at ASC`

	rows, err := r.q.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	ratings := []models.Rating{}
	for rows.Next() {
		var rt models.Rating
		if err := rows.Scan(&rt.ID, &rt.ProductID, &rt.PostedBy, &rt.Star,
			&rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating row: %w", err)
		}
		ratings = append(ratings, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rating rows: %w", err)
	}

	return ratings, nil
}

func (r *sqliteRatingRepo) SetTotalRating(ctx context.Context, productID string, totalRating int) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE products SET total_rating = ?, updated_at = ? WHERE id = ?`,
		totalRating, time.Now().UTC(), productID)
	if err != nil {
		return fmt.Errorf("failed to set total rating: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return pkg.ErrNotFound
	}

	return nil
}
