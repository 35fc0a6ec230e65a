package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/vitrin/database"
	"github.com/akinalp/vitrin/models"
)

// sqliteReactionRepo, ReactionRepository interface'inin SQLite implementasyonu.
//
// conn: transaction başlatmak için root bağlantı.
// q: aktif sorgu hedefi — normal akışta *sql.DB, InTx içinde *sql.Tx.
type sqliteReactionRepo struct {
	conn *sql.DB
	q    database.TxQuerier
}

// NewSQLiteReactionRepo, constructor — interface döner.
func NewSQLiteReactionRepo(conn *sql.DB) ReactionRepository {
	return &sqliteReactionRepo{conn: conn, q: conn}
}

// InTx, fn'i tek bir transaction'a bağlı repo kopyasıyla çalıştırır.
func (r *sqliteReactionRepo) InTx(ctx context.Context, fn func(ReactionRepository) error) error {
	return database.WithTx(ctx, r.conn, func(tx *sql.Tx) error {
		return fn(&sqliteReactionRepo{conn: r.conn, q: tx})
	})
}

func (r *sqliteReactionRepo) BlogExists(ctx context.Context, blogID string) (bool, error) {
	var one int
	err := r.q.QueryRowContext(ctx, `SELECT 1 FROM blogs WHERE id = ?`, blogID).Scan(&one)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check blog existence: %w", err)
	}

	return true, nil
}

func (r *sqliteReactionRepo) Get(ctx context.Context, blogID, userID string) (models.ReactionKind, bool, error) {
	var kind models.ReactionKind
	err := r.q.QueryRowContext(ctx,
		`SELECT kind FROM blog_reactions WHERE blog_id = ? AND user_id = ?`,
		blogID, userID).Scan(&kind)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get reaction: %w", err)
	}

	return kind, true, nil
}

// Set, upsert yapar: satır yoksa ekler, varsa kind'ı değiştirir.
// ON CONFLICT, (blog_id, user_id) PRIMARY KEY'ine dayanır.
func (r *sqliteReactionRepo) Set(ctx context.Context, blogID, userID string, kind models.ReactionKind) error {
	query := `
		INSERT INTO blog_reactions (blog_id, user_id, kind, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(blog_id, user_id) DO UPDATE SET kind = excluded.kind`

	_, err := r.q.ExecContext(ctx, query, blogID, userID, kind, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set reaction: %w", err)
	}

	return nil
}

func (r *sqliteReactionRepo) Delete(ctx context.Context, blogID, userID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM blog_reactions WHERE blog_id = ? AND user_id = ?`, blogID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete reaction: %w", err)
	}

	return nil
}
