package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akinalp/vitrin/database"
	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/google/uuid"
)

// sqliteCouponRepo, CouponRepository interface'inin SQLite implementasyonu.
type sqliteCouponRepo struct {
	db database.TxQuerier
}

// NewSQLiteCouponRepo, constructor — interface döner.
func NewSQLiteCouponRepo(db database.TxQuerier) CouponRepository {
	return &sqliteCouponRepo{db: db}
}

func (r *sqliteCouponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	coupon.ID = uuid.NewString()
	coupon.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO coupons (id, name, expiry, discount, created_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		coupon.ID, coupon.Name, coupon.Expiry, coupon.Discount, coupon.CreatedAt,
	)
	if err != nil {
		// Name kolonu UNIQUE — ihlali domain hatasına çevir.
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: coupon name already exists", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

func (r *sqliteCouponRepo) GetByID(ctx context.Context, id string) (*models.Coupon, error) {
	query := `SELECT id, name, expiry, discount, created_at FROM coupons WHERE id = ?`

	c := &models.Coupon{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Expiry, &c.Discount, &c.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return c, nil
}

func (r *sqliteCouponRepo) GetAll(ctx context.Context) ([]*models.Coupon, error) {
	query := `SELECT id, name, expiry, discount, created_at FROM coupons ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer rows.Close()

	coupons := []*models.Coupon{}
	for rows.Next() {
		c := &models.Coupon{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Expiry, &c.Discount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}

	return coupons, rows.Err()
}

func (r *sqliteCouponRepo) Update(ctx context.Context, coupon *models.Coupon) error {
	query := `UPDATE coupons SET name = ?, expiry = ?, discount = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		coupon.Name, coupon.Expiry, coupon.Discount, coupon.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: coupon name already exists", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to update coupon: %w", err)
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

func (r *sqliteCouponRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM coupons WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
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
