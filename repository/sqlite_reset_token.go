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

// sqliteResetTokenRepo, PasswordResetRepository'nin SQLite implementasyonu.
type sqliteResetTokenRepo struct {
	db database.TxQuerier
}

// NewSQLiteResetTokenRepo, constructor — interface döner.
func NewSQLiteResetTokenRepo(db database.TxQuerier) PasswordResetRepository {
	return &sqliteResetTokenRepo{db: db}
}

func (r *sqliteResetTokenRepo) Create(ctx context.Context, token *models.PasswordResetToken) error {
	// Tek aktif token kuralı: kullanıcının önceki token'larını sil.
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM password_resets WHERE user_id = ?`, token.UserID); err != nil {
		return fmt.Errorf("failed to invalidate previous reset tokens: %w", err)
	}

	token.ID = uuid.NewString()
	token.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO password_resets (id, user_id, token_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		token.ID, token.UserID, token.TokenHash, token.ExpiresAt, token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	return nil
}

func (r *sqliteResetTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, used_at, created_at
		FROM password_resets WHERE token_hash = ?`

	t := &models.PasswordResetToken{}
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.UsedAt, &t.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}

	return t, nil
}

func (r *sqliteResetTokenRepo) MarkUsed(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE password_resets SET used_at = ? WHERE id = ? AND used_at IS NULL`,
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		// Token bu arada başka bir istek tarafından tüketilmiş.
		return pkg.ErrConflict
	}

	return nil
}
