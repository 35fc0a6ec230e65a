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

// sqliteImageRepo, ImageRepository interface'inin SQLite implementasyonu.
type sqliteImageRepo struct {
	db database.TxQuerier
}

// NewSQLiteImageRepo, constructor — interface döner.
func NewSQLiteImageRepo(db database.TxQuerier) ImageRepository {
	return &sqliteImageRepo{db: db}
}

func (r *sqliteImageRepo) Create(ctx context.Context, image *models.Image) error {
	image.ID = uuid.NewString()
	image.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO images (id, owner_type, owner_id, file_name, url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		image.ID, image.OwnerType, image.OwnerID, image.FileName, image.URL, image.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create image record: %w", err)
	}

	return nil
}

func (r *sqliteImageRepo) GetByID(ctx context.Context, id string) (*models.Image, error) {
	query := `SELECT id, owner_type, owner_id, file_name, url, created_at FROM images WHERE id = ?`

	img := &models.Image{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&img.ID, &img.OwnerType, &img.OwnerID, &img.FileName, &img.URL, &img.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return img, nil
}

func (r *sqliteImageRepo) ListByOwner(ctx context.Context, ownerType models.ImageOwnerType, ownerID string) ([]models.Image, error) {
	return loadImages(ctx, r.db, ownerType, ownerID)
}

func (r *sqliteImageRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
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
