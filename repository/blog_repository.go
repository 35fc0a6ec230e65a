package repository

import (
	"context"

	"github.com/akinalp/vitrin/models"
)

// BlogRepository, blog veritabanı işlemleri için interface.
//
// GetByID, blogu tepki kümeleri (likes/dislikes) ve görselleriyle yükler.
// IncrementViews, sayaç artışını tek bir atomik UPDATE ile yapar —
// read-modify-write yoktur, eşzamanlı GET'ler sayım kaybetmez.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	GetAll(ctx context.Context) ([]models.Blog, error)
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}
