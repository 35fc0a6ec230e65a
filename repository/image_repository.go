package repository

import (
	"context"

	"github.com/akinalp/vitrin/models"
)

// ImageRepository, yüklenen görsel kayıtlarını yönetir.
// Dosyanın kendisi diskte durur; burada sadece metadata saklanır.
type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, id string) (*models.Image, error)
	ListByOwner(ctx context.Context, ownerType models.ImageOwnerType, ownerID string) ([]models.Image, error)
	Delete(ctx context.Context, id string) error
}
