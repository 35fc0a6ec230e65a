package repository

import (
	"context"

	"github.com/akinalp/vitrin/models"
)

// ProductRepository, ürün veritabanı işlemleri için interface.
//
// GetByID, ürünü rating ve görsel listeleriyle birlikte yükler —
// API response'ları her zaman tam entity döner.
// List/Count, parse edilmiş ProductQuery ile filtre/sıralama/sayfalama uygular.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, query *models.ProductQuery) ([]models.Product, error)
	Count(ctx context.Context, query *models.ProductQuery) (int, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}
