package repository

import (
	"context"

	"github.com/akinalp/vitrin/models"
)

// CouponRepository, kupon CRUD operasyonlarını tanımlar.
type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	GetByID(ctx context.Context, id string) (*models.Coupon, error)
	GetAll(ctx context.Context) ([]*models.Coupon, error)
	Update(ctx context.Context, coupon *models.Coupon) error
	Delete(ctx context.Context, id string) error
}
