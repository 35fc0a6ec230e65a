package services

import (
	"context"
	"fmt"
	"time"

	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/akinalp/vitrin/pkg/cache"
	"github.com/akinalp/vitrin/repository"
	"github.com/akinalp/vitrin/ws"
)

// couponListKey, GetAll cache'inin tek entry'sinin key'i.
// Kupon listesi küçüktür — tek key yeterli, per-kupon cache gerekmez.
const couponListKey = "all"

// CouponService, indirim kuponu iş mantığı interface'i.
//
// GetAll, TTL cache'ten okur — kupon listesi checkout sayfasında her
// yüklemede çekilir ama nadiren değişir. Yazma operasyonları cache'i
// invalidate eder, stale liste en fazla TTL süresi görünür kalır.
type CouponService interface {
	Create(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error)
	GetByID(ctx context.Context, id string) (*models.Coupon, error)
	GetAll(ctx context.Context) ([]*models.Coupon, error)
	Update(ctx context.Context, id string, req *models.UpdateCouponRequest) (*models.Coupon, error)
	Delete(ctx context.Context, id string) error
}

type couponService struct {
	couponRepo repository.CouponRepository
	listCache  *cache.TTLCache[string, []*models.Coupon]
	hub        ws.EventPublisher
}

// NewCouponService, constructor.
// listCache main.go'da oluşturulur ve buraya geçilir — Close() sorumluluğu
// orada kalır (graceful shutdown).
func NewCouponService(
	couponRepo repository.CouponRepository,
	listCache *cache.TTLCache[string, []*models.Coupon],
	hub ws.EventPublisher,
) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		listCache:  listCache,
		hub:        hub,
	}
}

// Create, yeni kupon tanımlar. Name uppercase'e normalize edilir ve UNIQUE'tir.
func (s *couponService) Create(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	coupon := &models.Coupon{
		Name:     req.Name,
		Expiry:   req.Expiry,
		Discount: req.Discount,
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}

	s.listCache.Delete(couponListKey)
	s.hub.BroadcastToAll(ws.Event{Op: ws.OpCouponCreate, Data: coupon})

	return coupon, nil
}

// GetByID, tek kuponu döner (cache'e uğramaz).
func (s *couponService) GetByID(ctx context.Context, id string) (*models.Coupon, error) {
	return s.couponRepo.GetByID(ctx, id)
}

// GetAll, tüm kuponları döner — önce cache, yoksa DB.
func (s *couponService) GetAll(ctx context.Context) ([]*models.Coupon, error) {
	if coupons, ok := s.listCache.Get(couponListKey); ok {
		return coupons, nil
	}

	coupons, err := s.couponRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.listCache.Set(couponListKey, coupons)
	return coupons, nil
}

// Update, kuponu kısmi günceller.
func (s *couponService) Update(ctx context.Context, id string, req *models.UpdateCouponRequest) (*models.Coupon, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		coupon.Name = *req.Name
	}
	if req.Expiry != nil {
		coupon.Expiry = *req.Expiry
	}
	if req.Discount != nil {
		coupon.Discount = *req.Discount
	}

	if err := s.couponRepo.Update(ctx, coupon); err != nil {
		return nil, err
	}

	s.listCache.Delete(couponListKey)

	return coupon, nil
}

// Delete, kuponu siler.
func (s *couponService) Delete(ctx context.Context, id string) error {
	if err := s.couponRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.listCache.Delete(couponListKey)
	s.hub.BroadcastToAll(ws.Event{Op: ws.OpCouponDelete, Data: map[string]any{"id": id}})

	return nil
}

// IsExpired, kuponun süresinin geçip geçmediğini döner.
// Süresi geçen kuponlar listeden silinmez — client indirimi uygularken kontrol eder.
func IsExpired(c *models.Coupon) bool {
	return time.Now().After(c.Expiry)
}
