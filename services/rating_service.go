package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/akinalp/vitrin/repository"
	"github.com/akinalp/vitrin/ws"
)

// RatingService, ürün puanlama iş mantığı interface'i.
//
// Rate: Kullanıcının oyu yoksa ekler, varsa star değerini yerinde günceller
// (update-or-insert). Her iki durumda da ürünün total_rating'i mevcut rating
// setinden TAM yeniden hesaplanır — artımlı güncelleme yoktur, tekrarlanan
// "5→4→4" çağrıları gibi akışlarda ortalama asla kaymaz.
type RatingService interface {
	Rate(ctx context.Context, userID string, req *models.RateRequest) (*models.Product, error)
}

type ratingService struct {
	ratingRepo  repository.RatingRepository
	productRepo repository.ProductRepository
	hub         ws.EventPublisher
}

// NewRatingService, constructor.
// productRepo: Rate sonrası tam ürünü (ratings + images) dönmek için gerekir.
func NewRatingService(
	ratingRepo repository.RatingRepository,
	productRepo repository.ProductRepository,
	hub ws.EventPublisher,
) RatingService {
	return &ratingService{
		ratingRepo:  ratingRepo,
		productRepo: productRepo,
		hub:         hub,
	}
}

// Rate, bir ürüne puan verir veya mevcut puanı değiştirir.
//
// Akış (tamamı TEK transaction içinde):
// 1. Star validation — aralık dışı istek hiçbir yazma yapmadan reddedilir
// 2. Ürün varlık kontrolü — yoksa 404
// 3. Mevcut oy var mı?
//    - varsa: hedefli UPDATE. Etkilenen satır 0 ise kayıt iki adım arasında
//      silinmiş demektir → Conflict, hiçbir değişiklik kalıcı olmaz
//    - yoksa: yeni rating INSERT
// 4. Rating setini tekrar oku, ortalamayı yuvarla, ürüne yaz
//
// Transaction sayesinde "rating yazıldı ama total_rating güncellenmedi"
// gibi yarı kalmış durumlar görünmez — dışarıdan bakan herkes oy ve
// ortalamayı birlikte görür.
//
// Başarıda güncel total_rating tüm client'lara broadcast edilir.
func (s *ratingService) Rate(ctx context.Context, userID string, req *models.RateRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	var ratingCount int
	var totalRating int

	err := s.ratingRepo.InTx(ctx, func(tx repository.RatingRepository) error {
		exists, err := tx.ProductExists(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: product not found", pkg.ErrNotFound)
		}

		_, err = tx.GetByProductAndUser(ctx, req.ProductID, userID)
		switch {
		case err == nil:
			// Mevcut oy — yerinde güncelle.
			rows, err := tx.UpdateStar(ctx, req.ProductID, userID, req.Star)
			if err != nil {
				return err
			}
			if rows == 0 {
				return fmt.Errorf("%w: rating no longer exists", pkg.ErrConflict)
			}

		case errors.Is(err, pkg.ErrNotFound):
			// İlk oy — yeni kayıt.
			rating := &models.Rating{
				ProductID: req.ProductID,
				PostedBy:  userID,
				Star:      req.Star,
			}
			if err := tx.Insert(ctx, rating); err != nil {
				return err
			}

		default:
			return err
		}

		// Tam yeniden hesaplama — set her değiştiğinde baştan.
		ratings, err := tx.ListByProduct(ctx, req.ProductID)
		if err != nil {
			return err
		}

		ratingCount = len(ratings)
		totalRating = computeTotalRating(ratings)

		return tx.SetTotalRating(ctx, req.ProductID, totalRating)
	})
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{
		Op: ws.OpRatingUpdate,
		Data: ws.RatingUpdateData{
			ProductID:   req.ProductID,
			TotalRating: totalRating,
			RatingCount: ratingCount,
		},
	})

	return product, nil
}

// computeTotalRating, rating setinin yuvarlanmış tam sayı ortalamasını döner.
//
// Boş sette 0 tanımlıdır — sıfıra bölme oluşmaz (son oy silindiğinde
// ortalama 0'a döner). Yuvarlama half-up: 3.5 → 4.
func computeTotalRating(ratings []models.Rating) int {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Star
	}

	return int(math.Round(float64(sum) / float64(len(ratings))))
}
