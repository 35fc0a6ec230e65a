package repository

import (
	"context"

	"github.com/akinalp/vitrin/models"
)

// RatingRepository, ürün puanlama veritabanı işlemleri için interface.
//
// Rate akışı çok adımlıdır (var mı bak → güncelle veya ekle → seti tekrar
// oku → ortalamayı yaz). Adımların bütünlüğü için InTx kullanılır:
// fn içine transaction'a bağlı bir RatingRepository kopyası geçilir,
// fn error dönerse tüm adımlar geri alınır.
//
// UpdateStar, hedefli conditional update'tir: (product, owner) eşleşmesiyle
// star'ı günceller ve etkilenen satır sayısını döner. Sıfır dönerse kayıt
// iki adım arasında silinmiş demektir — caller Conflict üretir.
type RatingRepository interface {
	InTx(ctx context.Context, fn func(RatingRepository) error) error
	ProductExists(ctx context.Context, productID string) (bool, error)
	GetByProductAndUser(ctx context.Context, productID, userID string) (*models.Rating, error)
	UpdateStar(ctx context.Context, productID, userID string, star int) (int64, error)
	Insert(ctx context.Context, rating *models.Rating) error
	ListByProduct(ctx context.Context, productID string) ([]models.Rating, error)
	// SetTotalRating, tam yeniden hesaplanmış ortalamayı ürüne yazar.
	SetTotalRating(ctx context.Context, productID string, totalRating int) error
}
