package repository

import (
	"context"

	"github.com/akinalp/vitrin/models"
)

// ReactionRepository, blog like/dislike veritabanı işlemleri için interface.
//
// Şema: blog_reactions tablosunda (blog_id, user_id) PRIMARY KEY'dir —
// bir kullanıcının bir bloga tek satırı olur (like VEYA dislike).
// Likes ve dislikes kümelerinin ayrıklığı bu sayede yapısaldır,
// uygulama katmanında iki küme senkronize edilmez.
//
// Toggle akışı çok adımlıdır (mevcut tepkiyi oku → sil/çevir/ekle);
// InTx tüm adımları tek transaction'a bağlar.
type ReactionRepository interface {
	InTx(ctx context.Context, fn func(ReactionRepository) error) error
	BlogExists(ctx context.Context, blogID string) (bool, error)
	// Get, kullanıcının mevcut tepkisini döner. found=false → tepki yok.
	Get(ctx context.Context, blogID, userID string) (kind models.ReactionKind, found bool, err error)
	// Set, tepkiyi ekler veya mevcut satırın kind'ını değiştirir (upsert).
	Set(ctx context.Context, blogID, userID string, kind models.ReactionKind) error
	Delete(ctx context.Context, blogID, userID string) error
}
