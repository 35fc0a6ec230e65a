package services

import (
	"context"
	"fmt"

	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/akinalp/vitrin/repository"
	"github.com/akinalp/vitrin/ws"
)

// ReactionService, blog like/dislike iş mantığı interface'i.
//
// ToggleLike / ToggleDislike simetriktir — tek fark hedef kind.
// Toggle semantiği (hedef kind için):
//   - kullanıcının tepkisi yok        → hedef kind eklenir
//   - mevcut tepki hedef kind         → tepki kaldırılır (geri alma)
//   - mevcut tepki karşıt kind        → tepki hedef kind'a ÇEVRİLİR
//
// Tek satır tasarımı (PK blog_id+user_id) sayesinde "hem like hem dislike"
// durumu şema seviyesinde imkânsızdır — karşıt kümeden düşürme diye ayrı
// bir adım yoktur, satırın kind'ı değişir.
type ReactionService interface {
	ToggleLike(ctx context.Context, blogID, userID string) (*models.Blog, error)
	ToggleDislike(ctx context.Context, blogID, userID string) (*models.Blog, error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	blogRepo     repository.BlogRepository
	hub          ws.EventPublisher
}

// NewReactionService, constructor.
// blogRepo: Toggle sonrası güncel blogu (tepki kümeleriyle) dönmek için gerekir.
func NewReactionService(
	reactionRepo repository.ReactionRepository,
	blogRepo repository.BlogRepository,
	hub ws.EventPublisher,
) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		blogRepo:     blogRepo,
		hub:          hub,
	}
}

// ToggleLike, kullanıcının like tepkisini toggle'lar.
func (s *reactionService) ToggleLike(ctx context.Context, blogID, userID string) (*models.Blog, error) {
	return s.toggle(ctx, blogID, userID, models.ReactionLike)
}

// ToggleDislike, kullanıcının dislike tepkisini toggle'lar.
func (s *reactionService) ToggleDislike(ctx context.Context, blogID, userID string) (*models.Blog, error) {
	return s.toggle(ctx, blogID, userID, models.ReactionDislike)
}

// toggle, ortak toggle akışı.
//
// Akış (tamamı TEK transaction içinde):
// 1. Blog varlık kontrolü — yoksa 404
// 2. Kullanıcının mevcut tepkisini oku
// 3. Karar:
//    - tepki yok          → Set(kind): yeni satır
//    - tepki == kind      → Delete: geri alma
//    - tepki == karşıt    → Set(kind): satırın kind'ı çevrilir (upsert)
//
// Aynı anda yarışan iki toggle isteğinden biri transaction'da önce gelir,
// diğeri onun sonucunun üzerine işler — ara durum asla görünmez.
//
// Dönen blog, isteği yapan kullanıcıya göre türetilmiş LikedByMe/DislikedByMe
// bayraklarını taşır.
func (s *reactionService) toggle(ctx context.Context, blogID, userID string, kind models.ReactionKind) (*models.Blog, error) {
	err := s.reactionRepo.InTx(ctx, func(tx repository.ReactionRepository) error {
		exists, err := tx.BlogExists(ctx, blogID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: blog not found", pkg.ErrNotFound)
		}

		current, found, err := tx.Get(ctx, blogID, userID)
		if err != nil {
			return err
		}

		if found && current == kind {
			// Aynı tepkiye ikinci kez basıldı — geri al.
			return tx.Delete(ctx, blogID, userID)
		}

		// Yeni tepki veya karşıttan çevirme — iki durumda da tek upsert.
		return tx.Set(ctx, blogID, userID, kind)
	})
	if err != nil {
		return nil, err
	}

	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	blog.LikedByMe = blog.HasLiked(userID)
	blog.DislikedByMe = blog.HasDisliked(userID)

	s.hub.BroadcastToAll(ws.Event{
		Op: ws.OpBlogReactionUpdate,
		Data: ws.BlogReactionUpdateData{
			BlogID:   blogID,
			Likes:    len(blog.Likes),
			Dislikes: len(blog.Dislikes),
			ActorID:  userID,
		},
	})

	return blog, nil
}
