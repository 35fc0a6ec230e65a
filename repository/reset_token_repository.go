package repository

import (
	"context"

	"github.com/akinalp/vitrin/models"
)

// PasswordResetRepository, şifre sıfırlama token'ları için interface.
//
// Create: Yeni token kaydı oluşturur; aynı kullanıcının önceki token'ları
// geçersiz kılınır (tek aktif token kuralı).
// GetByTokenHash: Hash ile token kaydını bulur — kullanılmış veya süresi
// geçmiş token'lar için de kayıt döner, kontrol service katmanındadır.
// MarkUsed: Token'ı tüketilmiş olarak işaretler.
type PasswordResetRepository interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id string) error
}
