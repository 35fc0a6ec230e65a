// Package repository, veritabanı erişim katmanını barındırır.
//
// Her aggregate için bir interface dosyası ve bir sqlite_* implementasyon
// dosyası bulunur. Service katmanı yalnızca interface'lere bağımlıdır —
// testlerde fake implementasyonlar geçilir (Dependency Inversion).
package repository

import (
	"context"

	"github.com/akinalp/vitrin/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
// Her method context.Context alır — HTTP isteği iptal edilirse sorgu da durur.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// Count, kayıtlı kullanıcı sayısını döner.
	// İlk kayıt olan kullanıcı admin rolü alır — bu karar için kullanılır.
	Count(ctx context.Context) (int, error)
}
