package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, JWT access token'ın payload'ı.
//
// Role claim'i admin-gated endpoint'lerde DB'ye gitmeden ön eleme için
// taşınır; middleware yine de güncel kullanıcıyı DB'den yükler
// (token geçerli ama kullanıcı silinmiş/düşürülmüş olabilir).
//
// Bu struct models paketinde tanımlanır — services, ws ve middleware
// tarafından kullanılır, circular dependency oluşmaz.
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
