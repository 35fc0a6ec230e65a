package models

import "time"

// PasswordResetToken, şifre sıfırlama token'ının DB kaydı.
//
// TokenHash: Token'ın SHA256 hash'i (hex encoded, 64 karakter).
// Plaintext token kullanıcıya email ile gönderilir, DB'de SADECE hash saklanır —
// DB sızsa bile token'lar kullanılamaz. Doğrulama: kullanıcıdan gelen
// plaintext token hash'lenir ve TokenHash ile karşılaştırılır.
// UsedAt dolu ise token tüketilmiştir, tekrar kullanılamaz.
type PasswordResetToken struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	TokenHash string     `json:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}
