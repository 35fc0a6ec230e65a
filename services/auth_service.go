// Package services, business logic katmanını barındırır.
//
// Service Layer Pattern nedir?
// Handler (HTTP) ile Repository (DB) arasında oturan katmandır.
// Tüm iş kuralları burada yaşar:
//   - Şifre hash'leme
//   - JWT token oluşturma
//   - Rating ortalaması hesaplama
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — Repository interface'i kullanır.
package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/akinalp/vitrin/pkg/email"
	"github.com/akinalp/vitrin/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL, şifre sıfırlama token'ının geçerlilik süresi.
// Email şablonundaki "expire in 20 minutes" metniyle uyumlu tutulmalı.
const resetTokenTTL = 20 * time.Minute

// AuthService interface'i — dışarıya açık API.
// Handler bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	Register(ctx context.Context, req *models.CreateUserRequest) (*AuthTokens, error)
	Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthTokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
	// ForgotPassword, kullanıcıya şifre sıfırlama linki email'ler.
	ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error
	// ResetPassword, email'deki token ile yeni şifre belirler.
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
}

// AuthTokens, login/register sonrası dönen token çifti.
type AuthTokens struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

// authService, AuthService interface'inin implementasyonu.
type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	resetRepo   repository.PasswordResetRepository
	sender      email.EmailSender
	jwtSecret   []byte
	accessExp   time.Duration
	refreshExp  time.Duration
}

// NewAuthService, constructor.
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	resetRepo repository.PasswordResetRepository,
	sender email.EmailSender,
	jwtSecret string,
	accessExp time.Duration,
	refreshExp time.Duration,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		resetRepo:   resetRepo,
		sender:      sender,
		jwtSecret:   []byte(jwtSecret),
		accessExp:   accessExp,
		refreshExp:  refreshExp,
	}
}

// Register, yeni kullanıcı kaydı oluşturur.
//
// Akış:
// 1. Validation — email formatı, şifre uzunluğu, isim alanları
// 2. Bcrypt hash (cost=12)
// 3. Rol ataması — sisteme kayıt olan İLK kullanıcı admin olur,
//    sonrakiler user. Ayrı bir seed adımına gerek kalmaz.
// 4. User kaydı — email UNIQUE, çakışmada ErrAlreadyExists
// 5. Token çifti oluştur — kullanıcı kayıt sonrası direkt giriş yapmış olur
func (s *authService) Register(ctx context.Context, req *models.CreateUserRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// İlk kullanıcı admin olur.
	// Count ile Create arası teorik olarak yarışabilir ama tek kişilik
	// bootstrap senaryosunda pratik bir sorun değildir.
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := models.RoleUser
	if count == 0 {
		role = models.RoleAdmin
	}

	user := &models.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err // ErrAlreadyExists olabilir
	}

	return s.generateTokens(ctx, user)
}

// Login, kullanıcı girişi yapar.
//
// Email bulunamadı ve yanlış şifre aynı mesajla döner —
// saldırgan hangi email'lerin kayıtlı olduğunu öğrenemez.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthTokens, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
	}

	return s.generateTokens(ctx, user)
}

// RefreshToken, süresi dolmuş access token'ı yenilemek için kullanılır.
//
// Token rotation: Eski refresh token her kullanımda silinir ve yenisi
// üretilir. Çalınan bir token ikinci kez kullanılamaz.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid refresh token", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		if delErr := s.sessionRepo.DeleteByID(ctx, session.ID); delErr != nil {
			return nil, fmt.Errorf("failed to delete expired session: %w", delErr)
		}
		return nil, fmt.Errorf("%w: refresh token expired", pkg.ErrUnauthorized)
	}

	if err := s.sessionRepo.DeleteByID(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to delete old session: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	return s.generateTokens(ctx, user)
}

// Logout, refresh token'ı iptal eder (session siler).
// Bilinmeyen token'da sessizce başarılı döner — logout idempotent'tir.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil
		}
		return err
	}

	return s.sessionRepo.DeleteByID(ctx, session.ID)
}

// ValidateAccessToken, JWT access token'ı doğrular ve claims'i döner.
func (s *authService) ValidateAccessToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}

	return claims, nil
}

// ForgotPassword, şifre sıfırlama akışını başlatır.
//
// Akış:
// 1. Email'den kullanıcıyı bul — yoksa 404
// 2. Rastgele 32 byte token üret, SHA256 hash'ini DB'ye yaz
//    (plaintext token SADECE email'de bulunur)
// 3. Resend ile reset linki gönder — sağlayıcı hatası ErrExternal olur
func (s *authService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: no user found with this email", pkg.ErrNotFound)
		}
		return err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	plainToken := hex.EncodeToString(tokenBytes)
	tokenHash := hashResetToken(plainToken)

	resetToken := &models.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Create(ctx, resetToken); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.sender.SendPasswordReset(ctx, user.Email, plainToken); err != nil {
		log.Printf("[auth] password reset email failed for user %s: %v", user.ID, err)
		return fmt.Errorf("%w: email provider error", pkg.ErrExternal)
	}

	return nil
}

// ResetPassword, email'deki token ile yeni şifre belirler.
//
// Akış:
// 1. Gelen plaintext token'ı hash'le, DB'de ara — yoksa 401
// 2. Süresi geçmiş veya kullanılmış token → 401
// 3. Token'ı tüketilmiş işaretle — MarkUsed used_at IS NULL guard'ı ile
//    yarışan iki reset isteğinden yalnızca biri kazanır
// 4. Yeni şifreyi hash'le ve yaz
func (s *authService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	token, err := s.resetRepo.GetByTokenHash(ctx, hashResetToken(req.Token))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrUnauthorized)
		}
		return err
	}

	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrUnauthorized)
	}

	if err := s.resetRepo.MarkUsed(ctx, token.ID); err != nil {
		if errors.Is(err, pkg.ErrConflict) {
			return fmt.Errorf("%w: invalid or expired reset token", pkg.ErrUnauthorized)
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, token.UserID, string(hash))
}

// ─── Private Helpers ───

// hashResetToken, plaintext reset token'ın SHA256 hex hash'ini döner.
func hashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func (s *authService) generateTokens(ctx context.Context, user *models.User) (*AuthTokens, error) {
	now := time.Now()
	accessClaims := &models.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "vitrin",
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessString, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshBytes := make([]byte, 32)
	if _, err := rand.Read(refreshBytes); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshString := hex.EncodeToString(refreshBytes)

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: refreshString,
		ExpiresAt:    now.Add(s.refreshExp),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	user.PasswordHash = ""

	return &AuthTokens{
		AccessToken:  accessString,
		RefreshToken: refreshString,
		User:         *user,
	}, nil
}
