// Package models, uygulamanın domain modellerini tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır; aynı zamanda
// API'den gelen/giden verilerin şeklini de belirler.
// Request struct'ları Validate() metodu taşır — handler decode eder,
// service Validate çağırıp iş kuralını uygular.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Role, kullanıcının yetki seviyesini temsil eder.
// Go'da enum yoktur — typed constant kullanılır.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User, bir kullanıcıyı temsil eder.
// json:"-" → PasswordHash API response'a DAHİL EDİLMEZ.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin, kullanıcının admin olup olmadığını döner.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// EmailRegex, email format kontrolü için paylaşılan regex'i döner.
func EmailRegex() *regexp.Regexp {
	return emailRegex
}

// CreateUserRequest, kayıt olurken gelen veri.
// PasswordHash yerine Password alınır — hash'leme service katmanında yapılır.
type CreateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// Validate, CreateUserRequest'in geçerli olup olmadığını kontrol eder.
// Kurallar: geçerli email, 8+ karakter şifre, 1-64 karakter isim alanları.
func (r *CreateUserRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if r.FirstName == "" || utf8.RuneCountInString(r.FirstName) > 64 {
		return fmt.Errorf("first name must be between 1 and 64 characters")
	}
	if r.LastName == "" || utf8.RuneCountInString(r.LastName) > 64 {
		return fmt.Errorf("last name must be between 1 and 64 characters")
	}

	return nil
}

// LoginRequest, giriş yaparken gelen veri.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ForgotPasswordRequest, şifre sıfırlama talebi.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate, ForgotPasswordRequest'i kontrol eder.
func (r *ForgotPasswordRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ResetPasswordRequest, email'deki token ile yeni şifre belirleme isteği.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Validate, ResetPasswordRequest'i kontrol eder.
func (r *ResetPasswordRequest) Validate() error {
	r.Token = strings.TrimSpace(r.Token)
	if r.Token == "" {
		return fmt.Errorf("token is required")
	}
	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
