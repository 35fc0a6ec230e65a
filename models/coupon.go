package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Coupon, bir indirim kuponunu temsil eder.
// Name uppercase saklanır ve unique'tir.
type Coupon struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Expiry    time.Time `json:"expiry"`
	Discount  float64   `json:"discount"` // yüzde, (0, 100]
	CreatedAt time.Time `json:"created_at"`
}

// CreateCouponRequest, yeni kupon oluşturma isteği.
type CreateCouponRequest struct {
	Name     string    `json:"name"`
	Expiry   time.Time `json:"expiry"`
	Discount float64   `json:"discount"`
}

// Validate, CreateCouponRequest'in geçerli olup olmadığını kontrol eder.
// Name uppercase'e çevrilir; expiry gelecekte olmalı; discount (0, 100].
func (r *CreateCouponRequest) Validate() error {
	r.Name = strings.ToUpper(strings.TrimSpace(r.Name))
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 3 || nameLen > 32 {
		return fmt.Errorf("coupon name must be between 3 and 32 characters")
	}

	if r.Expiry.IsZero() || !r.Expiry.After(time.Now()) {
		return fmt.Errorf("expiry must be in the future")
	}

	if r.Discount <= 0 || r.Discount > 100 {
		return fmt.Errorf("discount must be between 0 (exclusive) and 100")
	}

	return nil
}

// UpdateCouponRequest, kupon güncelleme isteği.
// Pointer alanlar — nil ise o alan güncellenmez.
type UpdateCouponRequest struct {
	Name     *string    `json:"name"`
	Expiry   *time.Time `json:"expiry"`
	Discount *float64   `json:"discount"`
}

// Validate, UpdateCouponRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateCouponRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.ToUpper(strings.TrimSpace(*r.Name))
		nameLen := utf8.RuneCountInString(*r.Name)
		if nameLen < 3 || nameLen > 32 {
			return fmt.Errorf("coupon name must be between 3 and 32 characters")
		}
	}
	if r.Expiry != nil && !r.Expiry.After(time.Now()) {
		return fmt.Errorf("expiry must be in the future")
	}
	if r.Discount != nil && (*r.Discount <= 0 || *r.Discount > 100) {
		return fmt.Errorf("discount must be between 0 (exclusive) and 100")
	}
	return nil
}
