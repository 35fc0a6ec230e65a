package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Star sınırları — bu aralığın dışındaki her rating isteği,
// hiçbir yazma yapılmadan reddedilir.
const (
	MinStar = 1
	MaxStar = 5
)

// Product, kataloğdaki bir ürünü temsil eder.
//
// TotalRating: mevcut rating setinin yuvarlanmış tam sayı ortalaması.
// Rating seti her değiştiğinde tam yeniden hesaplanır — asla artımlı
// güncellenmez, boş sette 0 tanımlıdır.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Sold        int       `json:"sold"`
	Color       string    `json:"color"`
	TotalRating int       `json:"total_rating"`
	Images      []Image   `json:"images"`
	Ratings     []Rating  `json:"ratings"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Rating, bir kullanıcının bir ürüne verdiği puandır.
// Bir (product, user) çifti için en fazla bir Rating bulunur —
// sonraki oylar mevcut kaydın star değerini yerinde günceller.
type Rating struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	PostedBy  string    `json:"posted_by"`
	Star      int       `json:"star"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProductRequest, yeni ürün oluşturma isteği.
// Slug service katmanında title'dan türetilir, istekte yer almaz.
type CreateProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Color       string  `json:"color"`
}

// Validate, CreateProductRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateProductRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	titleLen := utf8.RuneCountInString(r.Title)
	if titleLen < 1 || titleLen > 200 {
		return fmt.Errorf("title must be between 1 and 200 characters")
	}

	if r.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if r.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}

	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Brand = strings.TrimSpace(r.Brand)
	r.Color = strings.TrimSpace(r.Color)

	return nil
}

// UpdateProductRequest, ürün güncelleme isteği.
// Pointer (*T) kullanılır — nil ise o alan güncellenmez (partial update).
// Title güncellenirse slug da yeniden türetilir.
type UpdateProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Color       *string  `json:"color"`
}

// Validate, UpdateProductRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateProductRequest) Validate() error {
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		titleLen := utf8.RuneCountInString(*r.Title)
		if titleLen < 1 || titleLen > 200 {
			return fmt.Errorf("title must be between 1 and 200 characters")
		}
	}
	if r.Price != nil && *r.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if r.Quantity != nil && *r.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	return nil
}

// RateRequest, ürün puanlama isteği.
type RateRequest struct {
	ProductID string `json:"product_id"`
	Star      int    `json:"star"`
}

// Validate, RateRequest'in geçerli olup olmadığını kontrol eder.
// Star aralık kontrolü burada yapılır — service hiçbir yazma
// denemeden önce bu hatayı döner.
func (r *RateRequest) Validate() error {
	r.ProductID = strings.TrimSpace(r.ProductID)
	if r.ProductID == "" {
		return fmt.Errorf("product_id is required")
	}
	if r.Star < MinStar || r.Star > MaxStar {
		return fmt.Errorf("star must be between %d and %d", MinStar, MaxStar)
	}
	return nil
}

// productSortColumns, list sorgusunda izin verilen sıralama kolonları.
// Whitelist — SQL injection'a kapı açmamak için query'den gelen değer
// asla doğrudan ORDER BY'a yazılmaz.
var productSortColumns = map[string]bool{
	"title":        true,
	"price":        true,
	"created_at":   true,
	"sold":         true,
	"total_rating": true,
}

// ProductQuery, GET /api/product list sorgusunun parse edilmiş hali.
type ProductQuery struct {
	Category string
	Brand    string
	PriceMin *float64
	PriceMax *float64
	SortBy   string // whitelist'ten bir kolon
	SortDesc bool
	Page     int
	Limit    int
}

// Offset, SQL OFFSET değerini döner.
func (q *ProductQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ParseProductQuery, URL query parametrelerini ProductQuery'e çevirir.
//
// Desteklenen parametreler:
//   - category, brand: birebir eşleşme filtresi
//   - price_min, price_max: fiyat aralığı
//   - sort: kolon adı, "-" prefix'i DESC demektir (ör: "-price").
//     Varsayılan: "-created_at" (en yeni önce)
//   - page, limit: sayfalama (varsayılan page=1, limit=20, max limit=100)
func ParseProductQuery(values url.Values) (*ProductQuery, error) {
	q := &ProductQuery{
		Category: strings.TrimSpace(values.Get("category")),
		Brand:    strings.TrimSpace(values.Get("brand")),
		SortBy:   "created_at",
		SortDesc: true,
		Page:     1,
		Limit:    20,
	}

	if raw := values.Get("price_min"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid price_min")
		}
		q.PriceMin = &v
	}

	if raw := values.Get("price_max"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid price_max")
		}
		q.PriceMax = &v
	}

	if q.PriceMin != nil && q.PriceMax != nil && *q.PriceMin > *q.PriceMax {
		return nil, fmt.Errorf("price_min cannot be greater than price_max")
	}

	if raw := values.Get("sort"); raw != "" {
		col := raw
		desc := false
		if strings.HasPrefix(raw, "-") {
			col = raw[1:]
			desc = true
		}
		if !productSortColumns[col] {
			return nil, fmt.Errorf("invalid sort column: %s", col)
		}
		q.SortBy = col
		q.SortDesc = desc
	}

	if raw := values.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("invalid page")
		}
		q.Page = v
	}

	if raw := values.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 100 {
			return nil, fmt.Errorf("invalid limit (1-100)")
		}
		q.Limit = v
	}

	return q, nil
}
