package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ReactionKind, bir kullanıcının bloga tepkisini temsil eder.
// Bir (blog, user) çifti için en fazla bir tepki bulunur —
// like ve dislike kümeleri yapısal olarak ayrıktır.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Blog, bir blog yazısını temsil eder.
//
// Likes/Dislikes: tepki veren kullanıcı ID'leri. LikedByMe/DislikedByMe
// isteği yapan kullanıcı için okurken türetilir — eski tasarımdaki global
// isLiked/isDisliked bayrakları yerine küme üyeliğinden hesaplanır.
type Blog struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Author       string    `json:"author"`
	NumViews     int       `json:"num_views"`
	Likes        []string  `json:"likes"`
	Dislikes     []string  `json:"dislikes"`
	LikedByMe    bool      `json:"liked_by_me"`
	DislikedByMe bool      `json:"disliked_by_me"`
	Images       []Image   `json:"images"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasLiked, kullanıcının likes kümesinde olup olmadığını döner.
func (b *Blog) HasLiked(userID string) bool {
	for _, id := range b.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// HasDisliked, kullanıcının dislikes kümesinde olup olmadığını döner.
func (b *Blog) HasDisliked(userID string) bool {
	for _, id := range b.Dislikes {
		if id == userID {
			return true
		}
	}
	return false
}

// CreateBlogRequest, yeni blog oluşturma isteği.
type CreateBlogRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Author      string `json:"author"`
}

// Validate, CreateBlogRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateBlogRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	titleLen := utf8.RuneCountInString(r.Title)
	if titleLen < 1 || titleLen > 200 {
		return fmt.Errorf("title must be between 1 and 200 characters")
	}

	r.Description = strings.TrimSpace(r.Description)
	if r.Description == "" {
		return fmt.Errorf("description is required")
	}

	r.Category = strings.TrimSpace(r.Category)
	if r.Category == "" {
		return fmt.Errorf("category is required")
	}

	r.Author = strings.TrimSpace(r.Author)
	if r.Author == "" {
		r.Author = "Admin"
	}

	return nil
}

// UpdateBlogRequest, blog güncelleme isteği.
// Pointer (*string) kullanılır — nil ise o alan güncellenmez (partial update).
type UpdateBlogRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Author      *string `json:"author"`
}

// Validate, UpdateBlogRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateBlogRequest) Validate() error {
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		titleLen := utf8.RuneCountInString(*r.Title)
		if titleLen < 1 || titleLen > 200 {
			return fmt.Errorf("title must be between 1 and 200 characters")
		}
	}
	if r.Description != nil {
		*r.Description = strings.TrimSpace(*r.Description)
		if *r.Description == "" {
			return fmt.Errorf("description cannot be empty")
		}
	}
	if r.Category != nil {
		*r.Category = strings.TrimSpace(*r.Category)
		if *r.Category == "" {
			return fmt.Errorf("category cannot be empty")
		}
	}
	return nil
}

// ReactionRequest, PUT /api/blog/likes ve /api/blog/dislikes body'si.
type ReactionRequest struct {
	BlogID string `json:"blog_id"`
}

// Validate, ReactionRequest'in geçerli olup olmadığını kontrol eder.
func (r *ReactionRequest) Validate() error {
	r.BlogID = strings.TrimSpace(r.BlogID)
	if r.BlogID == "" {
		return fmt.Errorf("blog_id is required")
	}
	return nil
}
