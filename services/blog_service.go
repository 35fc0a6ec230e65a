package services

import (
	"context"
	"fmt"

	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/akinalp/vitrin/repository"
	"github.com/akinalp/vitrin/ws"
	"github.com/gosimple/slug"
)

// BlogService, blog yazıları iş mantığı interface'i.
//
// Get, görüntülenme sayacını atomik artırır ve isteği yapan kullanıcıya
// göre LikedByMe/DislikedByMe bayraklarını türetir. userID boş olabilir
// (anonim okuyucu) — bayraklar false kalır.
type BlogService interface {
	Create(ctx context.Context, req *models.CreateBlogRequest) (*models.Blog, error)
	Get(ctx context.Context, id, userID string) (*models.Blog, error)
	// GetByID, blogu sayaca dokunmadan döner (iç kullanım: upload öncesi varlık kontrolü).
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	GetAll(ctx context.Context) ([]models.Blog, error)
	Update(ctx context.Context, id string, req *models.UpdateBlogRequest) (*models.Blog, error)
	Delete(ctx context.Context, id string) error
}

type blogService struct {
	blogRepo repository.BlogRepository
	hub      ws.EventPublisher
}

// NewBlogService, constructor.
func NewBlogService(blogRepo repository.BlogRepository, hub ws.EventPublisher) BlogService {
	return &blogService{
		blogRepo: blogRepo,
		hub:      hub,
	}
}

// Create, yeni blog yazısı oluşturur. Author verilmezse "Admin" kullanılır.
func (s *blogService) Create(ctx context.Context, req *models.CreateBlogRequest) (*models.Blog, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	blog := &models.Blog{
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Author:      req.Author,
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpBlogCreate, Data: blog})

	return blog, nil
}

// Get, blogu döner ve num_views'i 1 artırır.
//
// Sayaç artışı atomik UPDATE ile yapılır — iki eşzamanlı GET'in ikisi de
// sayılır. Artış, okuma öncesi yapılır; dönen blog güncel sayacı taşır.
func (s *blogService) Get(ctx context.Context, id, userID string) (*models.Blog, error) {
	if err := s.blogRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}

	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if userID != "" {
		blog.LikedByMe = blog.HasLiked(userID)
		blog.DislikedByMe = blog.HasDisliked(userID)
	}

	return blog, nil
}

// GetByID, blogu görüntülenme sayacını artırmadan döner.
func (s *blogService) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	return s.blogRepo.GetByID(ctx, id)
}

// GetAll, tüm blogları döner (görüntülenme sayaçlarına dokunmaz).
func (s *blogService) GetAll(ctx context.Context) ([]models.Blog, error) {
	return s.blogRepo.GetAll(ctx)
}

// Update, blogu kısmi günceller. Title değişirse slug yeniden türetilir.
func (s *blogService) Update(ctx context.Context, id string, req *models.UpdateBlogRequest) (*models.Blog, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		blog.Title = *req.Title
		blog.Slug = slug.Make(*req.Title)
	}
	if req.Description != nil {
		blog.Description = *req.Description
	}
	if req.Category != nil {
		blog.Category = *req.Category
	}
	if req.Author != nil {
		blog.Author = *req.Author
	}

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpBlogUpdate, Data: blog})

	return blog, nil
}

// Delete, blogu siler. Tepkiler FK cascade ile birlikte gider.
func (s *blogService) Delete(ctx context.Context, id string) error {
	if err := s.blogRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpBlogDelete, Data: map[string]any{"id": id}})

	return nil
}
