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

// ProductService, ürün katalog iş mantığı interface'i.
//
// Create/Update'te slug title'dan türetilir (gosimple/slug) — client
// slug gönderemez. List, filtre/sıralama/sayfalama uygular; istenen
// sayfa veri kümesinin dışındaysa 400 döner.
type ProductService interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, query *models.ProductQuery) (*ProductList, error)
	Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductList, list endpoint'inin sayfalama metadata'lı cevabı.
type ProductList struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

type productService struct {
	productRepo repository.ProductRepository
	hub         ws.EventPublisher
}

// NewProductService, constructor.
func NewProductService(productRepo repository.ProductRepository, hub ws.EventPublisher) ProductService {
	return &productService{
		productRepo: productRepo,
		hub:         hub,
	}
}

// Create, yeni ürün oluşturur.
//
// Slug title'dan türetilir: "Apple iPhone 15" → "apple-iphone-15".
// Slug kolonu UNIQUE — aynı title'dan ikinci ürün ErrAlreadyExists alır.
func (s *productService) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	product := &models.Product{
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Color:       req.Color,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpProductCreate, Data: product})

	return product, nil
}

// GetByID, ürünü rating ve görsel listeleriyle birlikte döner.
func (s *productService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// List, ürünleri filtreler, sıralar ve sayfalar.
//
// İstenen sayfa toplam kayıt sayısının dışındaysa 400 döner —
// sessizce boş liste dönmek yerine client'a yanlış sayfa istediği söylenir.
// İstisna: hiç kayıt yokken 1. sayfa boş liste döner.
func (s *productService) List(ctx context.Context, query *models.ProductQuery) (*ProductList, error) {
	total, err := s.productRepo.Count(ctx, query)
	if err != nil {
		return nil, err
	}

	if total > 0 && query.Offset() >= total {
		return nil, fmt.Errorf("%w: page does not exist", pkg.ErrBadRequest)
	}

	products, err := s.productRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	return &ProductList{
		Products: products,
		Total:    total,
		Page:     query.Page,
		Limit:    query.Limit,
	}, nil
}

// Update, ürünü kısmi günceller. Title değişirse slug yeniden türetilir.
func (s *productService) Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		product.Title = *req.Title
		product.Slug = slug.Make(*req.Title)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.Color != nil {
		product.Color = *req.Color
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpProductUpdate, Data: product})

	return product, nil
}

// Delete, ürünü siler. Rating'ler FK cascade ile birlikte gider.
func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpProductDelete, Data: map[string]any{"id": id}})

	return nil
}
