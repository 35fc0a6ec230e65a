package services

import (
	"context"
	"testing"

	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/akinalp/vitrin/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreateDerivesSlug(t *testing.T) {
	repo := newFakeProductRepo()
	hub := &fakeHub{}
	svc := NewProductService(repo, hub)

	product, err := svc.Create(context.Background(), &models.CreateProductRequest{
		Title: "Apple iPhone 15 Pro", Price: 999, Quantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "apple-iphone-15-pro", product.Slug)

	event, ok := hub.lastEvent()
	require.True(t, ok)
	assert.Equal(t, ws.OpProductCreate, event.Op)
}

func TestProductCreateValidation(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), &fakeHub{})

	cases := []*models.CreateProductRequest{
		{Title: "", Price: 10},
		{Title: "Ok", Price: -1},
		{Title: "Ok", Quantity: -5},
	}
	for _, req := range cases {
		_, err := svc.Create(context.Background(), req)
		require.ErrorIs(t, err, pkg.ErrBadRequest)
	}
}

func TestProductListPaginationBounds(t *testing.T) {
	repo := newFakeProductRepo(
		&models.Product{ID: "p1", Title: "A"},
		&models.Product{ID: "p2", Title: "B"},
	)
	svc := NewProductService(repo, &fakeHub{})

	list, err := svc.List(context.Background(), &models.ProductQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Len(t, list.Products, 2)

	// Toplamın dışındaki sayfa sessizce boş dönmez — 400.
	_, err = svc.List(context.Background(), &models.ProductQuery{Page: 5, Limit: 20})
	require.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestProductListEmptyFirstPage(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), &fakeHub{})

	// Hiç kayıt yokken 1. sayfa hata DEĞİLDİR.
	list, err := svc.List(context.Background(), &models.ProductQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
	assert.Empty(t, list.Products)
}

func TestProductUpdateReslugOnTitleChange(t *testing.T) {
	repo := newFakeProductRepo(&models.Product{ID: "p1", Title: "Old Name", Slug: "old-name", Price: 5})
	hub := &fakeHub{}
	svc := NewProductService(repo, hub)

	newTitle := "Brand New Name"
	updated, err := svc.Update(context.Background(), "p1", &models.UpdateProductRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "brand-new-name", updated.Slug)
	assert.Equal(t, 5.0, updated.Price) // dokunulmayan alan korunur

	event, ok := hub.lastEvent()
	require.True(t, ok)
	assert.Equal(t, ws.OpProductUpdate, event.Op)
}

func TestProductDeleteBroadcasts(t *testing.T) {
	repo := newFakeProductRepo(&models.Product{ID: "p1", Title: "A"})
	hub := &fakeHub{}
	svc := NewProductService(repo, hub)

	require.NoError(t, svc.Delete(context.Background(), "p1"))
	assert.Empty(t, repo.products)

	event, ok := hub.lastEvent()
	require.True(t, ok)
	assert.Equal(t, ws.OpProductDelete, event.Op)

	err := svc.Delete(context.Background(), "p1")
	require.ErrorIs(t, err, pkg.ErrNotFound)
}
