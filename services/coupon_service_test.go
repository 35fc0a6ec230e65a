package services

import (
	"context"
	"testing"
	"time"

	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/akinalp/vitrin/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCouponFixture(t *testing.T) (*fakeCouponRepo, CouponService) {
	t.Helper()
	repo := newFakeCouponRepo()
	listCache := cache.New[string, []*models.Coupon](time.Minute, time.Minute)
	t.Cleanup(listCache.Close)
	svc := NewCouponService(repo, listCache, &fakeHub{})
	return repo, svc
}

func TestCouponCreateNormalizesName(t *testing.T) {
	_, svc := newCouponFixture(t)

	coupon, err := svc.Create(context.Background(), &models.CreateCouponRequest{
		Name:     "  summer25 ",
		Expiry:   time.Now().Add(24 * time.Hour),
		Discount: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER25", coupon.Name)
}

func TestCouponCreateDuplicateNameConflicts(t *testing.T) {
	_, svc := newCouponFixture(t)

	req := func() *models.CreateCouponRequest {
		return &models.CreateCouponRequest{
			Name:     "WELCOME10",
			Expiry:   time.Now().Add(24 * time.Hour),
			Discount: 10,
		}
	}

	_, err := svc.Create(context.Background(), req())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), req())
	require.ErrorIs(t, err, pkg.ErrAlreadyExists)
}

func TestCouponCreateRejectsInvalid(t *testing.T) {
	_, svc := newCouponFixture(t)

	cases := []*models.CreateCouponRequest{
		{Name: "AB", Expiry: time.Now().Add(time.Hour), Discount: 10},     // isim çok kısa
		{Name: "VALID", Expiry: time.Now().Add(-time.Hour), Discount: 10}, // süresi geçmiş
		{Name: "VALID", Expiry: time.Now().Add(time.Hour), Discount: 0},   // indirim sıfır
		{Name: "VALID", Expiry: time.Now().Add(time.Hour), Discount: 150}, // indirim > 100
	}

	for _, req := range cases {
		_, err := svc.Create(context.Background(), req)
		require.ErrorIs(t, err, pkg.ErrBadRequest)
	}
}

func TestCouponGetAllServedFromCache(t *testing.T) {
	repo, svc := newCouponFixture(t)

	_, err := svc.Create(context.Background(), &models.CreateCouponRequest{
		Name:     "CACHED",
		Expiry:   time.Now().Add(time.Hour),
		Discount: 5,
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		coupons, err := svc.GetAll(context.Background())
		require.NoError(t, err)
		require.Len(t, coupons, 1)
	}

	// İlk GetAll DB'ye gider, sonrakiler cache'ten döner.
	assert.Equal(t, 1, repo.getAllHits)
}

func TestCouponWritesInvalidateListCache(t *testing.T) {
	repo, svc := newCouponFixture(t)

	coupon, err := svc.Create(context.Background(), &models.CreateCouponRequest{
		Name:     "FIRST",
		Expiry:   time.Now().Add(time.Hour),
		Discount: 5,
	})
	require.NoError(t, err)

	_, err = svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getAllHits)

	// Delete cache'i düşürür — sonraki GetAll tekrar DB'ye gider.
	require.NoError(t, svc.Delete(context.Background(), coupon.ID))

	coupons, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, coupons)
	assert.Equal(t, 2, repo.getAllHits)
}

func TestCouponUpdatePartial(t *testing.T) {
	_, svc := newCouponFixture(t)

	coupon, err := svc.Create(context.Background(), &models.CreateCouponRequest{
		Name:     "SPRING",
		Expiry:   time.Now().Add(time.Hour),
		Discount: 15,
	})
	require.NoError(t, err)

	newDiscount := 20.0
	updated, err := svc.Update(context.Background(), coupon.ID, &models.UpdateCouponRequest{
		Discount: &newDiscount,
	})
	require.NoError(t, err)

	assert.Equal(t, "SPRING", updated.Name) // dokunulmadı
	assert.Equal(t, 20.0, updated.Discount)
}

func TestCouponIsExpired(t *testing.T) {
	assert.False(t, IsExpired(&models.Coupon{Expiry: time.Now().Add(time.Hour)}))
	assert.True(t, IsExpired(&models.Coupon{Expiry: time.Now().Add(-time.Hour)}))
}
