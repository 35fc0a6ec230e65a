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

func newRatingFixture(t *testing.T) (*fakeRatingRepo, *fakeProductRepo, *fakeHub, RatingService) {
	t.Helper()
	ratingRepo := newFakeRatingRepo("p1")
	productRepo := newFakeProductRepo(&models.Product{ID: "p1", Title: "Kettle"})
	hub := &fakeHub{}
	svc := NewRatingService(ratingRepo, productRepo, hub)
	return ratingRepo, productRepo, hub, svc
}

func TestRateFirstVoteInserts(t *testing.T) {
	ratingRepo, _, hub, svc := newRatingFixture(t)

	product, err := svc.Rate(context.Background(), "u1", &models.RateRequest{ProductID: "p1", Star: 4})
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "p1", product.ID)

	require.Len(t, ratingRepo.ratings, 1)
	assert.Equal(t, 4, ratingRepo.totals["p1"])

	event, ok := hub.lastEvent()
	require.True(t, ok)
	assert.Equal(t, ws.OpRatingUpdate, event.Op)
	data := event.Data.(ws.RatingUpdateData)
	assert.Equal(t, "p1", data.ProductID)
	assert.Equal(t, 4, data.TotalRating)
	assert.Equal(t, 1, data.RatingCount)
}

func TestRateSecondVoteUpdatesInPlace(t *testing.T) {
	ratingRepo, _, _, svc := newRatingFixture(t)

	_, err := svc.Rate(context.Background(), "u1", &models.RateRequest{ProductID: "p1", Star: 5})
	require.NoError(t, err)
	_, err = svc.Rate(context.Background(), "u1", &models.RateRequest{ProductID: "p1", Star: 2})
	require.NoError(t, err)

	// Aynı kullanıcının ikinci oyu yeni kayıt AÇMAZ.
	require.Len(t, ratingRepo.ratings, 1)
	assert.Equal(t, 2, ratingRepo.ratings[ratingKey("p1", "u1")].Star)
	assert.Equal(t, 2, ratingRepo.totals["p1"])
}

func TestRateAverageRoundsHalfUp(t *testing.T) {
	ratingRepo, _, _, svc := newRatingFixture(t)

	_, err := svc.Rate(context.Background(), "u1", &models.RateRequest{ProductID: "p1", Star: 3})
	require.NoError(t, err)
	_, err = svc.Rate(context.Background(), "u2", &models.RateRequest{ProductID: "p1", Star: 4})
	require.NoError(t, err)

	// (3+4)/2 = 3.5 → 4
	assert.Equal(t, 4, ratingRepo.totals["p1"])
}

func TestRateRepeatedVotesDoNotDriftAverage(t *testing.T) {
	ratingRepo, _, _, svc := newRatingFixture(t)

	// u1: 5 → 4 → 4. Tam yeniden hesaplamada set hep {4, u2:2} kalır.
	for _, star := range []int{5, 4, 4} {
		_, err := svc.Rate(context.Background(), "u1", &models.RateRequest{ProductID: "p1", Star: star})
		require.NoError(t, err)
	}
	_, err := svc.Rate(context.Background(), "u2", &models.RateRequest{ProductID: "p1", Star: 2})
	require.NoError(t, err)

	// (4+2)/2 = 3
	assert.Equal(t, 3, ratingRepo.totals["p1"])
	require.Len(t, ratingRepo.ratings, 2)
}

func TestRateStarOutOfRangeRejectedWithoutWrites(t *testing.T) {
	ratingRepo, _, hub, svc := newRatingFixture(t)

	for _, star := range []int{0, 6, -1} {
		_, err := svc.Rate(context.Background(), "u1", &models.RateRequest{ProductID: "p1", Star: star})
		require.ErrorIs(t, err, pkg.ErrBadRequest)
	}

	assert.Empty(t, ratingRepo.ratings)
	assert.Empty(t, ratingRepo.totals)
	_, ok := hub.lastEvent()
	assert.False(t, ok)
}

func TestRateUnknownProductReturnsNotFound(t *testing.T) {
	_, _, _, svc := newRatingFixture(t)

	_, err := svc.Rate(context.Background(), "u1", &models.RateRequest{ProductID: "ghost", Star: 3})
	require.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestRateConflictWhenRatingVanishesMidFlight(t *testing.T) {
	ratingRepo, _, _, svc := newRatingFixture(t)

	_, err := svc.Rate(context.Background(), "u1", &models.RateRequest{ProductID: "p1", Star: 3})
	require.NoError(t, err)

	// Get kaydı bulur ama UpdateStar 0 satır etkiler —
	// eşzamanlı silinme senaryosu.
	zero := int64(0)
	ratingRepo.updateStarRows = &zero

	_, err = svc.Rate(context.Background(), "u1", &models.RateRequest{ProductID: "p1", Star: 5})
	require.ErrorIs(t, err, pkg.ErrConflict)
}

func TestComputeTotalRating(t *testing.T) {
	cases := []struct {
		name  string
		stars []int
		want  int
	}{
		{"empty set is zero", nil, 0},
		{"single vote", []int{2}, 2},
		{"exact average", []int{4, 4, 4}, 4},
		{"half rounds up", []int{3, 4}, 4},
		{"half rounds up high", []int{4, 5}, 5},
		{"below half rounds down", []int{1, 1, 2}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ratings []models.Rating
			for _, s := range tc.stars {
				ratings = append(ratings, models.Rating{Star: s})
			}
			assert.Equal(t, tc.want, computeTotalRating(ratings))
		})
	}
}
