package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductQueryDefaults(t *testing.T) {
	q, err := ParseProductQuery(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, "created_at", q.SortBy)
	assert.True(t, q.SortDesc) // en yeni önce
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.Limit)
	assert.Nil(t, q.PriceMin)
	assert.Nil(t, q.PriceMax)
}

func TestParseProductQueryFull(t *testing.T) {
	values := url.Values{
		"category":  {"electronics"},
		"brand":     {"apple"},
		"price_min": {"100"},
		"price_max": {"2000"},
		"sort":      {"-price"},
		"page":      {"2"},
		"limit":     {"50"},
	}

	q, err := ParseProductQuery(values)
	require.NoError(t, err)

	assert.Equal(t, "electronics", q.Category)
	assert.Equal(t, "apple", q.Brand)
	require.NotNil(t, q.PriceMin)
	assert.Equal(t, 100.0, *q.PriceMin)
	require.NotNil(t, q.PriceMax)
	assert.Equal(t, 2000.0, *q.PriceMax)
	assert.Equal(t, "price", q.SortBy)
	assert.True(t, q.SortDesc)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 50, q.Limit)
	assert.Equal(t, 50, q.Offset())
}

func TestParseProductQueryRejectsInvalid(t *testing.T) {
	cases := []url.Values{
		{"sort": {"password_hash"}}, // whitelist dışı kolon
		{"sort": {"-drop table"}},
		{"price_min": {"abc"}},
		{"price_min": {"-5"}},
		{"price_min": {"100"}, "price_max": {"50"}}, // ters aralık
		{"page": {"0"}},
		{"limit": {"500"}}, // max 100
		{"limit": {"0"}},
	}

	for _, values := range cases {
		_, err := ParseProductQuery(values)
		require.Error(t, err, "values: %v", values)
	}
}

func TestRateRequestValidate(t *testing.T) {
	valid := &RateRequest{ProductID: " p1 ", Star: 3}
	require.NoError(t, valid.Validate())
	assert.Equal(t, "p1", valid.ProductID) // trim edilir

	cases := []*RateRequest{
		{ProductID: "", Star: 3},
		{ProductID: "p1", Star: 0},
		{ProductID: "p1", Star: 6},
	}
	for _, req := range cases {
		require.Error(t, req.Validate())
	}
}

func TestCreateProductRequestValidate(t *testing.T) {
	valid := &CreateProductRequest{Title: "  Kettle  ", Price: 10, Quantity: 1}
	require.NoError(t, valid.Validate())
	assert.Equal(t, "Kettle", valid.Title)

	cases := []*CreateProductRequest{
		{Title: "", Price: 10},
		{Title: "Ok", Price: -0.01},
		{Title: "Ok", Quantity: -1},
	}
	for _, req := range cases {
		require.Error(t, req.Validate())
	}
}
