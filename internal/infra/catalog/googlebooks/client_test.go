package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/recombooks/internal/domain/recommendation"
)

func TestSearchTitleTopHit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/books/v1/volumes", r.URL.Path)
		query := r.URL.Query()
		require.Equal(t, "The Left Hand of Darkness", query.Get("q"))
		require.Equal(t, "relevance", query.Get("orderBy"))
		require.Equal(t, "1", query.Get("maxResults"))
		require.Equal(t, "books-key", query.Get("key"))

		_, _ = w.Write([]byte(`{
			"totalItems": 1,
			"items": [{
				"id": "abc123",
				"volumeInfo": {
					"title": "The Left Hand of Darkness",
					"authors": ["Ursula K. Le Guin"],
					"description": "Winter.",
					"averageRating": 4.1,
					"ratingsCount": 321,
					"imageLinks": {"thumbnail": "http://books.google.com/books/content?id=abc123"}
				},
				"saleInfo": {"retailPrice": {"amount": 11.5, "currencyCode": "GBP"}}
			}]
		}`))
	}))
	defer server.Close()

	client := NewClient("books-key", server.URL+"/books/v1", 0)
	vol, found, err := client.SearchTitle(context.Background(), "The Left Hand of Darkness")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, recommendation.Volume{
		ID:            "abc123",
		Title:         "The Left Hand of Darkness",
		Authors:       []string{"Ursula K. Le Guin"},
		Description:   "Winter.",
		AverageRating: 4.1,
		RatingsCount:  321,
		Thumbnail:     "http://books.google.com/books/content?id=abc123",
		PriceAmount:   11.5,
		PriceCurrency: "GBP",
	}, vol)
}

func TestSearchTitleNoItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"kind":"books#volumes","totalItems":0}`))
	}))
	defer server.Close()

	_, found, err := NewClient("k", server.URL, 0).SearchTitle(context.Background(), "Nothing")
	require.NoError(t, err)
	require.False(t, found)
}

func TestSearchTitleUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer server.Close()

	_, found, err := NewClient("k", server.URL, 0).SearchTitle(context.Background(), "Dune")
	require.ErrorContains(t, err, "status=403")
	require.False(t, found)
}

func TestSearchTitleWithoutKey(t *testing.T) {
	_, found, err := NewClient("", "", 0).SearchTitle(context.Background(), "Dune")
	require.ErrorContains(t, err, "api key is not configured")
	require.False(t, found)
}

func TestNormalizeWithoutSaleInfo(t *testing.T) {
	vol := volume{ID: "x", VolumeInfo: volumeInfo{Title: "T"}}.normalize()
	require.Equal(t, "x", vol.ID)
	require.Zero(t, vol.PriceAmount)
	require.Empty(t, vol.PriceCurrency)
	require.Empty(t, vol.Thumbnail)
}
