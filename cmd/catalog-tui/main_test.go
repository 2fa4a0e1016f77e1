package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsBody = `{"products": [
	{"id": 1, "title": "Essence Mascara Lash Princess", "category": "beauty", "price": 9.99, "rating": 4.94, "stock": 5},
	{"id": 2, "title": "Eyeshadow Palette with Mirror", "category": "beauty", "price": 19.99, "rating": 3.28, "stock": 44},
	{"id": 3, "title": "Powder Canister", "category": "beauty", "price": 14.99, "rating": 3.82, "stock": 0},
	{"id": 6, "title": "Calvin Klein CK One", "category": "fragrances", "price": 49.99, "rating": 4.85, "stock": 17}
]}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func TestListCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(productsBody))
	}))
	defer server.Close()

	t.Run("Success - Filters and sorts one page", func(t *testing.T) {
		// Act
		out, err := execute(t, "list", "--base-url", server.URL, "--category", "beauty", "--in-stock", "--price-sort", "desc", "--page", "1")

		// Assert
		require.NoError(t, err)
		assert.Contains(t, out, "2 results")
		assert.Contains(t, out, "Eyeshadow Palette with Mirror")
		assert.Contains(t, out, "$19.99")
		assert.NotContains(t, out, "Powder Canister")
		assert.NotContains(t, out, "Calvin Klein")
		assert.Contains(t, out, "1 / 1")
		assert.Less(t, bytes.Index([]byte(out), []byte("Eyeshadow")), bytes.Index([]byte(out), []byte("Essence")))
	})

	t.Run("Success - No matches", func(t *testing.T) {
		out, err := execute(t, "list", "--base-url", server.URL, "--category", "", "--in-stock=false", "--price-sort", "", "--search", "nothing like this")

		require.NoError(t, err)
		assert.Contains(t, out, "No matches found")
		assert.Contains(t, out, "0 / 0")
	})

	t.Run("Failure - Upstream error", func(t *testing.T) {
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer failing.Close()

		_, err := execute(t, "list", "--base-url", failing.URL, "--search", "")

		require.Error(t, err)
		assert.Equal(t, "Failed to fetch products", err.Error())
	})

	t.Run("Invalid Input - Unknown sort", func(t *testing.T) {
		_, err := execute(t, "list", "--base-url", server.URL, "--price-sort", "cheapest")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "--price-sort")
	})
}

func TestListEvents(t *testing.T) {
	category, search, inStock, priceSort, ratingSort, page = "beauty", "lip", true, "asc", "sortRatingDesc", 2
	t.Cleanup(func() {
		category, search, inStock, priceSort, ratingSort, page = "", "", false, "", "", 1
	})

	events, err := listEvents()

	require.NoError(t, err)
	assert.Len(t, events, 6)
}
