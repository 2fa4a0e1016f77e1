package repository_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/catalog-browser/internal/errors"
	repository "github.com/aaravmahajanofficial/catalog-browser/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsBody = `{
	"products": [
		{"id": 1, "title": "Essence Mascara Lash Princess", "category": "beauty", "price": 9.99, "rating": 4.94, "stock": 5, "thumbnail": "https://cdn.example/1.png"},
		{"id": 2, "title": "Eyeshadow Palette with Mirror", "category": "beauty", "price": 19.99, "rating": 3.28, "stock": 0}
	],
	"total": 194,
	"skip": 0,
	"limit": 2
}`

func newUpstream(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

func TestNewProductRepo(t *testing.T) {
	repo := repository.NewProductRepo(nil, "http://localhost/products?limit=10", time.Second)
	assert.NotNil(t, repo, "NewProductRepo should return a non-nil repository")
}

func TestProductRepository_ListProducts(t *testing.T) {
	t.Run("Success - decodes products", func(t *testing.T) {
		// Arrange
		var gotQuery, gotAccept string
		server := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			gotAccept = r.Header.Get("Accept")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(productsBody))
		})

		repo := repository.NewProductRepo(server.Client(), server.URL+"/products?limit=10", time.Second)

		// Act
		products, err := repo.ListProducts(t.Context())

		// Assert
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "limit=10", gotQuery)
		assert.Equal(t, "application/json", gotAccept)

		assert.Equal(t, int64(1), products[0].ID)
		assert.Equal(t, "Essence Mascara Lash Princess", products[0].Title)
		assert.Equal(t, "beauty", products[0].Category)
		assert.InDelta(t, 9.99, products[0].Price, 1e-9)
		assert.InDelta(t, 4.94, products[0].Rating, 1e-9)
		assert.Equal(t, int64(5), products[0].Stock)
		assert.Equal(t, "https://cdn.example/1.png", products[0].Thumbnail)
		assert.Empty(t, products[1].Thumbnail)
	})

	t.Run("Success - empty product list", func(t *testing.T) {
		// Arrange
		server := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"products": [], "total": 0}`))
		})
		repo := repository.NewProductRepo(server.Client(), server.URL, time.Second)

		// Act
		products, err := repo.ListProducts(t.Context())

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("Error - non-OK status", func(t *testing.T) {
		// Arrange
		server := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		repo := repository.NewProductRepo(server.Client(), server.URL, time.Second)

		// Act
		products, err := repo.ListProducts(t.Context())

		// Assert
		require.Error(t, err)
		assert.Nil(t, products)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeFetchFailed, appErr.Code)
		assert.Equal(t, repository.FetchFailedMessage, appErr.Message)
		assert.Equal(t, "upstream status 500", appErr.Detail)
		assert.Equal(t, http.StatusBadGateway, appErr.StatusCode)
	})

	t.Run("Error - malformed JSON", func(t *testing.T) {
		// Arrange
		server := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"products": [`))
		})
		repo := repository.NewProductRepo(server.Client(), server.URL, time.Second)

		// Act
		_, err := repo.ListProducts(t.Context())

		// Assert
		require.Error(t, err)
		assert.True(t, appErrors.IsFetchError(err))
	})

	t.Run("Error - missing products key", func(t *testing.T) {
		// Arrange
		server := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"total": 0}`))
		})
		repo := repository.NewProductRepo(server.Client(), server.URL, time.Second)

		// Act
		_, err := repo.ListProducts(t.Context())

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, repository.MalformedBodyMessage, appErr.Message)
	})

	t.Run("Error - unreachable upstream", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		repo := repository.NewProductRepo(nil, url, time.Second)

		// Act
		_, err := repo.ListProducts(t.Context())

		// Assert
		require.Error(t, err)
		assert.True(t, appErrors.IsFetchError(err))
	})

	t.Run("Error - timeout", func(t *testing.T) {
		// Arrange
		release := make(chan struct{})
		server := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		})
		t.Cleanup(func() { close(release) })

		repo := repository.NewProductRepo(server.Client(), server.URL, 20*time.Millisecond)

		// Act
		_, err := repo.ListProducts(t.Context())

		// Assert
		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.ErrorIs(t, appErr, context.DeadlineExceeded)
	})

	t.Run("Error - cancelled by caller", func(t *testing.T) {
		// Arrange
		server := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(productsBody))
		})
		repo := repository.NewProductRepo(server.Client(), server.URL, time.Second)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		// Act
		_, err := repo.ListProducts(ctx)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
