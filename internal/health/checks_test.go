package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/catalog-browser/internal/cache"
	"github.com/aaravmahajanofficial/catalog-browser/internal/config"
	"github.com/aaravmahajanofficial/catalog-browser/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Env:     "test",
		Source:  config.Source{BaseURL: baseURL, Limit: 10, Timeout: time.Second},
		Session: config.Session{Store: config.SessionStoreMemory},
		Otel:    config.Otel{ServiceName: "catalog-browser"},
	}
}

func TestSourceCheck(t *testing.T) {
	t.Run("Success - 2xx", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"products": []}`))
		}))
		defer server.Close()

		err := health.SourceCheck(server.Client(), server.URL)(t.Context())

		assert.NoError(t, err)
	})

	t.Run("Failure - non-2xx", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		err := health.SourceCheck(server.Client(), server.URL)(t.Context())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 503")
	})
}

func TestNewHealthHandler(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"products": []}`))
	}))
	defer server.Close()

	store := cache.NewMemoryCache(&config.CacheConfig{DefaultTTL: time.Minute})
	h, err := health.NewHealthHandler(testConfig(server.URL), &health.Endpoints{SessionStore: store, HTTPClient: server.Client()})
	require.NoError(t, err)

	rr := httptest.NewRecorder()

	// Act
	h.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
}
