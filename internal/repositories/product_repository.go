package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	appErrors "github.com/aaravmahajanofficial/catalog-browser/internal/errors"
	"github.com/aaravmahajanofficial/catalog-browser/internal/models"
	"github.com/aaravmahajanofficial/catalog-browser/internal/utils"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// FetchFailedMessage is reported when the upstream answers with a non-2xx status.
const FetchFailedMessage = "Failed to fetch products"

// MalformedBodyMessage is reported when the body decodes but carries no product list.
const MalformedBodyMessage = "Malformed products response"

// maxResponseBytes guards against an upstream that never stops sending.
const maxResponseBytes = 8 << 20

// ProductRepository loads the product batch a session browses.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type productRepository struct {
	client  *http.Client
	url     string
	timeout time.Duration
}

// NewProductRepo returns a repository reading from url. A nil client gets an
// instrumented default client.
func NewProductRepo(client *http.Client, url string, timeout time.Duration) ProductRepository {
	if client == nil {
		client = NewHTTPClient()
	}

	return &productRepository{client: client, url: url, timeout: timeout}
}

// NewHTTPClient returns an http.Client whose transport is traced with otelhttp.
func NewHTTPClient() *http.Client {
	return &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	fetchCtx, cancel := utils.WithFetchTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, appErrors.FetchError(err.Error()).WithError(err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()

	resp, err := r.client.Do(req)
	if err != nil {
		slog.Error("Upstream request failed", slog.String("url", r.url), slog.String("error", err.Error()))
		return nil, appErrors.FetchError(err.Error()).WithError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

		slog.Warn("Upstream returned non-OK status", slog.String("url", r.url), slog.Int("status", resp.StatusCode))
		return nil, appErrors.FetchError(FetchFailedMessage).WithDetail(fmt.Sprintf("upstream status %d", resp.StatusCode))
	}

	var body models.ProductsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		slog.Error("Failed to decode upstream products", slog.String("url", r.url), slog.String("error", err.Error()))
		return nil, appErrors.FetchError(err.Error()).WithError(err)
	}

	// "products": [] decodes to an empty, non-nil slice; nil means the key was absent or null.
	if body.Products == nil {
		slog.Error("Upstream body has no products array", slog.String("url", r.url))
		return nil, appErrors.FetchError(MalformedBodyMessage)
	}

	slog.Debug("Fetched products",
		slog.String("url", r.url),
		slog.Int("count", len(body.Products)),
		slog.Duration("duration", time.Since(start)),
	)

	return body.Products, nil
}
