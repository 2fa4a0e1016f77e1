package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/catalog-browser/internal/cache"
	"github.com/aaravmahajanofficial/catalog-browser/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

type Endpoints struct {
	SessionStore cache.Cache
	HTTPClient   *http.Client
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "session-store",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				if endpoints.SessionStore == nil {
					return fmt.Errorf("session store is not initialized")
				}
				return endpoints.SessionStore.Ping(ctx)
			},
		},
		{
			// an upstream outage only fails new sessions, open ones keep browsing
			Name:      "product-source",
			Timeout:   5 * time.Second,
			SkipOnErr: true,
			Check:     SourceCheck(endpoints.HTTPClient, cfg.Source.ProductsURL()),
		},
	}

	if cfg.Session.Store == config.SessionStoreRedis {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{

			Name:    cfg.Otel.ServiceName,
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

// SourceCheck reports whether the products endpoint answers with a 2xx status.
func SourceCheck(client *http.Client, url string) func(ctx context.Context) error {
	if client == nil {
		client = http.DefaultClient
	}

	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to build source request: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("product source unreachable: %w", err)
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("product source returned status %d", resp.StatusCode)
		}

		return nil
	}
}
