package service

import (
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/catalog-browser/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-browser/internal/cache"
	"github.com/aaravmahajanofficial/catalog-browser/internal/catalog"
	appErrors "github.com/aaravmahajanofficial/catalog-browser/internal/errors"
	"github.com/aaravmahajanofficial/catalog-browser/internal/metrics"
	"github.com/aaravmahajanofficial/catalog-browser/internal/models"
	repository "github.com/aaravmahajanofficial/catalog-browser/internal/repositories"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const sessionLockStripes = 64

var tracer = otel.Tracer("github.com/aaravmahajanofficial/catalog-browser/internal/services")

// Session is what the store keeps per browsing session: the product batch fetched when the
// session opened, the control state, and the fetch failure if there was one.
type Session struct {
	Products []models.Product `json:"products"`
	State    catalog.State    `json:"state"`
	Error    string           `json:"error,omitempty"`
}

type CatalogService interface {
	// View returns the current page of the session, fetching the product batch on first use.
	View(ctx context.Context, sessionID string) (*models.CatalogView, error)
	// Dispatch applies events in order to the session state and returns the resulting page.
	Dispatch(ctx context.Context, sessionID string, events ...catalog.Event) (*models.CatalogView, error)
	// Categories lists the category choices of the session's product batch.
	Categories(ctx context.Context, sessionID string) ([]string, error)
}

type SessionOptions struct {
	TTL     time.Duration
	PerPage int
}

type catalogService struct {
	repo  repository.ProductRepository
	store cache.Cache
	opts  SessionOptions

	fetches singleflight.Group
	locks   [sessionLockStripes]sync.Mutex
}

func NewCatalogService(repo repository.ProductRepository, store cache.Cache, opts SessionOptions) CatalogService {
	return &catalogService{repo: repo, store: store, opts: opts}
}

func (s *catalogService) View(ctx context.Context, sessionID string) (*models.CatalogView, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.View")
	defer span.End()

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	if sess.Error != "" {
		return nil, appErrors.FetchError(sess.Error)
	}

	return buildView(sess), nil
}

func (s *catalogService) Dispatch(ctx context.Context, sessionID string, events ...catalog.Event) (*models.CatalogView, error) {
	ctx, span := tracer.Start(ctx, "CatalogService.Dispatch")
	defer span.End()

	eventTypes := make([]string, 0, len(events))
	for _, ev := range events {
		eventTypes = append(eventTypes, catalog.EventType(ev))
	}
	span.SetAttributes(attribute.StringSlice("catalog.events", eventTypes))

	// make sure the batch exists before taking the session lock so the fetch stays shared
	if _, err := s.session(ctx, sessionID); err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	mu := s.lockFor(sessionID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	// a failed session is terminal, events have nothing to act on
	if sess.Error != "" {
		return nil, appErrors.FetchError(sess.Error)
	}

	state := sess.State
	for _, ev := range events {
		if next, ok := ev.(catalog.NextPage); ok {
			next.TotalPages = catalog.Apply(sess.Products, state).TotalPages
			ev = next
		}

		state = catalog.Reduce(state, ev)
	}

	if state != sess.State {
		sess.State = state
		if err := s.save(ctx, sessionID, sess); err != nil {
			recordSpanError(span, err)
			return nil, err
		}
	}

	for _, eventType := range eventTypes {
		metrics.IncEvent(eventType)
	}

	middleware.LoggerFromContext(ctx).Debug("Applied catalog events",
		slog.String("session_id", sessionID),
		slog.Any("events", eventTypes),
		slog.Int("page", sess.State.Page),
	)

	return buildView(sess), nil
}

func (s *catalogService) Categories(ctx context.Context, sessionID string) ([]string, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sess.Error != "" {
		return nil, appErrors.FetchError(sess.Error)
	}

	return catalog.Categories(sess.Products), nil
}

// session loads the stored session or opens a new one. Concurrent first requests of the same
// session share one upstream fetch.
func (s *catalogService) session(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, appErrors.BadRequestError("Missing session")
	}

	sess, found, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if found {
		return sess, nil
	}

	for {
		v, err, shared := s.fetches.Do(sessionID, func() (any, error) {
			// another flight may have stored the session while this one queued
			if sess, found, err := s.load(ctx, sessionID); err != nil || found {
				return sess, err
			}

			return s.open(ctx, sessionID)
		})

		// the flight ran on the context of a caller that went away; a live caller starts its own
		if err != nil && shared && ctx.Err() == nil && isContextError(err) {
			middleware.LoggerFromContext(ctx).Debug("Shared session fetch was cancelled, retrying", slog.String("session_id", sessionID))
			continue
		}
		if err != nil {
			return nil, err
		}

		if shared {
			middleware.LoggerFromContext(ctx).Debug("Joined in-flight session fetch", slog.String("session_id", sessionID))
		}

		// callers sharing a flight must not alias one another's copy
		opened := *v.(*Session)

		return &opened, nil
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (s *catalogService) open(ctx context.Context, sessionID string) (*Session, error) {
	logger := middleware.LoggerFromContext(ctx)

	sess := &Session{State: catalog.NewState(s.opts.PerPage)}

	start := time.Now()
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		metrics.ObserveFetch(metrics.FetchOutcomeFailure, time.Since(start))

		// the caller went away: nothing failed for the session, a later request fetches again
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		appErr, ok := appErrors.IsAppError(err)
		if !ok {
			appErr = appErrors.FetchError(err.Error()).WithError(err)
		}

		logger.Warn("Product fetch failed", slog.String("session_id", sessionID), slog.String("error", err.Error()))
		sess.Error = appErr.Message
	} else {
		metrics.ObserveFetch(metrics.FetchOutcomeSuccess, time.Since(start))
		sess.Products = catalog.Normalize(products)

		logger.Info("Opened catalog session", slog.String("session_id", sessionID), slog.Int("products", len(sess.Products)))
	}

	if err := s.save(ctx, sessionID, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *catalogService) load(ctx context.Context, sessionID string) (*Session, bool, error) {
	var sess Session

	found, err := s.store.Get(ctx, cache.SessionKey(sessionID), &sess)
	if err != nil {
		if isContextError(err) {
			return nil, false, err
		}

		return nil, false, appErrors.SessionStoreError("Failed to load session").WithError(err)
	}

	if !found {
		return nil, false, nil
	}

	return &sess, true, nil
}

func (s *catalogService) save(ctx context.Context, sessionID string, sess *Session) error {
	if err := s.store.Set(ctx, cache.SessionKey(sessionID), sess, s.opts.TTL); err != nil {
		return appErrors.SessionStoreError("Failed to save session").WithError(err)
	}

	return nil
}

func (s *catalogService) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))

	return &s.locks[h.Sum32()%sessionLockStripes]
}

func buildView(sess *Session) *models.CatalogView {
	res := catalog.Apply(sess.Products, sess.State)
	metrics.ObserveMatches(res.Total)

	return &models.CatalogView{
		Products: models.PaginatedResponse{
			Data:       res.Items,
			Total:      res.Total,
			Page:       res.Page,
			PageSize:   res.PerPage,
			TotalPages: res.TotalPages,
		},
		CountLabel: res.CountLabel,
		PageLabel:  res.PageLabel(),
		Empty:      res.Empty(),
		HasPrev:    res.HasPrev(),
		HasNext:    res.HasNext(),
		Categories: catalog.Categories(sess.Products),
		Controls: models.CatalogControls{
			Category:    sess.State.Category,
			Search:      sess.State.Search,
			InStockOnly: sess.State.InStockOnly,
			PriceSort:   string(sess.State.PriceSort),
			RatingSort:  string(sess.State.RatingSort),
		},
	}
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
