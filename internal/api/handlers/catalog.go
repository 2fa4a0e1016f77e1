package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/catalog-browser/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-browser/internal/catalog"
	"github.com/aaravmahajanofficial/catalog-browser/internal/errors"
	"github.com/aaravmahajanofficial/catalog-browser/internal/models"
	service "github.com/aaravmahajanofficial/catalog-browser/internal/services"
	"github.com/aaravmahajanofficial/catalog-browser/internal/utils"
	"github.com/aaravmahajanofficial/catalog-browser/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, validator: validator.New()}
}

// GET /api/v1/catalog
func (h *CatalogHandler) GetView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionFrom(w, r)
		if !ok {
			return
		}

		view, err := h.catalogService.View(r.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to load catalog view", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// POST /api/v1/catalog/events
func (h *CatalogHandler) ApplyEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionFrom(w, r)
		if !ok {
			return
		}

		var req models.CatalogEventRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		ev, err := toEvent(req)
		if err != nil {
			logger.Warn("Rejected catalog event", slog.String("type", req.Type), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		view, err := h.catalogService.Dispatch(r.Context(), sessionID, ev)
		if err != nil {
			logger.Error("Failed to apply catalog event",
				slog.String("type", catalog.EventType(ev)),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// GET /api/v1/catalog/categories
func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFrom(w, r)
		if !ok {
			return
		}

		categories, err := h.catalogService.Categories(r.Context(), sessionID)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list categories", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

func sessionFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := middleware.SessionFromContext(r.Context())
	if sessionID == "" {
		slog.Warn("Request without session", slog.String("path", r.URL.Path))
		response.Error(w, errors.BadRequestError("Session is required"))
		return "", false
	}

	return sessionID, true
}
