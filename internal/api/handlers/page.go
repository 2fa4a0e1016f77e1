package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
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

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("catalog").Funcs(template.FuncMap{
	"price":  func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"rating": func(v float64) string { return fmt.Sprintf("%.1f / 5", v) },
	"products": func(data any) []models.Product {
		products, _ := data.([]models.Product)
		return products
	},
}).ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	View      *models.CatalogView
	Error     string
	NoMatches string
}

type PageHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewPageHandler(catalogService service.CatalogService) *PageHandler {
	return &PageHandler{catalogService: catalogService, validator: validator.New()}
}

// GET /
func (h *PageHandler) Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFrom(w, r)
		if !ok {
			return
		}

		view, err := h.catalogService.View(r.Context(), sessionID)
		if err != nil {
			h.renderError(w, r, err)
			return
		}

		h.render(w, r, http.StatusOK, pageData{View: view, NoMatches: catalog.NoMatchesText})
	}
}

// POST /view/filters
func (h *PageHandler) ApplyFilters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionFrom(w, r)
		if !ok {
			return
		}

		if err := r.ParseForm(); err != nil {
			logger.Warn("Invalid filter form", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Invalid form").WithDetail(err.Error()))
			return
		}

		form := filterForm{
			Category:    r.PostForm.Get("category"),
			Search:      r.PostForm.Get("search"),
			InStockOnly: r.PostForm.Has("inStock"),
			PriceSort:   r.PostForm.Get("priceSort"),
			RatingSort:  r.PostForm.Get("ratingSort"),
		}

		if err := utils.ValidateStruct(h.validator, form); err != nil {
			if validationErrs, ok := utils.AsValidationErrors(err); ok {
				response.ValidationError(w, validationErrs)
				return
			}
			response.Error(w, errors.ValidationError("invalid input data"))
			return
		}

		events, err := form.events()
		if err != nil {
			response.Error(w, err)
			return
		}

		if _, err := h.catalogService.Dispatch(r.Context(), sessionID, events...); err != nil && !errors.IsFetchError(err) {
			h.renderError(w, r, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// POST /view/page
func (h *PageHandler) ChangePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sessionID, ok := sessionFrom(w, r)
		if !ok {
			return
		}

		var ev catalog.Event
		switch r.FormValue("direction") {
		case "next":
			ev = catalog.NextPage{}
		case "prev":
			ev = catalog.PrevPage{}
		default:
			response.Error(w, errors.AddValidationError("direction", "must be next or prev"))
			return
		}

		// a failed session renders its error on the redirect target
		if _, err := h.catalogService.Dispatch(r.Context(), sessionID, ev); err != nil && !errors.IsFetchError(err) {
			h.renderError(w, r, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	logger := middleware.LoggerFromContext(r.Context())

	appErr, ok := errors.IsAppError(err)
	if !ok {
		appErr = errors.InternalError("An unexpected error occurred").WithError(err)
	}

	// only fetch failures carry a message meant for the user
	message := appErr.Message
	if appErr.Code != errors.ErrCodeFetchFailed {
		message = "An unexpected error occurred"
	}

	logger.Error("Failed to render catalog page", slog.String("code", appErr.Code), slog.String("error", err.Error()))
	h.render(w, r, appErr.StatusCode, pageData{Error: message})
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page", data); err != nil {
		middleware.LoggerFromContext(r.Context()).Error("Failed to execute template", slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
