package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/aaravmahajanofficial/catalog-browser/internal/models"
)

// NoMatchesText is shown instead of an empty grid.
const NoMatchesText = "No matches found"

// Result is one evaluation of the pipeline.
type Result struct {
	// Matches is the full filtered and sorted result.
	Matches []models.Product
	// Items is the slice of Matches on the requested page.
	Items      []models.Product
	Total      int
	Page       int
	PerPage    int
	TotalPages int
	CountLabel string
}

// Empty reports whether the current page shows no products, either because nothing matched
// or because the page lies past the last one.
func (r Result) Empty() bool { return len(r.Items) == 0 }

// HasPrev reports whether the Previous control is enabled.
func (r Result) HasPrev() bool { return r.TotalPages > 0 && r.Page > 1 }

// HasNext reports whether the Next control is enabled.
func (r Result) HasNext() bool { return r.Page < r.TotalPages }

// PageLabel renders the "<page> / <total>" indicator; "0 / 0" when there are no pages.
func (r Result) PageLabel() string {
	if r.TotalPages == 0 {
		return "0 / 0"
	}

	return fmt.Sprintf("%d / %d", r.Page, r.TotalPages)
}

// Apply runs the pipeline over products for state s:
// category, search and in-stock filters, then price sort, then rating sort, then paging.
// The input slice is never modified.
func Apply(products []models.Product, s State) Result {
	matches := Filter(products, s)
	matches = Sort(matches, s)

	perPage := s.perPage()
	page := s.page()

	return Result{
		Matches:    matches,
		Items:      pageOf(matches, page, perPage),
		Total:      len(matches),
		Page:       page,
		PerPage:    perPage,
		TotalPages: TotalPages(len(matches), perPage),
		CountLabel: CountLabel(len(matches)),
	}
}

// Filter keeps the products that pass every active filter in s, preserving input order.
func Filter(products []models.Product, s State) []models.Product {
	query := strings.ToLower(s.Search)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if s.Category != "" && p.Category != s.Category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Title), query) {
			continue
		}
		if s.InStockOnly && !inStock(p) {
			continue
		}
		out = append(out, p)
	}

	return out
}

// Sort orders products by price and then by rating, each as a separate stable pass.
// When both are active the rating pass decides the final order and price only breaks ties.
func Sort(products []models.Product, s State) []models.Product {
	out := slices.Clone(products)

	switch s.PriceSort {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b models.Product) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b models.Product) int { return cmp.Compare(b.Price, a.Price) })
	}

	switch s.RatingSort {
	case RatingAsc:
		slices.SortStableFunc(out, func(a, b models.Product) int { return cmp.Compare(a.Rating, b.Rating) })
	case RatingDesc:
		slices.SortStableFunc(out, func(a, b models.Product) int { return cmp.Compare(b.Rating, a.Rating) })
	}

	return out
}

// CountLabel renders "1 result" or "<n> results".
func CountLabel(n int) string {
	if n == 1 {
		return "1 result"
	}

	return fmt.Sprintf("%d results", n)
}

// TotalPages is ceil(n / perPage).
func TotalPages(n, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	return (n + perPage - 1) / perPage
}

func pageOf(products []models.Product, page, perPage int) []models.Product {
	start := (page - 1) * perPage
	if start >= len(products) {
		return []models.Product{}
	}
	end := min(start+perPage, len(products))

	return products[start:end:end]
}

func inStock(p models.Product) bool {
	return p.InStock || p.Stock > 0
}
