// Package catalog holds the in-memory filter, sort and paginate pipeline that backs every
// catalog view, together with the control state that drives it.
//
// Everything in this package is pure: no I/O, no clocks, no shared state. A view owns one
// State value, replaces it through Reduce and recomputes its page with Apply.
package catalog

// DefaultPerPage is the number of products shown on one page.
const DefaultPerPage = 8

// SortOrder orders results by price.
type SortOrder string

const (
	SortNone      SortOrder = ""
	SortPriceAsc  SortOrder = "asc"
	SortPriceDesc SortOrder = "desc"
)

// RatingSort orders results by rating. It is applied after SortOrder.
type RatingSort string

const (
	RatingNone RatingSort = ""
	RatingAsc  RatingSort = "sortRatingAsc"
	RatingDesc RatingSort = "sortRatingDesc"
)

// ParseSortOrder reports whether s names a known price ordering.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch o := SortOrder(s); o {
	case SortNone, SortPriceAsc, SortPriceDesc:
		return o, true
	}

	return SortNone, false
}

// ParseRatingSort reports whether s names a known rating ordering.
func ParseRatingSort(s string) (RatingSort, bool) {
	switch o := RatingSort(s); o {
	case RatingNone, RatingAsc, RatingDesc:
		return o, true
	}

	return RatingNone, false
}

// State is the control state of one catalog view. It is a value type; use Reduce to derive
// a new state rather than mutating fields in place.
type State struct {
	Category    string     `json:"category"`
	Search      string     `json:"search"`
	InStockOnly bool       `json:"inStockOnly"`
	PriceSort   SortOrder  `json:"priceSort"`
	RatingSort  RatingSort `json:"ratingSort"`
	Page        int        `json:"page"`
	PerPage     int        `json:"perPage"`
}

// NewState returns the initial state of a freshly opened view.
// A non-positive perPage falls back to DefaultPerPage.
func NewState(perPage int) State {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	return State{Page: 1, PerPage: perPage}
}

func (s State) perPage() int {
	if s.PerPage <= 0 {
		return DefaultPerPage
	}

	return s.PerPage
}

func (s State) page() int {
	if s.Page < 1 {
		return 1
	}

	return s.Page
}
