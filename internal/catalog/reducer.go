package catalog

// Event is a user action on a catalog view.
type Event interface {
	apply(State) State
}

// SetCategory selects a category. An empty Category clears the filter.
type SetCategory struct{ Category string }

// SetSearch replaces the title search term.
type SetSearch struct{ Term string }

// SetInStockOnly toggles the in-stock filter.
type SetInStockOnly struct{ Enabled bool }

// SetPriceSort changes the price ordering.
type SetPriceSort struct{ Order SortOrder }

// SetRatingSort changes the rating ordering.
type SetRatingSort struct{ Order RatingSort }

// NextPage advances one page. TotalPages is the page count the view was showing; the
// move is ignored on the last page or when there are no pages.
type NextPage struct{ TotalPages int }

// PrevPage goes back one page; ignored on the first page.
type PrevPage struct{}

// GoToPage jumps to Page. Values below 1 land on page 1; pages past the end are allowed
// and render as an empty page.
type GoToPage struct{ Page int }

// Reset restores the initial state, keeping the page size.
type Reset struct{}

// Reduce returns the state that results from applying ev to s.
//
// Any change to a filter or a sort sends the view back to page 1. Setting a control to the
// value it already has is a no-op and keeps the current page.
func Reduce(s State, ev Event) State {
	if ev == nil {
		return s
	}

	return ev.apply(s)
}

func (e SetCategory) apply(s State) State {
	if s.Category == e.Category {
		return s
	}
	s.Category = e.Category
	s.Page = 1

	return s
}

func (e SetSearch) apply(s State) State {
	if s.Search == e.Term {
		return s
	}
	s.Search = e.Term
	s.Page = 1

	return s
}

func (e SetInStockOnly) apply(s State) State {
	if s.InStockOnly == e.Enabled {
		return s
	}
	s.InStockOnly = e.Enabled
	s.Page = 1

	return s
}

func (e SetPriceSort) apply(s State) State {
	if s.PriceSort == e.Order {
		return s
	}
	s.PriceSort = e.Order
	s.Page = 1

	return s
}

func (e SetRatingSort) apply(s State) State {
	if s.RatingSort == e.Order {
		return s
	}
	s.RatingSort = e.Order
	s.Page = 1

	return s
}

func (e NextPage) apply(s State) State {
	if e.TotalPages <= 0 || s.page() >= e.TotalPages {
		return s
	}
	s.Page = s.page() + 1

	return s
}

func (PrevPage) apply(s State) State {
	if s.page() <= 1 {
		s.Page = 1
		return s
	}
	s.Page = s.page() - 1

	return s
}

func (e GoToPage) apply(s State) State {
	s.Page = max(e.Page, 1)

	return s
}

func (Reset) apply(s State) State {
	return NewState(s.PerPage)
}

// Wire names of the events, as accepted by the events endpoint.
const (
	EventSetCategory    = "setCategory"
	EventSetSearch      = "setSearch"
	EventSetInStockOnly = "setInStockOnly"
	EventSetPriceSort   = "setPriceSort"
	EventSetRatingSort  = "setRatingSort"
	EventNextPage       = "nextPage"
	EventPrevPage       = "prevPage"
	EventGoToPage       = "goToPage"
	EventReset          = "reset"
)

// EventType returns the wire name of ev, or "unknown".
func EventType(ev Event) string {
	switch ev.(type) {
	case SetCategory:
		return EventSetCategory
	case SetSearch:
		return EventSetSearch
	case SetInStockOnly:
		return EventSetInStockOnly
	case SetPriceSort:
		return EventSetPriceSort
	case SetRatingSort:
		return EventSetRatingSort
	case NextPage:
		return EventNextPage
	case PrevPage:
		return EventPrevPage
	case GoToPage:
		return EventGoToPage
	case Reset:
		return EventReset
	}

	return "unknown"
}
