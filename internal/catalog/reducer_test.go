package catalog_test

import (
	"testing"

	"github.com/aaravmahajanofficial/catalog-browser/internal/catalog"
	"github.com/stretchr/testify/assert"
)

func TestReduce_ResetsPage(t *testing.T) {
	onPageThree := catalog.Reduce(catalog.NewState(catalog.DefaultPerPage), catalog.GoToPage{Page: 3})

	events := map[string]catalog.Event{
		"category":   catalog.SetCategory{Category: "beauty"},
		"search":     catalog.SetSearch{Term: "lip"},
		"in stock":   catalog.SetInStockOnly{Enabled: true},
		"price sort": catalog.SetPriceSort{Order: catalog.SortPriceAsc},
		"rating":     catalog.SetRatingSort{Order: catalog.RatingDesc},
	}

	for name, ev := range events {
		t.Run("Success - "+name+" change resets page", func(t *testing.T) {
			// Act
			next := catalog.Reduce(onPageThree, ev)

			// Assert
			assert.Equal(t, 1, next.Page)
			assert.Equal(t, 3, onPageThree.Page, "previous state must be untouched")
		})
	}
}

func TestReduce_UnchangedValueKeepsPage(t *testing.T) {
	state := catalog.NewState(catalog.DefaultPerPage)
	state = catalog.Reduce(state, catalog.SetCategory{Category: "beauty"})
	state = catalog.Reduce(state, catalog.SetSearch{Term: "lip"})
	state = catalog.Reduce(state, catalog.SetPriceSort{Order: catalog.SortPriceDesc})
	state = catalog.Reduce(state, catalog.GoToPage{Page: 2})

	assert.Equal(t, 2, catalog.Reduce(state, catalog.SetCategory{Category: "beauty"}).Page)
	assert.Equal(t, 2, catalog.Reduce(state, catalog.SetSearch{Term: "lip"}).Page)
	assert.Equal(t, 2, catalog.Reduce(state, catalog.SetInStockOnly{Enabled: false}).Page)
	assert.Equal(t, 2, catalog.Reduce(state, catalog.SetPriceSort{Order: catalog.SortPriceDesc}).Page)
	assert.Equal(t, 2, catalog.Reduce(state, catalog.SetRatingSort{Order: catalog.RatingNone}).Page)
}

func TestReduce_Paging(t *testing.T) {
	first := catalog.NewState(catalog.DefaultPerPage)

	t.Run("Success - Next advances within range", func(t *testing.T) {
		assert.Equal(t, 2, catalog.Reduce(first, catalog.NextPage{TotalPages: 2}).Page)
	})

	t.Run("Success - Next is ignored on last page", func(t *testing.T) {
		last := catalog.Reduce(first, catalog.GoToPage{Page: 2})

		assert.Equal(t, 2, catalog.Reduce(last, catalog.NextPage{TotalPages: 2}).Page)
	})

	t.Run("Success - Next is ignored without pages", func(t *testing.T) {
		assert.Equal(t, 1, catalog.Reduce(first, catalog.NextPage{TotalPages: 0}).Page)
	})

	t.Run("Success - Prev is ignored on first page", func(t *testing.T) {
		assert.Equal(t, 1, catalog.Reduce(first, catalog.PrevPage{}).Page)
	})

	t.Run("Success - Prev goes back one page", func(t *testing.T) {
		third := catalog.Reduce(first, catalog.GoToPage{Page: 3})

		assert.Equal(t, 2, catalog.Reduce(third, catalog.PrevPage{}).Page)
	})

	t.Run("Success - GoToPage clamps below one", func(t *testing.T) {
		assert.Equal(t, 1, catalog.Reduce(first, catalog.GoToPage{Page: -4}).Page)
	})
}

func TestReduce_Reset(t *testing.T) {
	state := catalog.NewState(4)
	state = catalog.Reduce(state, catalog.SetCategory{Category: "beauty"})
	state = catalog.Reduce(state, catalog.SetInStockOnly{Enabled: true})
	state = catalog.Reduce(state, catalog.GoToPage{Page: 2})

	reset := catalog.Reduce(state, catalog.Reset{})

	assert.Equal(t, catalog.NewState(4), reset)
}

func TestReduce_NilEvent(t *testing.T) {
	state := catalog.NewState(catalog.DefaultPerPage)

	assert.Equal(t, state, catalog.Reduce(state, nil))
}

func TestParseSortOrders(t *testing.T) {
	order, ok := catalog.ParseSortOrder("asc")
	assert.True(t, ok)
	assert.Equal(t, catalog.SortPriceAsc, order)

	_, ok = catalog.ParseSortOrder("price")
	assert.False(t, ok)

	rating, ok := catalog.ParseRatingSort("sortRatingDesc")
	assert.True(t, ok)
	assert.Equal(t, catalog.RatingDesc, rating)

	rating, ok = catalog.ParseRatingSort("")
	assert.True(t, ok)
	assert.Equal(t, catalog.RatingNone, rating)

	_, ok = catalog.ParseRatingSort("desc")
	assert.False(t, ok)
}

func TestEventType(t *testing.T) {
	assert.Equal(t, catalog.EventSetCategory, catalog.EventType(catalog.SetCategory{}))
	assert.Equal(t, catalog.EventSetSearch, catalog.EventType(catalog.SetSearch{}))
	assert.Equal(t, catalog.EventSetInStockOnly, catalog.EventType(catalog.SetInStockOnly{}))
	assert.Equal(t, catalog.EventSetPriceSort, catalog.EventType(catalog.SetPriceSort{}))
	assert.Equal(t, catalog.EventSetRatingSort, catalog.EventType(catalog.SetRatingSort{}))
	assert.Equal(t, catalog.EventNextPage, catalog.EventType(catalog.NextPage{}))
	assert.Equal(t, catalog.EventPrevPage, catalog.EventType(catalog.PrevPage{}))
	assert.Equal(t, catalog.EventGoToPage, catalog.EventType(catalog.GoToPage{}))
	assert.Equal(t, catalog.EventReset, catalog.EventType(catalog.Reset{}))
	assert.Equal(t, "unknown", catalog.EventType(nil))
}
