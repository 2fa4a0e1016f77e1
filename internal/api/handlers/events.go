package handlers

import (
	"strconv"

	"github.com/aaravmahajanofficial/catalog-browser/internal/catalog"
	"github.com/aaravmahajanofficial/catalog-browser/internal/errors"
	"github.com/aaravmahajanofficial/catalog-browser/internal/models"
)

// toEvent converts a validated event request into a reducer event.
func toEvent(req models.CatalogEventRequest) (catalog.Event, error) {
	switch req.Type {
	case catalog.EventSetCategory:
		return catalog.SetCategory{Category: req.Value}, nil

	case catalog.EventSetSearch:
		return catalog.SetSearch{Term: req.Value}, nil

	case catalog.EventSetInStockOnly:
		enabled, err := strconv.ParseBool(req.Value)
		if err != nil {
			return nil, errors.AddValidationError("value", "must be true or false")
		}
		return catalog.SetInStockOnly{Enabled: enabled}, nil

	case catalog.EventSetPriceSort:
		order, ok := catalog.ParseSortOrder(req.Value)
		if !ok {
			return nil, errors.AddValidationError("value", "must be one of '', asc, desc")
		}
		return catalog.SetPriceSort{Order: order}, nil

	case catalog.EventSetRatingSort:
		order, ok := catalog.ParseRatingSort(req.Value)
		if !ok {
			return nil, errors.AddValidationError("value", "must be one of '', sortRatingAsc, sortRatingDesc")
		}
		return catalog.SetRatingSort{Order: order}, nil

	case catalog.EventNextPage:
		return catalog.NextPage{}, nil

	case catalog.EventPrevPage:
		return catalog.PrevPage{}, nil

	case catalog.EventGoToPage:
		if req.Page < 1 {
			return nil, errors.AddValidationError("page", "is required for goToPage")
		}
		return catalog.GoToPage{Page: req.Page}, nil

	case catalog.EventReset:
		return catalog.Reset{}, nil
	}

	return nil, errors.AddValidationError("type", "unknown event type")
}

// filterForm is the control panel of the HTML page.
type filterForm struct {
	Category    string `validate:"max=200"`
	Search      string `validate:"max=200"`
	InStockOnly bool
	PriceSort   string `validate:"omitempty,oneof=asc desc"`
	RatingSort  string `validate:"omitempty,oneof=sortRatingAsc sortRatingDesc"`
}

// events returns the form as one event per control, in control order.
func (f filterForm) events() ([]catalog.Event, error) {
	priceSort, ok := catalog.ParseSortOrder(f.PriceSort)
	if !ok {
		return nil, errors.AddValidationError("priceSort", "unknown price ordering")
	}

	ratingSort, ok := catalog.ParseRatingSort(f.RatingSort)
	if !ok {
		return nil, errors.AddValidationError("ratingSort", "unknown rating ordering")
	}

	return []catalog.Event{
		catalog.SetCategory{Category: f.Category},
		catalog.SetSearch{Term: f.Search},
		catalog.SetInStockOnly{Enabled: f.InStockOnly},
		catalog.SetPriceSort{Order: priceSort},
		catalog.SetRatingSort{Order: ratingSort},
	}, nil
}
