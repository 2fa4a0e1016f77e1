package models

type PaginatedResponse struct {
	Data       any `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// CatalogView is what a presentation layer needs to draw the product list.
type CatalogView struct {
	Products   PaginatedResponse `json:"products"`
	CountLabel string            `json:"countLabel"`
	PageLabel  string            `json:"pageLabel"`
	Empty      bool              `json:"empty"`
	HasPrev    bool              `json:"hasPrev"`
	HasNext    bool              `json:"hasNext"`
	Categories []string          `json:"categories"`
	Controls   CatalogControls   `json:"controls"`
}

// CatalogControls mirrors the current control state so a client can redraw its inputs.
type CatalogControls struct {
	Category    string `json:"category"`
	Search      string `json:"search"`
	InStockOnly bool   `json:"inStockOnly"`
	PriceSort   string `json:"priceSort"`
	RatingSort  string `json:"ratingSort"`
}
