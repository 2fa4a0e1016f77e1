package models

// Product is a catalog record as held by a browsing session.
// InStock is derived once at normalization time from Stock.
type Product struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Rating    float64 `json:"rating"`
	Stock     int64   `json:"stock"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	InStock   bool    `json:"inStock"`
}

// ProductsResponse is the body returned by the upstream products endpoint.
type ProductsResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// CatalogEventRequest is the JSON body accepted by the events endpoint.
type CatalogEventRequest struct {
	Type  string `json:"type" validate:"required,oneof=setCategory setSearch setInStockOnly setPriceSort setRatingSort nextPage prevPage goToPage reset"`
	Value string `json:"value,omitempty" validate:"max=200"`
	Page  int    `json:"page,omitempty" validate:"omitempty,gte=1"`
}
