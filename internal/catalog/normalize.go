package catalog

import "github.com/aaravmahajanofficial/catalog-browser/internal/models"

// Normalize returns a copy of products with InStock derived from Stock.
// The collection is immutable after this point, so the flag is never recomputed.
func Normalize(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		p.InStock = p.Stock > 0
		out[i] = p
	}

	return out
}

// Categories lists the distinct non-empty categories of products in first-seen order.
func Categories(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)

	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}

	return out
}
