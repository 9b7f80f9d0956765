package domain

import (
	"sort"
	"strings"
)

// Product is a read-only catalog record sourced from the content store.
// The application never writes products back; the JSON field names mirror the
// content store's projection so fetched records decode directly.
type Product struct {
	ID                 string   `json:"_id"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage,omitempty"`
	ImageURL           string   `json:"imageUrl,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	IsNew              bool     `json:"isNew,omitempty"`
}

// Sort modes for the shop grid.
const (
	SortDefault      = "default"
	SortPriceLowHigh = "priceLowHigh"
	SortPriceHighLow = "priceHighLow"
)

// SortProducts returns a copy of products ordered by the given mode.
// SortDefault (and any unknown mode) keeps the source order unchanged. The
// price modes sort stably, so products with equal prices keep their original
// relative order.
func SortProducts(products []Product, mode string) []Product {
	sorted := make([]Product, len(products))
	copy(sorted, products)

	switch mode {
	case SortPriceLowHigh:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})
	case SortPriceHighLow:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price > sorted[j].Price
		})
	}

	return sorted
}

// Paginate returns the visible slice for a 1-indexed page number. Bounds are
// clamped to the sequence length; an out-of-range page yields an empty slice
// rather than an error.
func Paginate(products []Product, pageSize, pageNumber int) []Product {
	start := (pageNumber - 1) * pageSize
	end := pageNumber * pageSize

	if start < 0 || start >= len(products) {
		return []Product{}
	}
	if end > len(products) {
		end = len(products)
	}

	return products[start:end]
}

// TotalPages returns the number of pages needed to show count items at
// pageSize items per page (ceiling division).
func TotalPages(count, pageSize int) int {
	pages := count / pageSize
	if count%pageSize > 0 {
		pages++
	}
	return pages
}

// SearchByTitle returns the products whose title contains the query as a
// case-insensitive substring, in source order. An empty query matches every
// product, since the empty string is a substring of every title.
func SearchByTitle(products []Product, query string) []Product {
	queryLower := strings.ToLower(query)

	matches := make([]Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), queryLower) {
			matches = append(matches, p)
		}
	}
	return matches
}

// RelatedByTags returns the products sharing at least one tag with the given
// product, excluding the product itself, in source order.
func RelatedByTags(products []Product, product Product) []Product {
	tagSet := make(map[string]struct{}, len(product.Tags))
	for _, t := range product.Tags {
		tagSet[t] = struct{}{}
	}

	related := make([]Product, 0)
	for _, p := range products {
		if p.ID == product.ID {
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[t]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}
