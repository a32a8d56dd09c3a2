// Package catalog supplies the products a storefront can sell. Demo
// previews render a fixed fixture set; live storefronts render whatever
// the owner entered during pharmacy setup.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/medify/storefront/internal/profile"
)

// Product is an immutable catalog entry. Price keeps the display form
// (e.g. "$9.99"); parsing happens in the pricing package.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	InStock     bool   `json:"inStock"`
}

// DemoProducts returns the fixture catalog shown in demo previews.
func DemoProducts() []Product {
	return []Product{
		{ID: "d1", Name: "Vitamin D3 2000IU", Category: "Vitamins", Description: "Daily support for bone health and immunity.", Price: "$15.99", InStock: true},
		{ID: "d2", Name: "Allergy Relief 24h", Category: "OTC", Description: "Non-drowsy relief for seasonal allergies.", Price: "$13.99", InStock: true},
		{ID: "d3", Name: "First Aid Kit", Category: "Care", Description: "Essentials for home and travel.", Price: "$19.99", InStock: true},
		{ID: "d4", Name: "Ibuprofen 200mg", Category: "Pain Relief", Description: "Fast pain relief for headaches & fever.", Price: "$9.99", InStock: true},
		{ID: "d5", Name: "Digital Thermometer", Category: "Wellness", Description: "Accurate readings in seconds.", Price: "$7.99", InStock: true},
	}
}

type Service struct {
	profiles *profile.Reader
}

func NewService(profiles *profile.Reader) *Service {
	return &Service{profiles: profiles}
}

// Products returns the catalog for the requested mode. Live products come
// from the setup blob: rows with blank names are dropped, ids are assigned
// positionally so cart entries stay stable across reloads, and missing
// fields fall back to the same defaults the setup form shows.
func (s *Service) Products(ctx context.Context, demo bool) []Product {
	if demo {
		return DemoProducts()
	}

	setup := s.profiles.PharmacySetup(ctx)
	products := make([]Product, 0, len(setup.Products))
	for _, row := range setup.Products {
		if strings.TrimSpace(row.Name) == "" {
			continue
		}

		p := Product{
			ID:          fmt.Sprintf("user-%d", len(products)),
			Name:        row.Name,
			Category:    row.Category,
			Description: row.Description,
			Price:       row.Price,
			InStock:     row.InStock,
		}
		if p.Category == "" {
			p.Category = "General"
		}
		if p.Price == "" {
			p.Price = "$0.00"
		}

		products = append(products, p)
	}

	return products
}

// FindByID looks a product up in the mode's catalog.
func (s *Service) FindByID(ctx context.Context, demo bool, id string) (Product, bool) {
	for _, p := range s.Products(ctx, demo) {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Categories returns the distinct categories of the mode's catalog,
// sorted.
func (s *Service) Categories(ctx context.Context, demo bool) []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, p := range s.Products(ctx, demo) {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories
}

// Filter narrows a product list by category and a case-insensitive query
// over name, category, and description. Empty arguments match everything.
func Filter(products []Product, query, category string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []Product
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}
