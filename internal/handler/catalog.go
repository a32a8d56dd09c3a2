package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/medify/storefront/internal/catalog"
	"github.com/medify/storefront/internal/profile"
)

// CatalogHandler serves the product list and the read-only business
// profile to the rendered storefronts.
type CatalogHandler struct {
	catalog  *catalog.Service
	profiles *profile.Reader
}

func NewCatalogHandler(catalogSvc *catalog.Service, profiles *profile.Reader) *CatalogHandler {
	return &CatalogHandler{catalog: catalogSvc, profiles: profiles}
}

// GetCatalog returns the mode's products, optionally filtered by ?q= and
// ?category=, plus the distinct category list for the filter bar.
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	_, demo := requestScope(r)

	products := h.catalog.Products(r.Context(), demo)
	filtered := catalog.Filter(products, r.URL.Query().Get("q"), r.URL.Query().Get("category"))

	response := struct {
		Products   []catalog.Product `json:"products"`
		Categories []string          `json:"categories"`
	}{
		Products:   filtered,
		Categories: h.catalog.Categories(r.Context(), demo),
	}
	if response.Products == nil {
		response.Products = []catalog.Product{}
	}
	if response.Categories == nil {
		response.Categories = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Info().Msgf("Failed to encode catalog response: %v", err)
		http.Error(w, "invalid json", http.StatusInternalServerError)
	}
}

// GetProfile returns the collaborator-owned business profile and contact
// details from the setup blob.
func (h *CatalogHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	setup := h.profiles.PharmacySetup(r.Context())

	response := struct {
		Business profile.BusinessInfo `json:"business"`
		Phone    string               `json:"phone,omitempty"`
		Address  string               `json:"address,omitempty"`
	}{
		Business: h.profiles.BusinessInfo(r.Context()),
		Phone:    setup.Phone,
		Address:  setup.Address,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Info().Msgf("Failed to encode profile response: %v", err)
		http.Error(w, "invalid json", http.StatusInternalServerError)
	}
}
