// Package profile reads the collaborator-owned setup blobs: the business
// profile filled in on the dashboard and the pharmacy setup holding the
// user-entered product catalog. The engine consumes both read-only; the
// dashboard owns the keys and their shape, so decoding is deliberately
// lenient and a missing or corrupt blob yields zero values, never an
// error.
package profile

import (
	"context"

	"github.com/spf13/cast"

	"github.com/medify/storefront/internal/storage"
)

const (
	KeyBusinessInfo  = "businessInfo"
	KeyPharmacySetup = "pharmacySetup"
)

type BusinessInfo struct {
	Name         string `json:"name,omitempty"`
	Logo         string `json:"logo,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	Address      string `json:"address,omitempty"`
}

// SetupProduct is one row of the user-entered catalog. The dashboard
// serializes these loosely (numbers for prices, strings for booleans have
// both been seen), so fields are coerced rather than strictly typed.
type SetupProduct struct {
	Name        string
	Category    string
	Description string
	Price       string
	InStock     bool
}

type PharmacySetup struct {
	Phone    string
	Address  string
	Products []SetupProduct
}

type Reader struct {
	store storage.Store
}

func NewReader(store storage.Store) *Reader {
	return &Reader{store: store}
}

func (r *Reader) BusinessInfo(ctx context.Context) BusinessInfo {
	var info BusinessInfo

	raw, ok, err := r.store.Get(ctx, KeyBusinessInfo)
	if err != nil || !ok {
		return BusinessInfo{}
	}
	if !storage.DecodeInto(raw, &info) {
		return BusinessInfo{}
	}

	return info
}

func (r *Reader) PharmacySetup(ctx context.Context) PharmacySetup {
	raw, ok, err := r.store.Get(ctx, KeyPharmacySetup)
	if err != nil || !ok {
		return PharmacySetup{}
	}

	var blob map[string]any
	if !storage.DecodeInto(raw, &blob) {
		return PharmacySetup{}
	}

	setup := PharmacySetup{
		Phone:   cast.ToString(blob["phone"]),
		Address: cast.ToString(blob["address"]),
	}

	rows, ok := blob["products"].([]any)
	if !ok {
		return setup
	}

	for _, row := range rows {
		fields, ok := row.(map[string]any)
		if !ok {
			continue
		}

		p := SetupProduct{
			Name:        cast.ToString(fields["name"]),
			Category:    cast.ToString(fields["category"]),
			Description: cast.ToString(fields["description"]),
			Price:       cast.ToString(fields["price"]),
			InStock:     true,
		}
		// Absent means in stock; only an explicit false flips it.
		if v, present := fields["inStock"]; present {
			p.InStock = cast.ToBool(v)
		}

		setup.Products = append(setup.Products, p)
	}

	return setup
}
