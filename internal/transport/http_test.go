package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medify/storefront/internal/cart"
	"github.com/medify/storefront/internal/checkout"
	"github.com/medify/storefront/internal/order"
	"github.com/medify/storefront/internal/storage"
	"github.com/medify/storefront/internal/transport"
)

func newServer(t *testing.T) (*httptest.Server, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	numbers, err := checkout.NewNumberGenerator("ORD", 1)
	require.NoError(t, err)

	router := transport.NewRouter(transport.RouterOptions{
		Store:          store,
		Numbers:        numbers,
		DeliveryFee:    5.99,
		Delay:          0,
		AllowedOrigins: []string{"*"},
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, store
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

type cartView struct {
	Items     []cart.Item `json:"items"`
	ItemCount int         `json:"itemCount"`
	Subtotal  float64     `json:"subtotal"`
}

func validCheckoutBody() map[string]any {
	return map[string]any{
		"delivery": map[string]any{
			"fullName":       "Jordan Reyes",
			"email":          "jordan@example.com",
			"phone":          "555-0134",
			"address":        "12 Elm Street",
			"city":           "Springfield",
			"state":          "IL",
			"zipCode":        "62704",
			"deliveryMethod": "pickup",
			"paymentMethod":  "cash",
		},
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCatalog_DemoMode(t *testing.T) {
	srv, _ := newServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/catalog?demo=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[struct {
		Products   []map[string]any `json:"products"`
		Categories []string         `json:"categories"`
	}](t, resp)

	assert.Len(t, body.Products, 5)
	assert.Contains(t, body.Categories, "Pain Relief")
}

func TestCartFlow(t *testing.T) {
	srv, store := newServer(t)
	base := srv.URL + "/cart"

	// Empty to start.
	resp := doJSON(t, http.MethodGet, base+"?demo=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[cartView](t, resp).ItemCount)

	// Add demo product d4 twice.
	for i := 0; i < 2; i++ {
		resp = doJSON(t, http.MethodPost, base+"/items?demo=1", map[string]string{"productId": "d4"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	view := decode[cartView](t, resp)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.ItemCount)
	assert.InDelta(t, 19.98, view.Subtotal, 0.0001)

	// Unknown product is a 404.
	resp = doJSON(t, http.MethodPost, base+"/items?demo=1", map[string]string{"productId": "nope"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Decrement down to zero removes the item and the key.
	for i := 0; i < 2; i++ {
		resp = doJSON(t, http.MethodPatch, base+"/items/d4?demo=1", map[string]int{"delta": -1})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 0, decode[cartView](t, resp).ItemCount)

	_, ok, err := store.Get(context.Background(), cart.ScopeFor("pharmacy2", true))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckout_EmptyCart(t *testing.T) {
	srv, _ := newServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/checkout?demo=1", validCheckoutBody())
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCheckout_InvalidCard(t *testing.T) {
	srv, _ := newServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/cart/items?demo=1", map[string]string{"productId": "d4"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := validCheckoutBody()
	body["delivery"].(map[string]any)["paymentMethod"] = "card"
	body["card"] = map[string]string{
		"cardholderName": "Jordan Reyes",
		"cardNumber":     "4111",
		"expiry":         "09/27",
		"cvc":            "123",
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/checkout?demo=1", body)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "cardNumber", decode[map[string]string](t, resp)["field"])

	// The cart survives the failed submission.
	resp = doJSON(t, http.MethodGet, srv.URL+"/cart?demo=1", nil)
	assert.Equal(t, 1, decode[cartView](t, resp).ItemCount)
}

func TestCheckout_PlacesOrder(t *testing.T) {
	srv, _ := newServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/cart/items?demo=1", map[string]string{"productId": "d4"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/checkout?demo=1", validCheckoutBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	placed := decode[order.Order](t, resp)
	assert.NotEmpty(t, placed.OrderNumber)
	assert.InDelta(t, 9.99, placed.Total, 0.0001)

	// Cart cleared.
	resp = doJSON(t, http.MethodGet, srv.URL+"/cart?demo=1", nil)
	assert.Equal(t, 0, decode[cartView](t, resp).ItemCount)

	// Order retrievable and listed.
	resp = doJSON(t, http.MethodGet, srv.URL+"/orders/"+placed.OrderNumber, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/orders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]order.Order](t, resp), 1)

	// Pickup QR renders as PNG.
	resp = doJSON(t, http.MethodGet, srv.URL+"/orders/"+placed.OrderNumber+"/pickup-qr", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestRequestID(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
