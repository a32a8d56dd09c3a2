package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/medify/storefront/internal/catalog"
	"github.com/medify/storefront/internal/checkout"
	"github.com/medify/storefront/internal/events"
	"github.com/medify/storefront/internal/handler"
	"github.com/medify/storefront/internal/order"
	"github.com/medify/storefront/internal/pricing"
	"github.com/medify/storefront/internal/profile"
	"github.com/medify/storefront/internal/storage"
)

// RouterOptions carries everything the HTTP surface depends on.
type RouterOptions struct {
	Store          storage.Store
	Numbers        *checkout.NumberGenerator
	Publisher      events.Publisher
	DeliveryFee    float64
	Delay          time.Duration
	AllowedOrigins []string
}

// NewRouter wires the storefront API. The rendered storefronts call it
// cross-origin, so CORS is part of the surface.
func NewRouter(opts RouterOptions) http.Handler {
	profiles := profile.NewReader(opts.Store)
	catalogSvc := catalog.NewService(profiles)
	orders := order.NewRepository(opts.Store)
	calc := pricing.NewCalculator(opts.DeliveryFee)

	cartHandler := handler.NewCartHandler(opts.Store, catalogSvc)
	checkoutHandler := handler.NewCheckoutHandler(opts.Store, orders, calc, opts.Numbers, opts.Publisher, opts.Delay)
	orderHandler := handler.NewOrderHandler(orders)
	catalogHandler := handler.NewCatalogHandler(catalogSvc, profiles)

	r := chi.NewRouter()
	r.Use(requestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/catalog", catalogHandler.GetCatalog)
	r.Get("/profile", catalogHandler.GetProfile)

	r.Get("/cart", cartHandler.GetCart)
	r.Post("/cart/items", cartHandler.AddItem)
	r.Patch("/cart/items/{productID}", cartHandler.ChangeQuantity)
	r.Delete("/cart/items/{productID}", cartHandler.RemoveItem)

	r.Post("/checkout", checkoutHandler.Submit)

	r.Get("/orders", orderHandler.ListOrders)
	r.Get("/orders/{number}", orderHandler.GetOrder)
	r.Get("/orders/{number}/pickup-qr", orderHandler.PickupCode)

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})

	return c.Handler(r)
}

// requestID tags every request with an id for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.NewV4()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		logger := log.With().Str("request_id", id.String()).Logger()
		w.Header().Set("X-Request-ID", id.String())
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
	})
}
