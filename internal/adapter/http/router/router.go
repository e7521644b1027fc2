package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/http/handler"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/adapter/http/middleware"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/logger"
	"github.com/Merey-A/WeddingMarketplace/listing-service/internal/platform/metrics"
)

// Handlers bundles the handler set the router mounts.
type Handlers struct {
	Wizard  *handler.WizardHandler
	Listing *handler.ListingHandler
	Billing *handler.BillingHandler
}

// New builds the service mux. Reads are public; everything that creates
// or mutates state sits behind JWT auth.
func New(h Handlers, jwtSecret string, m *metrics.Manager, log logger.Logger) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(chimiddleware.Recoverer)
	if m != nil {
		mux.Use(latency(m))
	}

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Get("/api/listings/search", h.Listing.Search)
	mux.Get("/api/listings/{id}", h.Listing.Get)
	mux.Get("/api/catalog/{vendorType}", h.Listing.Catalog)

	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret, log))

		r.Post("/api/listings", h.Wizard.Create)
		r.Put("/api/listings/{id}", h.Wizard.Update)
		r.Get("/api/listings/{id}/draft", h.Wizard.GetDraft)
		r.Post("/api/listings/{id}/subscribe", h.Wizard.Subscribe)
		r.Post("/api/listings/validate/{step}", h.Wizard.ValidateStep)

		r.Patch("/api/listings/{id}/archive", h.Listing.SetArchived)
		r.Delete("/api/listings/{id}", h.Listing.Delete)

		r.Post("/api/billing/checkout", h.Billing.CreateCheckoutSession)
	})

	return mux
}

// latency records per-route request duration using the chi route pattern
// so path parameters do not explode the label set.
func latency(m *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			m.HTTPRequestLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}
