// Package server assembles the HTTP router.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/orderdesk/internal/config"
	"github.com/Lixing-Zhang/orderdesk/internal/handlers"
	"github.com/Lixing-Zhang/orderdesk/internal/middleware"
	"github.com/Lixing-Zhang/orderdesk/internal/service"
	"github.com/Lixing-Zhang/orderdesk/internal/store"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires services and handlers over db and returns the API router.
// Collection routes accept paths with or without a trailing slash.
func NewRouter(cfg *config.Config, db *store.DB, log *slog.Logger) http.Handler {
	productHandler := handlers.NewProductHandler(service.NewProductService(db), cfg.Paging, log)
	customerHandler := handlers.NewCustomerHandler(service.NewCustomerService(db, cfg.Security.BcryptCost), cfg.Paging, log)
	orderHandler := handlers.NewOrderHandler(service.NewOrderService(db), log)
	healthHandler := handlers.NewHealthHandler(db, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.StripSlashes)
	r.Use(chimiddleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.ListProducts)
		r.Post("/", productHandler.CreateProduct)
		r.Get("/{productId}", productHandler.GetProduct)
		r.Put("/{productId}", productHandler.UpdateProduct)
		r.Delete("/{productId}", productHandler.DeleteProduct)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", customerHandler.ListCustomers)
		r.Post("/", customerHandler.CreateCustomer)
		r.Get("/{customerId}", customerHandler.GetCustomer)
		r.Get("/{customerId}/orders", customerHandler.ListCustomerOrders)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orderHandler.CreateOrder)
		r.Get("/{orderId}", orderHandler.GetOrder)

		r.Route("/{orderId}/items", func(r chi.Router) {
			r.Get("/", orderHandler.ListItems)
			r.Post("/", orderHandler.AddItem)
			r.Put("/{itemId}", orderHandler.UpdateItem)
			r.Delete("/{itemId}", orderHandler.DeleteItem)
		})
	})

	return r
}
