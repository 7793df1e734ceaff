package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lixing-Zhang/orderdesk/internal/config"
	"github.com/Lixing-Zhang/orderdesk/internal/service"
	"github.com/Lixing-Zhang/orderdesk/internal/store/storetest"
	"github.com/Lixing-Zhang/orderdesk/pkg/logger"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

var testPaging = config.PagingConfig{DefaultLimit: 10, MaxLimit: 5}

// newTestRouter mounts every handler over a fresh in-memory store
func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	db := storetest.New(t)
	log := logger.New("error")

	products := NewProductHandler(service.NewProductService(db), testPaging, log)
	customers := NewCustomerHandler(service.NewCustomerService(db, bcrypt.MinCost), testPaging, log)
	orders := NewOrderHandler(service.NewOrderService(db), log)

	r := chi.NewRouter()
	r.Get("/products", products.ListProducts)
	r.Post("/products", products.CreateProduct)
	r.Get("/products/{productId}", products.GetProduct)
	r.Put("/products/{productId}", products.UpdateProduct)
	r.Delete("/products/{productId}", products.DeleteProduct)

	r.Get("/customers", customers.ListCustomers)
	r.Post("/customers", customers.CreateCustomer)
	r.Get("/customers/{customerId}", customers.GetCustomer)
	r.Get("/customers/{customerId}/orders", customers.ListCustomerOrders)

	r.Post("/orders", orders.CreateOrder)
	r.Get("/orders/{orderId}", orders.GetOrder)
	r.Get("/orders/{orderId}/items", orders.ListItems)
	r.Post("/orders/{orderId}/items", orders.AddItem)
	r.Put("/orders/{orderId}/items/{itemId}", orders.UpdateItem)
	r.Delete("/orders/{orderId}/items/{itemId}", orders.DeleteItem)

	return r
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()

	if err := json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	if w.Code != status {
		t.Errorf("expected status %d, got %d (body %s)", status, w.Code, w.Body.String())
	}

	var response map[string]string
	decodeBody(t, w, &response)
	if response["error"] != message {
		t.Errorf("expected error message %q, got %q", message, response["error"])
	}
}

func TestParsePaging(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantSkip  int
		wantLimit int
		wantErr   bool
	}{
		{name: "defaults", query: "", wantSkip: 0, wantLimit: 10},
		{name: "explicit", query: "skip=3&limit=4", wantSkip: 3, wantLimit: 4},
		{name: "limit capped", query: "limit=1000", wantSkip: 0, wantLimit: 50},
		{name: "zero limit", query: "limit=0", wantSkip: 0, wantLimit: 0},
		{name: "negative skip", query: "skip=-1", wantErr: true},
		{name: "negative limit", query: "limit=-5", wantErr: true},
		{name: "non-integer", query: "limit=ten", wantErr: true},
		{name: "float", query: "skip=1.5", wantErr: true},
	}

	paging := config.PagingConfig{DefaultLimit: 10, MaxLimit: 50}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/products?"+tt.query, nil)

			skip, limit, err := parsePaging(req, paging)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePaging() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if skip != tt.wantSkip || limit != tt.wantLimit {
				t.Errorf("parsePaging() = (%d, %d), want (%d, %d)", skip, limit, tt.wantSkip, tt.wantLimit)
			}
		})
	}
}
