package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Lixing-Zhang/orderdesk/internal/config"
	"github.com/Lixing-Zhang/orderdesk/internal/models"
	"github.com/Lixing-Zhang/orderdesk/internal/store"
	"github.com/Lixing-Zhang/orderdesk/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// newFileServer serves the router over a file-backed SQLite store with a
// multi-connection pool, the way the binary runs by default
func newFileServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{RequestTimeout: 30},
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			DSN:          "file:" + filepath.Join(t.TempDir(), "orders.sqlite"),
			MaxOpenConns: 8,
			MaxIdleConns: 8,
		},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"*"}},
		Paging:   config.PagingConfig{DefaultLimit: 10, MaxLimit: 100},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}

	log := logger.New("error")
	db, err := store.Open(context.Background(), cfg.Database, log)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	srv := httptest.NewServer(NewRouter(cfg, db, log))
	t.Cleanup(srv.Close)
	return srv
}

// postConcurrently fires n POST requests at once and expects every one to succeed
func postConcurrently(t *testing.T, srv *httptest.Server, n int, request func(i int) (path, body string)) {
	t.Helper()

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path, body := request(i)
			errs[i] = post(srv, path, body)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("request %d: %v", i, err)
		}
	}
}

func post(srv *httptest.Server, path, body string) error {
	resp, err := srv.Client().Post(srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("expected status 200, got %d (body %s)", resp.StatusCode, data)
	}
	return nil
}

func TestRouter_ConcurrentWrites(t *testing.T) {
	srv := newFileServer(t)
	const n = 40

	postConcurrently(t, srv, n, func(i int) (string, string) {
		return "/products/", fmt.Sprintf(`{"name":"Product %d","price":1.25}`, i)
	})

	_, body := send(t, srv, http.MethodGet, "/products/?limit=100", "")
	var products []models.Product
	decode(t, body, &products)
	if len(products) != n {
		t.Fatalf("expected %d products, got %d", n, len(products))
	}

	_, body = send(t, srv, http.MethodPost, "/customers/",
		`{"name":"A","surname":"B","email":"a@b.com","username":"ab","password":"x"}`)
	var customer models.Customer
	decode(t, body, &customer)

	_, body = send(t, srv, http.MethodPost, "/orders/", fmt.Sprintf(`{"customer_id":%d}`, customer.ID))
	var order models.Order
	decode(t, body, &order)

	// read-then-write sessions on the same order
	postConcurrently(t, srv, n, func(i int) (string, string) {
		return fmt.Sprintf("/orders/%d/items/", order.ID), fmt.Sprintf(`{"product_id":%d,"quantity":2}`, products[i].ID)
	})

	_, body = send(t, srv, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), "")
	decode(t, body, &order)
	if want := decimal.RequireFromString("100"); !order.TotalAmount.Equal(want) {
		t.Errorf("expected order total %s, got %s", want, order.TotalAmount)
	}
}
