package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/Lixing-Zhang/orderdesk/internal/models"
)

const customerBody = `{"name":"A","surname":"B","email":"a@b.com","username":"ab","password":"x"}`

func createCustomer(t *testing.T, r http.Handler) models.Customer {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/customers", customerBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 creating customer, got %d (body %s)", w.Code, w.Body.String())
	}

	var customer models.Customer
	decodeBody(t, w, &customer)
	return customer
}

func TestCreateCustomer_ThenEmptyOrders(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/customers", customerBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body %s)", w.Code, w.Body.String())
	}
	if body := w.Body.String(); strings.Contains(body, "password") {
		t.Errorf("customer response must not contain password data: %s", body)
	}

	var customer models.Customer
	decodeBody(t, w, &customer)
	if customer.ID == 0 {
		t.Fatal("expected customer ID to be assigned")
	}

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/customers/%d/orders", customer.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}

func TestCreateCustomer_Invalid(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name          string
		body          string
		expectedError string
	}{
		{
			name:          "malformed JSON",
			body:          `{`,
			expectedError: "Invalid request body",
		},
		{
			name:          "invalid email",
			body:          `{"name":"A","surname":"B","email":"nope","username":"ab","password":"x"}`,
			expectedError: "email must be a valid email address",
		},
		{
			name:          "missing username",
			body:          `{"name":"A","surname":"B","email":"a@b.com","password":"x"}`,
			expectedError: "username is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/customers", tt.body)
			assertError(t, w, http.StatusBadRequest, tt.expectedError)
		})
	}
}

func TestGetCustomer(t *testing.T) {
	r := newTestRouter(t)
	created := createCustomer(t, r)

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/customers/%d", created.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var customer models.Customer
	decodeBody(t, w, &customer)
	if customer.Email != "a@b.com" || customer.Username != "ab" {
		t.Errorf("unexpected customer %+v", customer)
	}

	w = doRequest(t, r, http.MethodGet, "/customers/999", "")
	assertError(t, w, http.StatusNotFound, "Customer not found")

	w = doRequest(t, r, http.MethodGet, "/customers/999/orders", "")
	assertError(t, w, http.StatusNotFound, "Customer not found")

	w = doRequest(t, r, http.MethodGet, "/customers/abc", "")
	assertError(t, w, http.StatusBadRequest, "Invalid ID supplied")
}

func TestListCustomers(t *testing.T) {
	r := newTestRouter(t)
	createCustomer(t, r)

	w := doRequest(t, r, http.MethodGet, "/customers", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var customers []models.Customer
	decodeBody(t, w, &customers)
	if len(customers) != 1 {
		t.Errorf("expected 1 customer, got %d", len(customers))
	}

	w = doRequest(t, r, http.MethodGet, "/customers?limit=-1", "")
	assertError(t, w, http.StatusBadRequest, "Invalid paging parameters")
}
