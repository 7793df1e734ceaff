package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/orderdesk/internal/config"
	"github.com/Lixing-Zhang/orderdesk/internal/models"
	"github.com/Lixing-Zhang/orderdesk/internal/service"
	"github.com/go-chi/chi/v5"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	service *service.CustomerService
	paging  config.PagingConfig
	logger  *slog.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(service *service.CustomerService, paging config.PagingConfig, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		paging:  paging,
		logger:  logger,
	}
}

// ListCustomers handles GET /customers/?skip&limit
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePaging(r, h.paging)
	if err != nil {
		h.logger.Warn("invalid paging parameters", "query", r.URL.RawQuery)
		WriteError(w, http.StatusBadRequest, "Invalid paging parameters", h.logger)
		return
	}

	customers, err := h.service.ListCustomers(r.Context(), skip, limit)
	if err != nil {
		writeServiceError(w, err, h.logger, "list customers")
		return
	}

	WriteJSON(w, http.StatusOK, customers, h.logger)
}

// CreateCustomer handles POST /customers/
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CustomerCreate
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("failed to decode customer request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, h.logger, "create customer")
		return
	}

	h.logger.Info("customer created", "customer_id", customer.ID)
	WriteJSON(w, http.StatusOK, customer, h.logger)
}

// GetCustomer handles GET /customers/{customerId}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "customerId")
	if err != nil {
		h.logger.Warn("invalid customer ID format", "customerId", chi.URLParam(r, "customerId"))
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	customer, err := h.service.GetCustomer(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger, "get customer", "customer_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, customer, h.logger)
}

// ListCustomerOrders handles GET /customers/{customerId}/orders/
func (h *CustomerHandler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "customerId")
	if err != nil {
		h.logger.Warn("invalid customer ID format", "customerId", chi.URLParam(r, "customerId"))
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	orders, err := h.service.ListCustomerOrders(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger, "list customer orders", "customer_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, orders, h.logger)
}
