package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/orderdesk/internal/config"
	"github.com/Lixing-Zhang/orderdesk/internal/models"
	"github.com/Lixing-Zhang/orderdesk/internal/service"
	"github.com/go-chi/chi/v5"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.ProductService
	paging  config.PagingConfig
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, paging config.PagingConfig, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		paging:  paging,
		logger:  logger,
	}
}

// ListProducts handles GET /products/?skip&limit
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePaging(r, h.paging)
	if err != nil {
		h.logger.Warn("invalid paging parameters", "query", r.URL.RawQuery)
		WriteError(w, http.StatusBadRequest, "Invalid paging parameters", h.logger)
		return
	}

	products, err := h.service.ListProducts(r.Context(), skip, limit)
	if err != nil {
		writeServiceError(w, err, h.logger, "list products")
		return
	}

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// CreateProduct handles POST /products/
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.ProductCreate
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("failed to decode product request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, h.logger, "create product")
		return
	}

	h.logger.Info("product created", "product_id", product.ID)
	WriteJSON(w, http.StatusOK, product, h.logger)
}

// GetProduct handles GET /products/{productId}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Product not found
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "productId")
	if err != nil {
		h.logger.Warn("invalid product ID format", "productId", chi.URLParam(r, "productId"))
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger, "get product", "product_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// UpdateProduct handles PUT /products/{productId}; omitted fields are kept
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "productId")
	if err != nil {
		h.logger.Warn("invalid product ID format", "productId", chi.URLParam(r, "productId"))
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	var req models.ProductUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("failed to decode product update", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err, h.logger, "update product", "product_id", id)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// DeleteProduct handles DELETE /products/{productId} and returns the removed product
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "productId")
	if err != nil {
		h.logger.Warn("invalid product ID format", "productId", chi.URLParam(r, "productId"))
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	product, err := h.service.DeleteProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger, "delete product", "product_id", id)
		return
	}

	h.logger.Info("product deleted", "product_id", id)
	WriteJSON(w, http.StatusOK, product, h.logger)
}
