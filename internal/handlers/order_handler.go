package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/orderdesk/internal/models"
	"github.com/Lixing-Zhang/orderdesk/internal/service"
	"github.com/go-chi/chi/v5"
)

// OrderHandler handles order and order item HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// CreateOrder handles POST /orders/
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderCreate
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, h.log, "create order", "customer_id", req.CustomerID)
		return
	}

	h.log.Info("order created successfully", "order_id", order.ID, "items_count", len(order.Items))
	WriteJSON(w, http.StatusOK, order, h.log)
}

// GetOrder handles GET /orders/{orderId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err, h.log, "get order", "order_id", orderID)
		return
	}

	WriteJSON(w, http.StatusOK, order, h.log)
}

// AddItem handles POST /orders/{orderId}/items/
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var req models.OrderItemCreate
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode order item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	item, err := h.orderService.AddItem(r.Context(), orderID, req)
	if err != nil {
		writeServiceError(w, err, h.log, "add order item", "order_id", orderID, "product_id", req.ProductID)
		return
	}

	h.log.Info("order item added", "order_id", orderID, "item_id", item.ID)
	WriteJSON(w, http.StatusOK, item, h.log)
}

// ListItems handles GET /orders/{orderId}/items/
func (h *OrderHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return
	}

	items, err := h.orderService.ListItems(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err, h.log, "list order items", "order_id", orderID)
		return
	}

	WriteJSON(w, http.StatusOK, items, h.log)
}

// UpdateItem handles PUT /orders/{orderId}/items/{itemId}
func (h *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	orderID, itemID, ok := h.itemIDs(w, r)
	if !ok {
		return
	}

	var req models.OrderItemUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode order item update", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	item, err := h.orderService.UpdateItem(r.Context(), orderID, itemID, req)
	if err != nil {
		writeServiceError(w, err, h.log, "update order item", "order_id", orderID, "item_id", itemID)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.log)
}

// DeleteItem handles DELETE /orders/{orderId}/items/{itemId}
func (h *OrderHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	orderID, itemID, ok := h.itemIDs(w, r)
	if !ok {
		return
	}

	item, err := h.orderService.DeleteItem(r.Context(), orderID, itemID)
	if err != nil {
		writeServiceError(w, err, h.log, "delete order item", "order_id", orderID, "item_id", itemID)
		return
	}

	h.log.Info("order item deleted", "order_id", orderID, "item_id", itemID)
	WriteJSON(w, http.StatusOK, item, h.log)
}

func (h *OrderHandler) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := parseID(r, "orderId")
	if err != nil {
		h.log.Warn("invalid order ID format", "orderId", chi.URLParam(r, "orderId"))
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.log)
		return 0, false
	}
	return id, true
}

func (h *OrderHandler) itemIDs(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	orderID, ok := h.orderID(w, r)
	if !ok {
		return 0, 0, false
	}

	itemID, err := parseID(r, "itemId")
	if err != nil {
		h.log.Warn("invalid order item ID format", "itemId", chi.URLParam(r, "itemId"))
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.log)
		return 0, 0, false
	}
	return orderID, itemID, true
}
