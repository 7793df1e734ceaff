package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/orderdesk/internal/repository"
	"github.com/Lixing-Zhang/orderdesk/internal/service"
	"github.com/Lixing-Zhang/orderdesk/internal/store"
)

// notFoundMessages maps repository sentinels to their 404 bodies
var notFoundMessages = []struct {
	err     error
	message string
}{
	{repository.ErrProductNotFound, "Product not found"},
	{repository.ErrCustomerNotFound, "Customer not found"},
	{repository.ErrOrderNotFound, "Order not found"},
	{repository.ErrOrderItemNotFound, "Order item not found"},
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

// writeServiceError maps a service error to its HTTP status.
// Unexpected errors are logged with op and never echoed to the client.
func writeServiceError(w http.ResponseWriter, err error, logger *slog.Logger, op string, attrs ...any) {
	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			logger.Info(op+": not found", append(attrs, "error", err)...)
			WriteError(w, http.StatusNotFound, nf.message, logger)
			return
		}
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		logger.Info(op+": validation failed", append(attrs, "error", err)...)
		WriteError(w, http.StatusBadRequest, verr.Message, logger)
		return
	}

	if storeErr, ok := store.ErrorContext(err); ok {
		attrs = append(attrs, "db_operation", storeErr.Op, "db_table", storeErr.Table)
	}
	logger.Error(op+": failed", append(attrs, "error", err)...)
	WriteError(w, http.StatusInternalServerError, "Internal server error", logger)
}
