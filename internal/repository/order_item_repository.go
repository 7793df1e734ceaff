package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Lixing-Zhang/orderdesk/internal/models"
	"github.com/Lixing-Zhang/orderdesk/internal/store"
)

const orderItemColumns = "id, order_id, product_id, quantity, price_per_unit, total_price"

// OrderItemRepository reads and writes order line items within one session.
// Every lookup is scoped to the owning order.
type OrderItemRepository struct {
	sess *store.Session
}

// NewOrderItemRepository binds an order item repository to a session
func NewOrderItemRepository(sess *store.Session) *OrderItemRepository {
	return &OrderItemRepository{sess: sess}
}

func scanOrderItem(row interface{ Scan(...any) error }, item *models.OrderItem) error {
	return row.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.PricePerUnit, &item.TotalPrice)
}

// ListByOrder returns the items of one order, ordered by id
func (r *OrderItemRepository) ListByOrder(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := r.sess.Query(ctx,
		"SELECT "+orderItemColumns+" FROM order_items WHERE order_id = ? ORDER BY id", orderID)
	if err != nil {
		return nil, store.WrapError(err, "SELECT", store.TableOrderItems)
	}
	defer rows.Close()

	items := make([]models.OrderItem, 0)
	for rows.Next() {
		var item models.OrderItem
		if err := scanOrderItem(rows, &item); err != nil {
			return nil, store.WrapError(err, "SELECT", store.TableOrderItems)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, store.WrapError(err, "SELECT", store.TableOrderItems)
	}

	return items, nil
}

// GetByID returns the item only if it belongs to the given order
func (r *OrderItemRepository) GetByID(ctx context.Context, orderID, itemID int64) (*models.OrderItem, error) {
	var item models.OrderItem
	err := scanOrderItem(r.sess.QueryRow(ctx,
		"SELECT "+orderItemColumns+" FROM order_items WHERE id = ? AND order_id = ?", itemID, orderID,
	), &item)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderItemNotFound
	}
	if err != nil {
		return nil, store.WrapError(err, "SELECT", store.TableOrderItems)
	}
	return &item, nil
}

// Create inserts the item and sets its ID
func (r *OrderItemRepository) Create(ctx context.Context, item *models.OrderItem) error {
	id, err := r.sess.Insert(ctx,
		`INSERT INTO order_items (order_id, product_id, quantity, price_per_unit, total_price)
		VALUES (?, ?, ?, ?, ?)`,
		item.OrderID, item.ProductID, item.Quantity, item.PricePerUnit, item.TotalPrice)
	if err != nil {
		return store.WrapError(err, "INSERT", store.TableOrderItems)
	}
	item.ID = id
	return nil
}

// Update overwrites quantity, price and total. Identity and foreign keys never change.
func (r *OrderItemRepository) Update(ctx context.Context, item *models.OrderItem) error {
	_, err := r.sess.Exec(ctx,
		"UPDATE order_items SET quantity = ?, price_per_unit = ?, total_price = ? WHERE id = ? AND order_id = ?",
		item.Quantity, item.PricePerUnit, item.TotalPrice, item.ID, item.OrderID)
	return store.WrapError(err, "UPDATE", store.TableOrderItems)
}

// Delete removes the item if it belongs to the given order
func (r *OrderItemRepository) Delete(ctx context.Context, orderID, itemID int64) error {
	res, err := r.sess.Exec(ctx, "DELETE FROM order_items WHERE id = ? AND order_id = ?", itemID, orderID)
	if err != nil {
		return store.WrapError(err, "DELETE", store.TableOrderItems)
	}
	return requireAffected(res, ErrOrderItemNotFound, store.TableOrderItems)
}
