package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Lixing-Zhang/orderdesk/internal/models"
	"github.com/Lixing-Zhang/orderdesk/internal/store"
	"github.com/shopspring/decimal"
)

const orderColumns = "id, customer_id, order_date, total_amount"

// OrderRepository reads and writes order headers within one session
type OrderRepository struct {
	sess *store.Session
}

// NewOrderRepository binds an order repository to a session
func NewOrderRepository(sess *store.Session) *OrderRepository {
	return &OrderRepository{sess: sess}
}

// GetByID returns an order header by its ID, without items
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	err := r.sess.QueryRow(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = ?", id,
	).Scan(&o.ID, &o.CustomerID, &o.OrderDate, &o.TotalAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, store.WrapError(err, "SELECT", store.TableOrders)
	}
	o.OrderDate = o.OrderDate.UTC()
	return &o, nil
}

// ListByCustomer returns every order owned by the customer, ordered by id
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	rows, err := r.sess.Query(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE customer_id = ? ORDER BY id", customerID)
	if err != nil {
		return nil, store.WrapError(err, "SELECT", store.TableOrders)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.OrderDate, &o.TotalAmount); err != nil {
			return nil, store.WrapError(err, "SELECT", store.TableOrders)
		}
		o.OrderDate = o.OrderDate.UTC()
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, store.WrapError(err, "SELECT", store.TableOrders)
	}

	return orders, nil
}

// Create inserts the order header and sets its ID
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	id, err := r.sess.Insert(ctx,
		"INSERT INTO orders (customer_id, order_date, total_amount) VALUES (?, ?, ?)",
		o.CustomerID, o.OrderDate, o.TotalAmount)
	if err != nil {
		return store.WrapError(err, "INSERT", store.TableOrders)
	}
	o.ID = id
	return nil
}

// UpdateTotal persists a recomputed total amount
func (r *OrderRepository) UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	_, err := r.sess.Exec(ctx, "UPDATE orders SET total_amount = ? WHERE id = ?", total, id)
	return store.WrapError(err, "UPDATE", store.TableOrders)
}
