package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a purchase header owned by a customer.
// TotalAmount always equals the sum of its items' TotalPrice.
type Order struct {
	ID          int64           `json:"id"`
	CustomerID  int64           `json:"customer_id"`
	OrderDate   time.Time       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItem     `json:"items,omitempty"`
}

// OrderItem represents a line item of an order.
// ProductID becomes nil when the referenced product is deleted.
type OrderItem struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"order_id"`
	ProductID    *int64          `json:"product_id"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

// OrderCreate is the payload accepted by POST /orders/
type OrderCreate struct {
	CustomerID int64             `json:"customer_id" validate:"required,gt=0"`
	OrderDate  *time.Time        `json:"order_date"`
	Items      []OrderItemCreate `json:"items" validate:"omitempty,dive"`
}

// OrderItemCreate is the payload accepted by POST /orders/{id}/items/.
// Quantity and price bounds keep any line total within NUMERIC(12,2).
// PricePerUnit defaults to the product's current price when omitted.
type OrderItemCreate struct {
	ProductID    int64            `json:"product_id" validate:"required,gt=0"`
	Quantity     int              `json:"quantity" validate:"required,gte=1,lte=100000"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit" validate:"omitempty,gte=0,lte=99999.99"`
}

// OrderItemUpdate is the payload accepted by PUT /orders/{id}/items/{item_id}.
// Nil fields are left untouched.
type OrderItemUpdate struct {
	Quantity     *int             `json:"quantity" validate:"omitempty,gte=1,lte=100000"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit" validate:"omitempty,gte=0,lte=99999.99"`
}

// Apply copies the supplied fields onto item and recomputes its total
func (u OrderItemUpdate) Apply(item *OrderItem) {
	if u.Quantity != nil {
		item.Quantity = *u.Quantity
	}
	if u.PricePerUnit != nil {
		item.PricePerUnit = *u.PricePerUnit
	}
	item.TotalPrice = LineTotal(item.Quantity, item.PricePerUnit)
}

// LineTotal returns quantity × pricePerUnit
func LineTotal(quantity int, pricePerUnit decimal.Decimal) decimal.Decimal {
	return pricePerUnit.Mul(decimal.NewFromInt(int64(quantity)))
}

// SumTotals returns the sum of the items' TotalPrice
func SumTotals(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return total
}
