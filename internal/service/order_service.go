package service

import (
	"context"
	"time"

	"github.com/Lixing-Zhang/orderdesk/internal/models"
	"github.com/Lixing-Zhang/orderdesk/internal/repository"
	"github.com/Lixing-Zhang/orderdesk/internal/store"
	"github.com/shopspring/decimal"
)

// OrderService handles order and order item business logic.
// Every mutation of an order's items recomputes and persists the order's
// total amount in the same session.
type OrderService struct {
	db  *store.DB
	now func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(db *store.DB) *OrderService {
	return &OrderService{
		db:  db,
		now: time.Now,
	}
}

// CreateOrder creates an order for an existing customer, optionally with
// its first items. The total amount is derived from the items.
func (s *OrderService) CreateOrder(ctx context.Context, in models.OrderCreate) (*models.Order, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerID:  in.CustomerID,
		OrderDate:   s.now().UTC().Truncate(time.Microsecond),
		TotalAmount: decimal.Zero,
	}
	if in.OrderDate != nil {
		order.OrderDate = in.OrderDate.UTC().Truncate(time.Microsecond)
	}

	err := s.db.WithSession(ctx, func(sess *store.Session) error {
		if _, err := repository.NewCustomerRepository(sess).GetByID(ctx, in.CustomerID); err != nil {
			return err
		}

		orders := repository.NewOrderRepository(sess)
		if err := orders.Create(ctx, order); err != nil {
			return err
		}

		if len(in.Items) == 0 {
			return nil
		}

		items := make([]models.OrderItem, 0, len(in.Items))
		for _, itemIn := range in.Items {
			item, err := s.insertItem(ctx, sess, order.ID, itemIn)
			if err != nil {
				return err
			}
			items = append(items, *item)
		}

		order.Items = items
		order.TotalAmount = models.SumTotals(items)
		return orders.UpdateTotal(ctx, order.ID, order.TotalAmount)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder returns an order header by ID
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var order *models.Order
	err := s.db.WithSession(ctx, func(sess *store.Session) error {
		var err error
		order, err = repository.NewOrderRepository(sess).GetByID(ctx, id)
		return err
	})
	return order, err
}

// AddItem attaches a new line item to an existing order
func (s *OrderService) AddItem(ctx context.Context, orderID int64, in models.OrderItemCreate) (*models.OrderItem, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var item *models.OrderItem
	err := s.db.WithSession(ctx, func(sess *store.Session) error {
		if _, err := repository.NewOrderRepository(sess).GetByID(ctx, orderID); err != nil {
			return err
		}

		var err error
		item, err = s.insertItem(ctx, sess, orderID, in)
		if err != nil {
			return err
		}
		return recalculateTotal(ctx, sess, orderID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns the items of an existing order
func (s *OrderService) ListItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.WithSession(ctx, func(sess *store.Session) error {
		if _, err := repository.NewOrderRepository(sess).GetByID(ctx, orderID); err != nil {
			return err
		}

		var err error
		items, err = repository.NewOrderItemRepository(sess).ListByOrder(ctx, orderID)
		return err
	})
	return items, err
}

// UpdateItem applies the supplied quantity and/or price to an item of the order
func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID int64, in models.OrderItemUpdate) (*models.OrderItem, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var item *models.OrderItem
	err := s.db.WithSession(ctx, func(sess *store.Session) error {
		if _, err := repository.NewOrderRepository(sess).GetByID(ctx, orderID); err != nil {
			return err
		}

		items := repository.NewOrderItemRepository(sess)

		var err error
		item, err = items.GetByID(ctx, orderID, itemID)
		if err != nil {
			return err
		}

		if in.PricePerUnit != nil {
			rounded := roundMoney(*in.PricePerUnit)
			in.PricePerUnit = &rounded
		}
		in.Apply(item)

		if err := items.Update(ctx, item); err != nil {
			return err
		}
		return recalculateTotal(ctx, sess, orderID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item from the order and returns its last state
func (s *OrderService) DeleteItem(ctx context.Context, orderID, itemID int64) (*models.OrderItem, error) {
	var item *models.OrderItem
	err := s.db.WithSession(ctx, func(sess *store.Session) error {
		if _, err := repository.NewOrderRepository(sess).GetByID(ctx, orderID); err != nil {
			return err
		}

		items := repository.NewOrderItemRepository(sess)

		var err error
		item, err = items.GetByID(ctx, orderID, itemID)
		if err != nil {
			return err
		}

		if err := items.Delete(ctx, orderID, itemID); err != nil {
			return err
		}
		return recalculateTotal(ctx, sess, orderID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// insertItem prices and stores one line item. The product must exist; its
// current price is used when the payload carries none.
func (s *OrderService) insertItem(ctx context.Context, sess *store.Session, orderID int64, in models.OrderItemCreate) (*models.OrderItem, error) {
	product, err := repository.NewProductRepository(sess).GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	price := product.Price
	if in.PricePerUnit != nil {
		price = *in.PricePerUnit
	}
	price = roundMoney(price)

	productID := product.ID
	item := &models.OrderItem{
		OrderID:      orderID,
		ProductID:    &productID,
		Quantity:     in.Quantity,
		PricePerUnit: price,
		TotalPrice:   models.LineTotal(in.Quantity, price),
	}

	if err := repository.NewOrderItemRepository(sess).Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// recalculateTotal persists the sum of the order's item totals
func recalculateTotal(ctx context.Context, sess *store.Session, orderID int64) error {
	items, err := repository.NewOrderItemRepository(sess).ListByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return repository.NewOrderRepository(sess).UpdateTotal(ctx, orderID, models.SumTotals(items))
}
