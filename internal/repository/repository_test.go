package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Lixing-Zhang/orderdesk/internal/models"
	"github.com/Lixing-Zhang/orderdesk/internal/store"
	"github.com/Lixing-Zhang/orderdesk/internal/store/storetest"
	"github.com/shopspring/decimal"
)

// inSession runs fn in a committed session and fails the test on error
func inSession(t *testing.T, db *store.DB, fn func(ctx context.Context, s *store.Session) error) {
	t.Helper()

	ctx := context.Background()
	if err := db.WithSession(ctx, func(s *store.Session) error { return fn(ctx, s) }); err != nil {
		t.Fatalf("session failed: %v", err)
	}
}

func strPtr(s string) *string { return &s }

func TestProductRepository_CRUD(t *testing.T) {
	db := storetest.New(t)

	product := &models.Product{
		Name:        "Chicken Waffle",
		Price:       decimal.RequireFromString("12.99"),
		Description: strPtr("crispy"),
	}

	inSession(t, db, func(ctx context.Context, s *store.Session) error {
		return NewProductRepository(s).Create(ctx, product)
	})
	if product.ID == 0 {
		t.Fatal("expected product ID to be assigned")
	}

	inSession(t, db, func(ctx context.Context, s *store.Session) error {
		got, err := NewProductRepository(s).GetByID(ctx, product.ID)
		if err != nil {
			return err
		}
		if got.Name != "Chicken Waffle" {
			t.Errorf("expected name 'Chicken Waffle', got %s", got.Name)
		}
		if !got.Price.Equal(decimal.RequireFromString("12.99")) {
			t.Errorf("expected price 12.99, got %s", got.Price)
		}
		if got.Description == nil || *got.Description != "crispy" {
			t.Errorf("expected description 'crispy', got %v", got.Description)
		}
		return nil
	})

	product.Name = "Belgian Waffle"
	product.Description = nil
	inSession(t, db, func(ctx context.Context, s *store.Session) error {
		return NewProductRepository(s).Update(ctx, product)
	})

	inSession(t, db, func(ctx context.Context, s *store.Session) error {
		repo := NewProductRepository(s)
		got, err := repo.GetByID(ctx, product.ID)
		if err != nil {
			return err
		}
		if got.Name != "Belgian Waffle" || got.Description != nil {
			t.Errorf("unexpected product after update: %+v", got)
		}

		if err := repo.Delete(ctx, product.ID); err != nil {
			return err
		}
		if _, err := repo.GetByID(ctx, product.ID); !errors.Is(err, ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound after delete, got %v", err)
		}
		if err := repo.Delete(ctx, product.ID); !errors.Is(err, ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound on second delete, got %v", err)
		}
		return nil
	})
}

func TestProductRepository_List(t *testing.T) {
	db := storetest.New(t)

	inSession(t, db, func(ctx context.Context, s *store.Session) error {
		products, err := NewProductRepository(s).List(ctx, 0, 10)
		if err != nil {
			return err
		}
		if products == nil || len(products) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", products)
		}
		return nil
	})

	inSession(t, db, func(ctx context.Context, s *store.Session) error {
		repo := NewProductRepository(s)
		for i := 1; i <= 12; i++ {
			p := &models.Product{Name: fmt.Sprintf("product-%d", i), Price: decimal.NewFromInt(int64(i))}
			if err := repo.Create(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})

	tests := []struct {
		name      string
		skip      int
		limit     int
		wantLen   int
		wantFirst string
	}{
		{"first page", 0, 10, 10, "product-1"},
		{"second page", 10, 10, 2, "product-11"},
		{"past the end", 20, 10, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inSession(t, db, func(ctx context.Context, s *store.Session) error {
				products, err := NewProductRepository(s).List(ctx, tt.skip, tt.limit)
				if err != nil {
					return err
				}
				if len(products) != tt.wantLen {
					t.Fatalf("expected %d products, got %d", tt.wantLen, len(products))
				}
				if tt.wantLen > 0 && products[0].Name != tt.wantFirst {
					t.Errorf("expected first product %s, got %s", tt.wantFirst, products[0].Name)
				}
				return nil
			})
		})
	}
}

func TestCustomerRepository(t *testing.T) {
	db := storetest.New(t)

	customer := &models.Customer{
		Name:         "Ada",
		Surname:      "Lovelace",
		Email:        "ada@example.com",
		Username:     "ada",
		PasswordHash: "hash",
		PhoneNumber:  strPtr("555-0100"),
	}

	inSession(t, db, func(ctx context.Context, s *store.Session) error {
		return NewCustomerRepository(s).Create(ctx, customer)
	})

	inSession(t, db, func(ctx context.Context, s *store.Session) error {
		repo := NewCustomerRepository(s)
		got, err := repo.GetByID(ctx, customer.ID)
		if err != nil {
			return err
		}
		if got.Email != "ada@example.com" || got.PasswordHash != "hash" {
			t.Errorf("unexpected customer: %+v", got)
		}
		if got.Address != nil {
			t.Errorf("expected nil address, got %v", *got.Address)
		}
		if got.PhoneNumber == nil || *got.PhoneNumber != "555-0100" {
			t.Errorf("expected phone number, got %v", got.PhoneNumber)
		}

		if _, err := repo.GetByID(ctx, customer.ID+1); !errors.Is(err, ErrCustomerNotFound) {
			t.Errorf("expected ErrCustomerNotFound, got %v", err)
		}

		list, err := repo.List(ctx, 0, 10)
		if err != nil {
			return err
		}
		if len(list) != 1 {
			t.Errorf("expected 1 customer, got %d", len(list))
		}
		return nil
	})
}

func TestOrderRepositories(t *testing.T) {
	db := storetest.New(t)
	orderDate := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	customer := &models.Customer{Name: "A", Surname: "B", Email: "a@b.com", Username: "ab", PasswordHash: "x"}
	product := &models.Product{Name: "Pizza", Price: decimal.RequireFromString("14.99")}
	orderA := &models.Order{OrderDate: orderDate, TotalAmount: decimal.Zero}
	orderB := &models.Order{OrderDate: orderDate, TotalAmount: decimal.Zero}

	inSession(t, db, func(ctx context.Context, s *store.Session) error {
		if err := NewCustomerRepository(s).Create(ctx, customer); err != nil {
			return err
		}
		if err := NewProductRepository(s).Create(ctx, product); err != nil {
			return err
		}
		orders := NewOrderRepository(s)
		orderA.CustomerID = customer.ID
		orderB.CustomerID = customer.ID
		if err := orders.Create(ctx, orderA); err != nil {
			return err
		}
		return orders.Create(ctx, orderB)
	})

	item := &models.OrderItem{
		OrderID:      orderA.ID,
		ProductID:    &product.ID,
		Quantity:     2,
		PricePerUnit: product.Price,
		TotalPrice:   models.LineTotal(2, product.Price),
	}

	inSession(t, db, func(ctx context.Context, s *store.Session) error {
		if err := NewOrderItemRepository(s).Create(ctx, item); err != nil {
			return err
		}
		return NewOrderRepository(s).UpdateTotal(ctx, orderA.ID, item.TotalPrice)
	})

	inSession(t, db, func(ctx context.Context, s *store.Session) error {
		orders := NewOrderRepository(s)
		items := NewOrderItemRepository(s)

		got, err := orders.GetByID(ctx, orderA.ID)
		if err != nil {
			return err
		}
		if !got.OrderDate.Equal(orderDate) {
			t.Errorf("expected order date %v, got %v", orderDate, got.OrderDate)
		}
		if !got.TotalAmount.Equal(decimal.RequireFromString("29.98")) {
			t.Errorf("expected total 29.98, got %s", got.TotalAmount)
		}

		listA, err := items.ListByOrder(ctx, orderA.ID)
		if err != nil {
			return err
		}
		if len(listA) != 1 || listA[0].ID != item.ID {
			t.Errorf("expected item under order A, got %+v", listA)
		}

		listB, err := items.ListByOrder(ctx, orderB.ID)
		if err != nil {
			return err
		}
		if len(listB) != 0 {
			t.Errorf("expected no items under order B, got %+v", listB)
		}

		if _, err := items.GetByID(ctx, orderB.ID, item.ID); !errors.Is(err, ErrOrderItemNotFound) {
			t.Errorf("expected item lookup scoped to order B to fail, got %v", err)
		}
		if err := items.Delete(ctx, orderB.ID, item.ID); !errors.Is(err, ErrOrderItemNotFound) {
			t.Errorf("expected delete scoped to order B to fail, got %v", err)
		}

		byCustomer, err := orders.ListByCustomer(ctx, customer.ID)
		if err != nil {
			return err
		}
		if len(byCustomer) != 2 {
			t.Errorf("expected 2 orders for customer, got %d", len(byCustomer))
		}

		if _, err := orders.GetByID(ctx, 999); !errors.Is(err, ErrOrderNotFound) {
			t.Errorf("expected ErrOrderNotFound, got %v", err)
		}
		return nil
	})

	// Deleting the product keeps the line item with a NULL product reference.
	inSession(t, db, func(ctx context.Context, s *store.Session) error {
		if err := NewProductRepository(s).Delete(ctx, product.ID); err != nil {
			return err
		}
		got, err := NewOrderItemRepository(s).GetByID(ctx, orderA.ID, item.ID)
		if err != nil {
			return err
		}
		if got.ProductID != nil {
			t.Errorf("expected product_id to be NULL after product delete, got %d", *got.ProductID)
		}
		if !got.PricePerUnit.Equal(decimal.RequireFromString("14.99")) {
			t.Errorf("expected price snapshot to survive, got %s", got.PricePerUnit)
		}
		return nil
	})
}
