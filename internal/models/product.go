package models

import "github.com/shopspring/decimal"

// Product represents a catalog entry that order items can reference
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description"`
}

// ProductCreate is the payload accepted by POST /products/
type ProductCreate struct {
	Name        *string          `json:"name" validate:"required,min=1,max=255"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0,lte=99999.99"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
}

// ProductUpdate is the payload accepted by PUT /products/{id}.
// Nil fields are left untouched.
type ProductUpdate struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0,lte=99999.99"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
}

// Apply copies the supplied fields onto p
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Description != nil {
		p.Description = u.Description
	}
}
