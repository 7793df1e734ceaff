package service

import (
	"context"

	"github.com/Lixing-Zhang/orderdesk/internal/models"
	"github.com/Lixing-Zhang/orderdesk/internal/repository"
	"github.com/Lixing-Zhang/orderdesk/internal/store"
)

// ProductService handles business logic for products
type ProductService struct {
	db *store.DB
}

// NewProductService creates a new product service
func NewProductService(db *store.DB) *ProductService {
	return &ProductService{
		db: db,
	}
}

// ListProducts returns a page of products ordered by id
func (s *ProductService) ListProducts(ctx context.Context, skip, limit int) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithSession(ctx, func(sess *store.Session) error {
		var err error
		products, err = repository.NewProductRepository(sess).List(ctx, skip, limit)
		return err
	})
	return products, err
}

// CreateProduct validates and stores a new product
func (s *ProductService) CreateProduct(ctx context.Context, in models.ProductCreate) (*models.Product, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        *in.Name,
		Price:       roundMoney(*in.Price),
		Description: in.Description,
	}

	err := s.db.WithSession(ctx, func(sess *store.Session) error {
		return repository.NewProductRepository(sess).Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product *models.Product
	err := s.db.WithSession(ctx, func(sess *store.Session) error {
		var err error
		product, err = repository.NewProductRepository(sess).GetByID(ctx, id)
		return err
	})
	return product, err
}

// UpdateProduct applies the supplied fields to an existing product.
// Fields missing from the payload keep their stored values.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, in models.ProductUpdate) (*models.Product, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var product *models.Product
	err := s.db.WithSession(ctx, func(sess *store.Session) error {
		repo := repository.NewProductRepository(sess)

		var err error
		product, err = repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		in.Apply(product)
		product.Price = roundMoney(product.Price)

		return repo.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product and returns its last state
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product *models.Product
	err := s.db.WithSession(ctx, func(sess *store.Session) error {
		repo := repository.NewProductRepository(sess)

		var err error
		product, err = repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}
