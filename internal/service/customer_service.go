package service

import (
	"context"
	"fmt"

	"github.com/Lixing-Zhang/orderdesk/internal/models"
	"github.com/Lixing-Zhang/orderdesk/internal/repository"
	"github.com/Lixing-Zhang/orderdesk/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input beyond this many bytes
const maxPasswordBytes = 72

// CustomerService handles business logic for customers
type CustomerService struct {
	db         *store.DB
	bcryptCost int
}

// NewCustomerService creates a new customer service hashing passwords at the given bcrypt cost
func NewCustomerService(db *store.DB, bcryptCost int) *CustomerService {
	return &CustomerService{
		db:         db,
		bcryptCost: bcryptCost,
	}
}

// ListCustomers returns a page of customers ordered by id
func (s *CustomerService) ListCustomers(ctx context.Context, skip, limit int) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.WithSession(ctx, func(sess *store.Session) error {
		var err error
		customers, err = repository.NewCustomerRepository(sess).List(ctx, skip, limit)
		return err
	})
	return customers, err
}

// CreateCustomer validates the payload, hashes the password and stores the customer
func (s *CustomerService) CreateCustomer(ctx context.Context, in models.CustomerCreate) (*models.Customer, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, newValidationError("password must be at most %d bytes long", maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	customer := &models.Customer{
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        in.Email,
		Username:     in.Username,
		Address:      in.Address,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: string(hash),
	}

	err = s.db.WithSession(ctx, func(sess *store.Session) error {
		return repository.NewCustomerRepository(sess).Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer returns a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	var customer *models.Customer
	err := s.db.WithSession(ctx, func(sess *store.Session) error {
		var err error
		customer, err = repository.NewCustomerRepository(sess).GetByID(ctx, id)
		return err
	})
	return customer, err
}

// ListCustomerOrders returns every order of an existing customer
func (s *CustomerService) ListCustomerOrders(ctx context.Context, customerID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithSession(ctx, func(sess *store.Session) error {
		if _, err := repository.NewCustomerRepository(sess).GetByID(ctx, customerID); err != nil {
			return err
		}

		var err error
		orders, err = repository.NewOrderRepository(sess).ListByCustomer(ctx, customerID)
		return err
	})
	return orders, err
}
