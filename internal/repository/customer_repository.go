package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Lixing-Zhang/orderdesk/internal/models"
	"github.com/Lixing-Zhang/orderdesk/internal/store"
)

const customerColumns = "id, name, surname, email, username, password_hash, address, phone_number"

// CustomerRepository reads and writes customers within one session
type CustomerRepository struct {
	sess *store.Session
}

// NewCustomerRepository binds a customer repository to a session
func NewCustomerRepository(sess *store.Session) *CustomerRepository {
	return &CustomerRepository{sess: sess}
}

func scanCustomer(row interface{ Scan(...any) error }, c *models.Customer) error {
	return row.Scan(&c.ID, &c.Name, &c.Surname, &c.Email, &c.Username, &c.PasswordHash, &c.Address, &c.PhoneNumber)
}

// List returns a page of customers ordered by id
func (r *CustomerRepository) List(ctx context.Context, skip, limit int) ([]models.Customer, error) {
	rows, err := r.sess.Query(ctx,
		"SELECT "+customerColumns+" FROM customers ORDER BY id LIMIT ? OFFSET ?", limit, skip)
	if err != nil {
		return nil, store.WrapError(err, "SELECT", store.TableCustomers)
	}
	defer rows.Close()

	customers := make([]models.Customer, 0)
	for rows.Next() {
		var c models.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, store.WrapError(err, "SELECT", store.TableCustomers)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.WrapError(err, "SELECT", store.TableCustomers)
	}

	return customers, nil
}

// GetByID returns a customer by its ID
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	var c models.Customer
	err := scanCustomer(r.sess.QueryRow(ctx, "SELECT "+customerColumns+" FROM customers WHERE id = ?", id), &c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, store.WrapError(err, "SELECT", store.TableCustomers)
	}
	return &c, nil
}

// Create inserts c and sets its ID
func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	id, err := r.sess.Insert(ctx,
		`INSERT INTO customers (name, surname, email, username, password_hash, address, phone_number)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Surname, c.Email, c.Username, c.PasswordHash, c.Address, c.PhoneNumber)
	if err != nil {
		return store.WrapError(err, "INSERT", store.TableCustomers)
	}
	c.ID = id
	return nil
}
