package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Lixing-Zhang/orderdesk/internal/models"
	"github.com/Lixing-Zhang/orderdesk/internal/store"
)

const productColumns = "id, name, price, description"

// ProductRepository reads and writes products within one session
type ProductRepository struct {
	sess *store.Session
}

// NewProductRepository binds a product repository to a session
func NewProductRepository(sess *store.Session) *ProductRepository {
	return &ProductRepository{sess: sess}
}

// List returns a page of products ordered by id
func (r *ProductRepository) List(ctx context.Context, skip, limit int) ([]models.Product, error) {
	rows, err := r.sess.Query(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY id LIMIT ? OFFSET ?", limit, skip)
	if err != nil {
		return nil, store.WrapError(err, "SELECT", store.TableProducts)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description); err != nil {
			return nil, store.WrapError(err, "SELECT", store.TableProducts)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, store.WrapError(err, "SELECT", store.TableProducts)
	}

	return products, nil
}

// GetByID returns a product by its ID
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := r.sess.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, store.WrapError(err, "SELECT", store.TableProducts)
	}
	return &p, nil
}

// Create inserts p and sets its ID
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	id, err := r.sess.Insert(ctx,
		"INSERT INTO products (name, price, description) VALUES (?, ?, ?)",
		p.Name, p.Price, p.Description)
	if err != nil {
		return store.WrapError(err, "INSERT", store.TableProducts)
	}
	p.ID = id
	return nil
}

// Update overwrites every column of the stored row except the id
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	_, err := r.sess.Exec(ctx,
		"UPDATE products SET name = ?, price = ?, description = ? WHERE id = ?",
		p.Name, p.Price, p.Description, p.ID)
	return store.WrapError(err, "UPDATE", store.TableProducts)
}

// Delete removes a product. Order items referencing it keep a NULL product_id.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.sess.Exec(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return store.WrapError(err, "DELETE", store.TableProducts)
	}
	return requireAffected(res, ErrProductNotFound, store.TableProducts)
}

// requireAffected returns notFound when res touched no rows
func requireAffected(res sql.Result, notFound error, table string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return store.WrapError(err, "DELETE", table)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
