package store

import (
	"context"
	"fmt"
)

// Table names
const (
	TableProducts   = "products"
	TableCustomers  = "customers"
	TableOrders     = "orders"
	TableOrderItems = "order_items"
)

// schemaStatements returns the CREATE statements for every table, in dependency order.
func (d Dialect) schemaStatements() []string {
	c := d.columnTypes()

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id %s,
			name %s NOT NULL,
			price %s NOT NULL,
			description %s
		)%s`, TableProducts, c.id, c.text, c.money, c.longText, c.suffix),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id %s,
			name %s NOT NULL,
			surname %s NOT NULL,
			email %s NOT NULL,
			username %s NOT NULL,
			password_hash %s NOT NULL,
			address %s,
			phone_number %s
		)%s`, TableCustomers, c.id, c.text, c.text, c.text, c.text, c.text, c.longText, c.text, c.suffix),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id %s,
			customer_id %s NOT NULL,
			order_date %s NOT NULL,
			total_amount %s NOT NULL,
			FOREIGN KEY (customer_id) REFERENCES %s (id)
		)%s`, TableOrders, c.id, c.fk, c.timestamp, c.money, TableCustomers, c.suffix),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id %s,
			order_id %s NOT NULL,
			product_id %s,
			quantity INTEGER NOT NULL,
			price_per_unit %s NOT NULL,
			total_price %s NOT NULL,
			FOREIGN KEY (order_id) REFERENCES %s (id) ON DELETE CASCADE,
			FOREIGN KEY (product_id) REFERENCES %s (id) ON DELETE SET NULL
		)%s`, TableOrderItems, c.id, c.fk, c.fk, c.money, c.money, TableOrders, TableProducts, c.suffix),
	}

	// InnoDB indexes foreign key columns on its own and has no CREATE INDEX IF NOT EXISTS.
	if d != DialectMySQL {
		stmts = append(stmts,
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON %s (customer_id)", TableOrders),
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON %s (order_id)", TableOrderItems),
		)
	}

	return stmts
}

// EnsureSchema creates the tables if they do not exist yet.
// There is no versioning: existing tables are left as they are.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range db.dialect.schemaStatements() {
		if _, err := db.sqlDB.ExecContext(ctx, stmt); err != nil {
			return WrapErrorWithQuery(err, "CREATE", "", stmt)
		}
	}

	db.log.Info("database schema ensured", "dialect", string(db.dialect))
	return nil
}
