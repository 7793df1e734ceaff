package store

import (
	"fmt"
	"strconv"
	"strings"

	// Registered database/sql drivers, one per supported dialect.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL flavour spoken by the underlying store
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// ParseDialect validates a configured driver name
func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(name)); d {
	case DialectSQLite, DialectPostgres, DialectMySQL:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", name)
	}
}

// DriverName returns the database/sql driver registered for the dialect
func (d Dialect) DriverName() string {
	// modernc.org/sqlite registers "sqlite", lib/pq "postgres", go-sql-driver "mysql"
	return string(d)
}

// Rebind rewrites ? placeholders into the dialect's bind syntax.
// Queries must not contain literal question marks.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// sqliteParams are connection settings every SQLite DSN needs. Writers wait
// up to five seconds for the lock, and transactions take the write lock at
// BEGIN so read-then-write sessions never fail on lock upgrade.
var sqliteParams = []struct {
	key   string
	param string
}{
	{"_pragma=foreign_keys", "_pragma=foreign_keys(1)"},
	{"_pragma=busy_timeout", "_pragma=busy_timeout(5000)"},
	{"_txlock=", "_txlock=immediate"},
}

// sqliteDSN appends the sqliteParams the DSN does not set itself
func sqliteDSN(dsn string) string {
	for _, p := range sqliteParams {
		if strings.Contains(dsn, p.key) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + p.param
	}
	return dsn
}

type columnTypes struct {
	id        string
	fk        string
	text      string
	longText  string
	money     string
	timestamp string
	suffix    string
}

func (d Dialect) columnTypes() columnTypes {
	switch d {
	case DialectPostgres:
		return columnTypes{
			id:        "BIGSERIAL PRIMARY KEY",
			fk:        "BIGINT",
			text:      "VARCHAR(255)",
			longText:  "TEXT",
			money:     "NUMERIC(12,2)",
			timestamp: "TIMESTAMPTZ",
		}
	case DialectMySQL:
		return columnTypes{
			id:        "BIGINT AUTO_INCREMENT PRIMARY KEY",
			fk:        "BIGINT",
			text:      "VARCHAR(255)",
			longText:  "TEXT",
			money:     "DECIMAL(12,2)",
			timestamp: "DATETIME(6)",
			suffix:    " ENGINE=InnoDB",
		}
	default:
		// TIMESTAMP must be spelled exactly so the sqlite driver parses values back into time.Time.
		return columnTypes{
			id:        "INTEGER PRIMARY KEY AUTOINCREMENT",
			fk:        "INTEGER",
			text:      "TEXT",
			longText:  "TEXT",
			money:     "NUMERIC(12,2)",
			timestamp: "TIMESTAMP",
		}
	}
}
