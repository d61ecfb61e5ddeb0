package database

import (
	"fmt"
	"strconv"
	"strings"
)

// Driver names a supported database engine
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverMySQL    Driver = "mysql"
	DriverPostgres Driver = "postgres"
)

// ParseDriver normalizes a driver name from flags or the environment
func ParseDriver(name string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "mysql", "mariadb":
		return DriverMySQL, nil
	case "postgres", "postgresql", "pgx":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q: must be sqlite, mysql, or postgres", name)
	}
}

// Dialect renders the few statements that differ between engines.
// Queries are written with ? placeholders and passed through Rebind.
type Dialect interface {
	Driver() Driver
	// Rebind rewrites ? placeholders into the engine's native form.
	Rebind(query string) string
	// OrderedConcat aggregates expr into one string joined by sep, in orderBy order.
	OrderedConcat(expr, orderBy, sep string) string
	// MaintenanceStatements refresh planner statistics for the given tables.
	MaintenanceStatements(tables []string) []string
}

// DialectFor returns the dialect of a driver
func DialectFor(d Driver) Dialect {
	switch d {
	case DriverMySQL:
		return mysqlDialect{}
	case DriverPostgres:
		return postgresDialect{}
	default:
		return sqliteDialect{}
	}
}

type sqliteDialect struct{}

func (sqliteDialect) Driver() Driver { return DriverSQLite }

func (sqliteDialect) Rebind(query string) string { return query }

func (sqliteDialect) OrderedConcat(expr, orderBy, sep string) string {
	return fmt.Sprintf("group_concat(%s, %s ORDER BY %s)", expr, quoteLiteral(sep), orderBy)
}

func (sqliteDialect) MaintenanceStatements([]string) []string {
	return []string{"PRAGMA optimize"}
}

type mysqlDialect struct{}

func (mysqlDialect) Driver() Driver { return DriverMySQL }

func (mysqlDialect) Rebind(query string) string { return query }

func (mysqlDialect) OrderedConcat(expr, orderBy, sep string) string {
	return fmt.Sprintf("GROUP_CONCAT(%s ORDER BY %s SEPARATOR %s)", expr, orderBy, quoteLiteral(sep))
}

func (mysqlDialect) MaintenanceStatements(tables []string) []string {
	if len(tables) == 0 {
		return nil
	}
	return []string{"ANALYZE TABLE " + strings.Join(tables, ", ")}
}

type postgresDialect struct{}

func (postgresDialect) Driver() Driver { return DriverPostgres }

// Rebind converts ? to $1, $2, ... leaving quoted literals untouched.
func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (postgresDialect) OrderedConcat(expr, orderBy, sep string) string {
	return fmt.Sprintf("string_agg(%s, %s ORDER BY %s)", expr, quoteLiteral(sep), orderBy)
}

func (postgresDialect) MaintenanceStatements(tables []string) []string {
	stmts := make([]string, 0, len(tables))
	for _, t := range tables {
		stmts = append(stmts, "ANALYZE "+t)
	}
	return stmts
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
