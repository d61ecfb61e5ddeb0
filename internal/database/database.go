package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Options configures the connection pool
type Options struct {
	Driver          Driver
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultOptions returns pool settings suitable for driver
func DefaultOptions(driver Driver, dsn string) Options {
	opts := Options{
		Driver:          driver,
		DSN:             dsn,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}
	if driver != DriverSQLite {
		opts.MaxOpenConns = 25
		opts.MaxIdleConns = 10
	}
	return opts
}

// DB wraps the pooled database connection together with its dialect
type DB struct {
	*sql.DB
	dialect Dialect
	target  string
}

// New opens a pooled connection for the given driver and DSN
func New(driver Driver, dsn string) (*DB, error) {
	return Open(DefaultOptions(driver, dsn))
}

// Open opens a pooled connection using opts and verifies it with a ping
func Open(opts Options) (*DB, error) {
	if opts.DSN == "" {
		return nil, fmt.Errorf("database DSN is required for driver %s", opts.Driver)
	}

	driverName, dsn := sqlDriverName(opts.Driver), opts.DSN
	switch opts.Driver {
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	case DriverMySQL:
		var err error
		if dsn, err = mysqlDSN(dsn); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		DB:      conn,
		dialect: DialectFor(opts.Driver),
		target:  redactDSN(opts.Driver, opts.DSN),
	}

	log.Debug().
		Str("driver", string(opts.Driver)).
		Str("target", db.target).
		Int("max_open_conns", opts.MaxOpenConns).
		Msg("Database connection established")

	return db, nil
}

// Dialect returns the SQL dialect of the connected engine
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Target returns a loggable description of the connection (no credentials)
func (db *DB) Target() string {
	return db.target
}

// Transaction wraps a function in a database transaction
func (db *DB) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("Failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func sqlDriverName(d Driver) string {
	switch d {
	case DriverMySQL:
		return "mysql"
	case DriverPostgres:
		return "pgx"
	default:
		return "sqlite"
	}
}

// sqliteDSN adds WAL, busy timeout and foreign keys unless the DSN sets pragmas itself
func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// mysqlGroupConcatMaxLen lifts the 1024 byte default so aggregated lists are
// never truncated
const mysqlGroupConcatMaxLen = "1048576"

// mysqlDSN sets the session variables the catalog queries rely on, keeping any
// value the operator already chose.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql DSN: %w", err)
	}
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["group_concat_max_len"]; !ok {
		cfg.Params["group_concat_max_len"] = mysqlGroupConcatMaxLen
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

func redactDSN(d Driver, dsn string) string {
	switch d {
	case DriverSQLite:
		if i := strings.Index(dsn, "?"); i >= 0 {
			return dsn[:i]
		}
		return dsn
	case DriverPostgres:
		if u, err := url.Parse(dsn); err == nil && u.Scheme != "" {
			u.RawQuery = ""
			return u.Redacted()
		}
		// keyword/value form: host=... user=... password=...
		var kept []string
		for _, field := range strings.Fields(dsn) {
			if !strings.HasPrefix(field, "password=") {
				kept = append(kept, field)
			}
		}
		return strings.Join(kept, " ")
	default:
		// user:pass@tcp(host:3306)/db?params
		if i := strings.LastIndex(dsn, "@"); i >= 0 {
			dsn = dsn[i+1:]
		}
		if i := strings.Index(dsn, "?"); i >= 0 {
			dsn = dsn[:i]
		}
		return dsn
	}
}
