package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func TestParseDriver(t *testing.T) {
	tests := map[string]Driver{
		"":           DriverSQLite,
		"sqlite3":    DriverSQLite,
		"MySQL":      DriverMySQL,
		"mariadb":    DriverMySQL,
		"postgresql": DriverPostgres,
		"pgx":        DriverPostgres,
	}
	for in, want := range tests {
		got, err := ParseDriver(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDriver("oracle")
	assert.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Migrate(ctx))

	var version int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, len(migrations), version)

	for _, table := range Tables {
		var n int
		err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestSeed(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seeded, err := db.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	var universidades int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM universidad").Scan(&universidades))
	assert.Equal(t, 3, universidades)

	seeded, err = db.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded, "second seed must be a no-op")
}

func TestForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)

	_, err := db.ExecContext(context.Background(),
		"INSERT INTO carrera (id, universidad_id, nivel_educativo_id, nombre) VALUES (1, 99, 99, 'Huérfana')")
	assert.Error(t, err)
}

func TestOrderedConcatOnSQLite(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	_, err := db.Seed(ctx)
	require.NoError(t, err)

	query := "SELECT " + db.Dialect().OrderedConcat("f.titulo", "f.id DESC", "␟") +
		" FROM foto f WHERE f.universidad_id = ?"

	var got string
	require.NoError(t, db.QueryRowContext(ctx, db.Dialect().Rebind(query), 1).Scan(&got))
	assert.Equal(t, "Biblioteca␟Rectoría", got)
}

func TestOptimize(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, db.Optimize(context.Background()))
}

func TestOpenRequiresDSN(t *testing.T) {
	_, err := Open(Options{Driver: DriverMySQL})
	assert.Error(t, err)
}

func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "/var/lib/uni.db", redactDSN(DriverSQLite, "/var/lib/uni.db?_pragma=foreign_keys(1)"))
	assert.Equal(t, "tcp(db:3306)/universidades", redactDSN(DriverMySQL, "app:s3cret@tcp(db:3306)/universidades?parseTime=true"))
	assert.Equal(t, "postgres://app:xxxxx@db:5432/universidades", redactDSN(DriverPostgres, "postgres://app:s3cret@db:5432/universidades?sslmode=disable"))
	assert.Equal(t, "host=db user=app dbname=universidades", redactDSN(DriverPostgres, "host=db user=app password=s3cret dbname=universidades"))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "a.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", sqliteDSN("a.db"))
	assert.Equal(t, "a.db?mode=ro&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", sqliteDSN("a.db?mode=ro"))
	assert.Equal(t, "a.db?_pragma=foreign_keys(0)", sqliteDSN("a.db?_pragma=foreign_keys(0)"))
}

func TestMySQLDSN(t *testing.T) {
	dsn, err := mysqlDSN("app:s3cret@tcp(db:3306)/universidades")
	require.NoError(t, err)
	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "1048576", cfg.Params["group_concat_max_len"])
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, "universidades", cfg.DBName)

	dsn, err = mysqlDSN("app:s3cret@tcp(db:3306)/universidades?group_concat_max_len=4096")
	require.NoError(t, err)
	cfg, err = mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "4096", cfg.Params["group_concat_max_len"])

	_, err = mysqlDSN("not a dsn")
	assert.Error(t, err)
}
