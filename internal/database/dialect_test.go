package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	q := "SELECT '?' AS q, a FROM t WHERE a = ? AND b = ?"

	assert.Equal(t, q, DialectFor(DriverSQLite).Rebind(q))
	assert.Equal(t, q, DialectFor(DriverMySQL).Rebind(q))
	assert.Equal(t, "SELECT '?' AS q, a FROM t WHERE a = $1 AND b = $2", DialectFor(DriverPostgres).Rebind(q))
}

func TestOrderedConcat(t *testing.T) {
	tests := []struct {
		driver Driver
		want   string
	}{
		{DriverSQLite, "group_concat(c.nombre, '|' ORDER BY c.id)"},
		{DriverMySQL, "GROUP_CONCAT(c.nombre ORDER BY c.id SEPARATOR '|')"},
		{DriverPostgres, "string_agg(c.nombre, '|' ORDER BY c.id)"},
	}
	for _, tt := range tests {
		t.Run(string(tt.driver), func(t *testing.T) {
			assert.Equal(t, tt.want, DialectFor(tt.driver).OrderedConcat("c.nombre", "c.id", "|"))
		})
	}

	assert.Equal(t, "group_concat(x, 'it''s' ORDER BY y)", DialectFor(DriverSQLite).OrderedConcat("x", "y", "it's"))
}

func TestMaintenanceStatements(t *testing.T) {
	tables := []string{"universidad", "carrera"}

	assert.Equal(t, []string{"PRAGMA optimize"}, DialectFor(DriverSQLite).MaintenanceStatements(tables))
	assert.Equal(t, []string{"ANALYZE TABLE universidad, carrera"}, DialectFor(DriverMySQL).MaintenanceStatements(tables))
	assert.Equal(t, []string{"ANALYZE universidad", "ANALYZE carrera"}, DialectFor(DriverPostgres).MaintenanceStatements(tables))
}

func TestQueryBuilder(t *testing.T) {
	var qb QueryBuilder
	qb.Add("SELECT id FROM universidad")
	qb.Add("WHERE tipo = ? AND id > ?", 1, 10)

	query, args := qb.Build(DialectFor(DriverPostgres))
	assert.Equal(t, "SELECT id FROM universidad\nWHERE tipo = $1 AND id > $2\n", query)
	assert.Equal(t, []any{1, 10}, args)
	assert.Equal(t, "SELECT id FROM universidad\nWHERE tipo = ? AND id > ?\n", qb.String())

	assert.Panics(t, func() { qb.Add("AND nombre = ?") })
}

func TestSplitSQLStatements(t *testing.T) {
	sql := `
		-- comment
		CREATE TABLE a (id INTEGER);

		CREATE TABLE b (
			id INTEGER
		);
		CREATE INDEX idx ON b (id)
	`
	stmts := splitSQLStatements(sql)
	assert.Len(t, stmts, 3)
	assert.Equal(t, "CREATE TABLE a (id INTEGER);", stmts[0])
	assert.Equal(t, "CREATE INDEX idx ON b (id)", stmts[2])
}
