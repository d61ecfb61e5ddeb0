package database

import (
	"fmt"
	"strings"
)

// QueryBuilder assembles a statement from chunks, keeping arguments in step with
// their ? placeholders.
type QueryBuilder struct {
	sql  strings.Builder
	args []any
}

/*
Add appends sql and its arguments to the query. The number of ? placeholders in
the chunk must match the number of arguments:

	qb.Add("WHERE u.tipo = ?", tipo)
	qb.Add("AND u.id = ?", id)
*/
func (qb *QueryBuilder) Add(sql string, args ...any) {
	numPlaceholders := strings.Count(sql, "?")
	if numPlaceholders != len(args) {
		panic(fmt.Errorf("cannot add chunk to query; expected %d arguments but got %d", numPlaceholders, len(args)))
	}

	qb.args = append(qb.args, args...)
	qb.sql.WriteString(sql)
	qb.sql.WriteString("\n")
}

func (qb *QueryBuilder) String() string {
	return qb.sql.String()
}

func (qb *QueryBuilder) Args() []any {
	return qb.args
}

// Build returns the statement rewritten for d, with its arguments
func (qb *QueryBuilder) Build(d Dialect) (string, []any) {
	return d.Rebind(qb.sql.String()), qb.args
}
