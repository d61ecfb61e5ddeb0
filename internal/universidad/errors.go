package universidad

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNotFound means the query succeeded but matched nothing
	ErrNotFound = errors.New("not found")
	// ErrQueryFailure means the statement could not be executed or its result was unusable
	ErrQueryFailure = errors.New("query failed")
)

// QueryError reports a failed read. Its message never includes the underlying
// driver error, which stays reachable through errors.Is/As.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return e.Op + ": " + ErrQueryFailure.Error()
}

func (e *QueryError) Unwrap() []error {
	return []error{ErrQueryFailure, e.Err}
}

// queryFailed logs cause and returns the opaque error handed to callers
func queryFailed(ctx context.Context, op string, id int64, cause error) error {
	event := log.Error()
	if ctx.Err() != nil {
		// cancelled by the caller or by a sibling query
		event = log.Debug()
	}
	event.Err(cause).Str("op", op).Int64("id", id).Msg("University query failed")

	return &QueryError{Op: op, Err: cause}
}

func notFound(op string, id int64) error {
	return fmt.Errorf("%s %d: %w", op, id, ErrNotFound)
}
