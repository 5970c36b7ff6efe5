package schedule

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// EventSource reads the conflict-relevant events of one kind. Each concrete
// event repository implements it over its own table and state filter.
type EventSource interface {
	Kind() Kind

	// FindActive returns the kind's conflict-relevant events on the given
	// courts and date. Read-only, no locks: results are advisory.
	FindActive(ctx context.Context, courtIDs []int, date string) ([]Event, error)

	// FindActiveForUpdate runs the same query inside tx while taking row
	// locks on the matched set, so competing booking transactions for the
	// same courts and date serialize on the first locker.
	FindActiveForUpdate(ctx context.Context, tx *sqlx.Tx, courtIDs []int, date string) ([]Event, error)
}
