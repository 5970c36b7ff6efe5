package schedule

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Booker makes "check, then write" atomic. It opens a transaction, re-runs
// the conflict check with row locks held, and only then lets the caller
// persist. Any failure rolls the whole transaction back; no partial event is
// ever visible. A conflicting booking is a terminal rejection, never
// retried here.
type Booker struct {
	db      *sqlx.DB
	checker *Checker
}

func NewBooker(db *sqlx.DB, checker *Checker) *Booker {
	return &Booker{db: db, checker: checker}
}

// Book validates cand under lock and, when the window is free, invokes
// persist inside the same transaction. The returned Decision carries the
// conflict reason when the window is occupied; persist is not called then.
func (b *Booker) Book(ctx context.Context, cand Candidate, persist func(tx *sqlx.Tx) error) (*Decision, error) {
	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin booking transaction: %w", err)
	}

	decision, err := b.checker.CheckLocked(ctx, tx, cand)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if !decision.OK {
		_ = tx.Rollback()
		return decision, nil
	}

	if err := persist(tx); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit booking transaction: %w", err)
	}

	return decision, nil
}
