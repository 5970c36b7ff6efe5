package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"

	"courtly/internal/court"
)

// Candidate is a booking request to validate: an event of Kind wants CourtID
// for Window. A nil CourtID (off-site training session) is trivially
// permitted. ExcludeID lets an update re-validate without colliding with its
// own existing row of the same kind.
type Candidate struct {
	Kind      Kind
	CourtID   *int
	Window    TimeWindow
	ExcludeID int
}

// Decision is the checker's answer. When OK is false, Conflict names the
// blocking event and its court, and Reason carries the user-readable text.
type Decision struct {
	OK       bool
	Reason   string
	Conflict *ConflictError
}

// Checker decides whether a candidate window is free, walking the hierarchy
// and querying every event source the rule table points at. It only reads;
// the authoritative call is CheckLocked inside a booking transaction.
type Checker struct {
	courts   court.Repository
	resolver *court.Resolver
	sources  []EventSource
}

func NewChecker(courts court.Repository, resolver *court.Resolver, sources ...EventSource) *Checker {
	return &Checker{courts: courts, resolver: resolver, sources: sources}
}

// Check runs an advisory, lock-free validation. Any result can be stale the
// moment it returns; callers must re-validate at write time via CheckLocked.
func (c *Checker) Check(ctx context.Context, cand Candidate) (*Decision, error) {
	return c.check(ctx, nil, cand)
}

// CheckLocked validates inside tx with row locks held on the relevant event
// rows. Only this result is authoritative.
func (c *Checker) CheckLocked(ctx context.Context, tx *sqlx.Tx, cand Candidate) (*Decision, error) {
	return c.check(ctx, tx, cand)
}

func (c *Checker) check(ctx context.Context, tx *sqlx.Tx, cand Candidate) (*Decision, error) {
	if err := cand.Window.Validate(); err != nil {
		return nil, err
	}

	// Off-site events consume no court.
	if cand.CourtID == nil {
		return &Decision{OK: true}, nil
	}

	target, err := c.courts.GetByID(ctx, *cand.CourtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("fetch court %d: %w", *cand.CourtID, err)
	}
	if target.Status != court.StatusAvailable {
		return nil, ErrCourtUnavailable
	}

	tier := c.resolver.Role(target)
	if !AllowedTier(cand.Kind, tier) {
		if cand.Kind == KindReservation {
			return nil, ErrReservationOnPrincipal
		}
		return nil, ErrSessionOffPrincipal
	}

	principal, divisions, err := c.resolver.Hierarchy(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve hierarchy: %w", err)
	}

	// Inside a booking transaction, lock the target and principal court rows
	// before reading events. FOR UPDATE on event rows alone cannot stop two
	// transactions from both inserting into an empty window; the court rows
	// are the stable anchor that serializes competing bookings.
	if tx != nil {
		lockIDs := []int{target.ID}
		if principal != nil && principal.ID != target.ID {
			lockIDs = append(lockIDs, principal.ID)
		}
		if err := c.courts.LockTx(ctx, tx, lockIDs); err != nil {
			return nil, fmt.Errorf("lock courts %v: %w", lockIDs, err)
		}
	}

	names := map[int]string{target.ID: target.Name}
	if principal != nil {
		names[principal.ID] = principal.Name
	}
	for _, d := range divisions {
		names[d.ID] = d.Name
	}

	// Resolve each rule's scope to concrete court ids, merged per source
	// kind so every source is queried at most once.
	courtSets := make(map[Kind]map[int]bool)
	for _, r := range blockingRules[cand.Kind][tier] {
		set := courtSets[r.source]
		if set == nil {
			set = make(map[int]bool)
			courtSets[r.source] = set
		}
		switch r.where {
		case scopeSelf:
			set[target.ID] = true
		case scopePrincipal:
			if principal != nil {
				set[principal.ID] = true
			}
		case scopeEverywhere:
			if principal != nil {
				set[principal.ID] = true
			}
			for _, d := range divisions {
				set[d.ID] = true
			}
		}
	}

	for _, src := range c.sources {
		ids := sortedIDs(courtSets[src.Kind()])
		if len(ids) == 0 {
			continue
		}

		var events []Event
		if tx != nil {
			events, err = src.FindActiveForUpdate(ctx, tx, ids, cand.Window.Date)
		} else {
			events, err = src.FindActive(ctx, ids, cand.Window.Date)
		}
		if err != nil {
			return nil, fmt.Errorf("query %s events: %w", src.Kind(), err)
		}

		for _, e := range events {
			if cand.ExcludeID != 0 && e.Kind == cand.Kind && e.ID == cand.ExcludeID {
				continue
			}
			if cand.Window.Overlaps(e.Window) {
				name := names[e.CourtID]
				if name == "" {
					name = fmt.Sprintf("court %d", e.CourtID)
				}
				conflict := &ConflictError{BlockingKind: e.Kind, CourtName: name, Window: e.Window}
				return &Decision{OK: false, Reason: conflict.Error(), Conflict: conflict}, nil
			}
		}
	}

	return &Decision{OK: true}, nil
}

func sortedIDs(set map[int]bool) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
