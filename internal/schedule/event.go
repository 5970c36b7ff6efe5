package schedule

import "courtly/internal/court"

// Kind tags the three independent entity types that occupy a court.
type Kind string

const (
	KindReservation Kind = "reservation"
	KindSession     Kind = "session"
	KindMatch       Kind = "match"
)

func kindLabel(k Kind) string {
	switch k {
	case KindReservation:
		return "reservation"
	case KindSession:
		return "training session"
	case KindMatch:
		return "match"
	}
	return string(k)
}

// Event is the uniform shape the checker and the grid work with, regardless
// of which table a row came from. Only conflict-relevant rows are turned
// into Events by their source.
type Event struct {
	Kind    Kind
	ID      int
	CourtID int
	Window  TimeWindow
}

// scope selects which concrete courts a blocking rule applies to, relative
// to the candidate court and the hierarchy.
type scope int

const (
	scopeSelf       scope = iota // the candidate court itself
	scopePrincipal               // the principal court only
	scopeEverywhere              // the principal plus every division
)

type rule struct {
	source Kind
	where  scope
}

// blockingRules is the cross-resource matrix kept as data: for a candidate
// of a given kind targeting a court of a given tier, it lists the event
// kinds (and the courts they may sit on) that block the candidate. A kind
// with no entry for a tier may not target that tier at all.
//
// The asymmetries are deliberate business rules: the principal is the union
// of all divisions, so principal events exclude division use and vice versa
// for sessions and matches; a principal training session additionally wins
// over any division match, while division matches never push back on
// principal sessions.
var blockingRules = map[Kind]map[court.Role][]rule{
	KindReservation: {
		court.RoleDivision: {
			{KindReservation, scopeSelf},
			{KindSession, scopePrincipal},
			{KindMatch, scopeEverywhere},
		},
	},
	KindSession: {
		court.RolePrincipal: {
			{KindSession, scopeSelf},
			{KindReservation, scopeEverywhere},
			{KindMatch, scopeEverywhere},
		},
	},
	KindMatch: {
		court.RolePrincipal: {
			{KindReservation, scopeEverywhere},
			{KindSession, scopeEverywhere},
			{KindMatch, scopeEverywhere},
		},
		court.RoleDivision: {
			{KindReservation, scopeSelf},
			{KindSession, scopePrincipal},
			{KindMatch, scopeSelf},
			{KindMatch, scopePrincipal},
		},
	},
}

// AllowedTier reports whether events of kind k may be booked on a court of
// the given tier.
func AllowedTier(k Kind, tier court.Role) bool {
	_, ok := blockingRules[k][tier]
	return ok
}
