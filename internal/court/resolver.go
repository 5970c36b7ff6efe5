package court

import "context"

// Resolver classifies courts into the two-tier facility hierarchy: the one
// available court whose max_capacity equals the configured principal
// capacity is the principal, every smaller available court is a division.
// Divisions are physically contained in the principal, so the blocking rules
// between tiers are asymmetric; siblings are independent of each other.
type Resolver struct {
	repo              Repository
	principalCapacity int
}

func NewResolver(repo Repository, principalCapacity int) *Resolver {
	return &Resolver{repo: repo, principalCapacity: principalCapacity}
}

func (r *Resolver) Role(c *Court) Role {
	if c.MaxCapacity == r.principalCapacity {
		return RolePrincipal
	}
	return RoleDivision
}

func (r *Resolver) IsPrincipal(c *Court) bool {
	return r.Role(c) == RolePrincipal
}

func (r *Resolver) IsDivision(c *Court) bool {
	return r.Role(c) == RoleDivision
}

// Principal returns the principal court, or nil when no available court has
// the principal capacity. Callers treat a missing principal as "hierarchy
// rules vacuously satisfied".
func (r *Resolver) Principal(ctx context.Context) (*Court, error) {
	courts, err := r.repo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	for i := range courts {
		if courts[i].MaxCapacity == r.principalCapacity {
			return &courts[i], nil
		}
	}

	return nil, nil
}

// Hierarchy returns the principal (nil when absent) and all divisions in a
// single court-list read.
func (r *Resolver) Hierarchy(ctx context.Context) (*Court, []Court, error) {
	courts, err := r.repo.ListAvailable(ctx)
	if err != nil {
		return nil, nil, err
	}

	var principal *Court
	divisions := make([]Court, 0, len(courts))
	for i := range courts {
		if courts[i].MaxCapacity == r.principalCapacity {
			principal = &courts[i]
		} else if courts[i].MaxCapacity < r.principalCapacity {
			divisions = append(divisions, courts[i])
		}
	}

	return principal, divisions, nil
}

// Divisions returns every available court smaller than the principal.
func (r *Resolver) Divisions(ctx context.Context) ([]Court, error) {
	courts, err := r.repo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	divisions := make([]Court, 0, len(courts))
	for _, c := range courts {
		if c.MaxCapacity < r.principalCapacity {
			divisions = append(divisions, c)
		}
	}

	return divisions, nil
}
