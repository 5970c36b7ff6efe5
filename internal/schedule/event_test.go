package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"courtly/internal/court"
)

func TestAllowedTier(t *testing.T) {
	assert.False(t, AllowedTier(KindReservation, court.RolePrincipal))
	assert.True(t, AllowedTier(KindReservation, court.RoleDivision))

	assert.True(t, AllowedTier(KindSession, court.RolePrincipal))
	assert.False(t, AllowedTier(KindSession, court.RoleDivision))

	assert.True(t, AllowedTier(KindMatch, court.RolePrincipal))
	assert.True(t, AllowedTier(KindMatch, court.RoleDivision))
}
