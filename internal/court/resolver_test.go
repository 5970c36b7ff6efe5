package court

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepo struct{ mock.Mock }

func (m *MockRepo) Create(ctx context.Context, name string, maxCapacity int) (*Court, error) {
	args := m.Called(ctx, name, maxCapacity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Court), args.Error(1)
}

func (m *MockRepo) GetByID(ctx context.Context, id int) (*Court, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Court), args.Error(1)
}

func (m *MockRepo) ListAll(ctx context.Context) ([]Court, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Court), args.Error(1)
}

func (m *MockRepo) ListAvailable(ctx context.Context) ([]Court, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Court), args.Error(1)
}

func (m *MockRepo) UpdateStatus(ctx context.Context, id int, status string) (*Court, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Court), args.Error(1)
}

func (m *MockRepo) LockTx(ctx context.Context, tx *sqlx.Tx, ids []int) error {
	args := m.Called(ctx, tx, ids)
	return args.Error(0)
}

func TestResolverRole(t *testing.T) {
	resolver := NewResolver(new(MockRepo), 64)

	assert.Equal(t, RolePrincipal, resolver.Role(&Court{MaxCapacity: 64}))
	assert.Equal(t, RoleDivision, resolver.Role(&Court{MaxCapacity: 20}))
	assert.True(t, resolver.IsPrincipal(&Court{MaxCapacity: 64}))
	assert.True(t, resolver.IsDivision(&Court{MaxCapacity: 10}))
}

func TestResolverHierarchy(t *testing.T) {
	repo := new(MockRepo)
	repo.On("ListAvailable", mock.Anything).Return([]Court{
		{ID: 1, Name: "Main Arena", MaxCapacity: 64, Status: StatusAvailable},
		{ID: 2, Name: "Division 1", MaxCapacity: 20, Status: StatusAvailable},
		{ID: 3, Name: "Division 2", MaxCapacity: 20, Status: StatusAvailable},
	}, nil)

	resolver := NewResolver(repo, 64)

	principal, divisions, err := resolver.Hierarchy(context.Background())
	require.NoError(t, err)
	require.NotNil(t, principal)
	assert.Equal(t, "Main Arena", principal.Name)
	require.Len(t, divisions, 2)
	assert.Equal(t, "Division 1", divisions[0].Name)
}

func TestResolverHierarchyWithoutPrincipal(t *testing.T) {
	repo := new(MockRepo)
	repo.On("ListAvailable", mock.Anything).Return([]Court{
		{ID: 2, Name: "Division 1", MaxCapacity: 20, Status: StatusAvailable},
	}, nil)

	resolver := NewResolver(repo, 64)

	principal, divisions, err := resolver.Hierarchy(context.Background())
	require.NoError(t, err)
	assert.Nil(t, principal)
	assert.Len(t, divisions, 1)

	p, err := resolver.Principal(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestResolverDivisions(t *testing.T) {
	repo := new(MockRepo)
	repo.On("ListAvailable", mock.Anything).Return([]Court{
		{ID: 1, Name: "Main Arena", MaxCapacity: 64, Status: StatusAvailable},
		{ID: 2, Name: "Division 1", MaxCapacity: 20, Status: StatusAvailable},
	}, nil)

	resolver := NewResolver(repo, 64)

	divisions, err := resolver.Divisions(context.Background())
	require.NoError(t, err)
	require.Len(t, divisions, 1)
	assert.Equal(t, "Division 1", divisions[0].Name)
}
