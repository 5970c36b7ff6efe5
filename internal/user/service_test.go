package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"courtly/internal/auth"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, name, email, passwordHash, role string) (*User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestRegister(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("EmailExists", mock.Anything, "ana@uni.edu").Return(false, nil)
	repo.On("Create", mock.Anything, "Ana", "ana@uni.edu", mock.Anything, auth.RoleStudent).
		Return(&User{ID: 1, Name: "Ana", Email: "ana@uni.edu", Role: auth.RoleStudent}, nil)

	svc := NewService(repo, "test-secret")

	u, access, refresh, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ana", Email: "ana@uni.edu", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("EmailExists", mock.Anything, "ana@uni.edu").Return(true, nil)

	svc := NewService(repo, "test-secret")

	_, _, _, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ana", Email: "ana@uni.edu", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	repo := new(MockUserRepo)
	repo.On("FindByEmail", mock.Anything, "ana@uni.edu").
		Return(&User{ID: 1, Email: "ana@uni.edu", PasswordHash: hash, Role: auth.RoleStudent}, nil)

	svc := NewService(repo, "test-secret")

	u, access, _, err := svc.Login(context.Background(), LoginRequest{
		Email: "ana@uni.edu", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)

	claims, err := auth.ValidateToken(access, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	repo := new(MockUserRepo)
	repo.On("FindByEmail", mock.Anything, "ana@uni.edu").
		Return(&User{ID: 1, Email: "ana@uni.edu", PasswordHash: hash}, nil)

	svc := NewService(repo, "test-secret")

	_, _, _, err = svc.Login(context.Background(), LoginRequest{
		Email: "ana@uni.edu", Password: "nope",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("FindByID", mock.Anything, 1).
		Return(&User{ID: 1, Email: "ana@uni.edu", Role: auth.RoleStudent}, nil)

	svc := NewService(repo, "test-secret")

	_, refresh, err := auth.GenerateTokens(1, "ana@uni.edu", auth.RoleStudent, "test-secret")
	require.NoError(t, err)

	access, u, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.NotEmpty(t, access)
}
