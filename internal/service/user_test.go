package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"paylock/internal/repository"
)

func newTestUsers(t *testing.T) UserService {
	t.Helper()
	db := newTestDB(t)
	return NewUserService(repository.NewUserRepository(db), "test-secret", "admin@paylock.com")
}

func TestSignupHashesPasswordAndAssignsRole(t *testing.T) {
	users := newTestUsers(t)
	ctx := context.Background()

	resp, err := users.Signup(ctx, "Awa", "awa@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, "user", resp.User.Role)
	require.NotEmpty(t, resp.Token)

	admin, err := users.Signup(ctx, "Admin", "Admin@Paylock.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, "admin", admin.User.Role)

	list, err := users.ListUsers(ctx)
	require.NoError(t, err)
	for _, u := range list {
		require.NotEqual(t, "secret123", u.PasswordHash)
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	users := newTestUsers(t)
	ctx := context.Background()

	_, err := users.Signup(ctx, "Awa", "awa@example.com", "secret123")
	require.NoError(t, err)

	_, err = users.Signup(ctx, "Awa bis", "awa@example.com", "secret456")
	require.ErrorIs(t, err, repository.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	users := newTestUsers(t)
	ctx := context.Background()

	_, err := users.Signup(ctx, "Awa", "awa@example.com", "secret123")
	require.NoError(t, err)

	resp, err := users.Login(ctx, "awa@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, "awa@example.com", resp.User.Email)
	require.NotEmpty(t, resp.Token)

	_, err = users.Login(ctx, "awa@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.Login(ctx, "nobody@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupValidation(t *testing.T) {
	users := newTestUsers(t)
	ctx := context.Background()

	_, err := users.Signup(ctx, "", "awa@example.com", "secret123")
	require.True(t, IsValidation(err))

	_, err = users.Signup(ctx, "Awa", "", "secret123")
	require.True(t, IsValidation(err))

	_, err = users.Signup(ctx, "Awa", "awa@example.com", "short")
	require.True(t, IsValidation(err))
}
