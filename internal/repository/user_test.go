package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookgetter/bookstore/internal/models"
)

func TestUserRegister(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	user, err := r.Users.Register(ctx, "alice", "pw123456", "a@x.com", models.RoleCustomer)
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, models.RoleCustomer, user.Role)
}

func TestUserRegisterDuplicateUsername(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	_, err := r.Users.Register(ctx, "alice", "pw123456", "a@x.com", models.RoleCustomer)
	require.NoError(t, err)

	_, err = r.Users.Register(ctx, "alice", "pw654321", "b@x.com", models.RoleCustomer)
	require.ErrorIs(t, err, ErrConflict)
	require.Contains(t, err.Error(), "username")
}

func TestUserRegisterDuplicateEmail(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	_, err := r.Users.Register(ctx, "bob", "pw123456", "c@x.com", models.RoleCustomer)
	require.NoError(t, err)

	_, err = r.Users.Register(ctx, "carol", "pw123456", "c@x.com", models.RoleCustomer)
	require.ErrorIs(t, err, ErrConflict)
	require.Contains(t, err.Error(), "email")
}

func TestUserLogin(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	registered, err := r.Users.Register(ctx, "alice", "pw123456", "a@x.com", models.RoleCustomer)
	require.NoError(t, err)

	user, err := r.Users.Login(ctx, "alice", "pw123456")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, registered.ID, user.ID)

	// wrong password: no user, no error
	user, err = r.Users.Login(ctx, "alice", "wrong")
	require.NoError(t, err)
	require.Nil(t, user)

	user, err = r.Users.Login(ctx, "nobody", "pw123456")
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestUserUpdateReplacesRecord(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	registered, err := r.Users.Register(ctx, "alice", "pw123456", "a@x.com", models.RoleCustomer)
	require.NoError(t, err)

	modified := *registered
	modified.Address = "1 Main St"
	modified.Phone = "555-0100"
	updated, err := r.Users.Update(ctx, modified)
	require.NoError(t, err)
	require.Equal(t, "1 Main St", updated.Address)

	reloaded, err := r.Users.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	require.Equal(t, modified, *reloaded)

	ghost := models.NewUser("ghost", "pw123456", "g@x.com", models.RoleCustomer)
	_, err = r.Users.Update(ctx, ghost)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserPatchKeepsUntouchedFields(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	registered, err := r.Users.Register(ctx, "alice", "pw123456", "a@x.com", models.RoleCustomer)
	require.NoError(t, err)

	address := "1 Main St"
	empty := ""
	patched, err := r.Users.Patch(ctx, registered.ID, UserPatch{Address: &address, Password: &empty})
	require.NoError(t, err)
	require.Equal(t, "1 Main St", patched.Address)
	require.Equal(t, "a@x.com", patched.Email)
	// empty password patch keeps the stored credential
	require.Equal(t, "pw123456", patched.Password)

	_, err = r.Users.Patch(ctx, "no-such-id", UserPatch{Address: &address})
	require.ErrorIs(t, err, ErrNotFound)
}
