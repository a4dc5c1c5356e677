package service

import (
	"context"
	"testing"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/repository"
	"github.com/sefazor/eventsphere-backend/pkg/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewUserService(env.users, env.roles)
	user := env.createUser(t, "Ada", "ada@example.com", models.RoleAttendee, "old-pass")

	err := svc.UpdatePassword(ctx, user.ID, models.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "new-pass"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = svc.UpdatePassword(ctx, 999, models.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-pass"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, models.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-pass"}))

	stored, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, password.Verify("new-pass", stored.Password, stored.Salt))
	assert.False(t, password.Verify("old-pass", stored.Password, stored.Salt))
	assert.NotEqual(t, user.Salt, stored.Salt)
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewUserService(env.users, env.roles)
	ada := env.createUser(t, "Ada", "ada@example.com", models.RoleAttendee, "secret1")
	env.createUser(t, "Grace", "grace@example.com", models.RoleAttendee, "secret1")

	_, err := svc.UpdateUser(ctx, 999, models.UpdateUserRequest{Name: "X", Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateUser(ctx, ada.ID, models.UpdateUserRequest{Name: "Ada", Email: "grace@example.com"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.UpdateUser(ctx, ada.ID, models.UpdateUserRequest{Name: "Ada", Email: "ada@example.com", RoleID: 999})
	assert.ErrorIs(t, err, ErrNotFound)

	organizers, err := svc.GetUsersByRole(ctx, models.RoleOrganizer)
	require.NoError(t, err)
	assert.Empty(t, organizers)

	role, err := env.roles.FirstWhere(ctx, repository.Where("role_name = ?", models.RoleOrganizer))
	require.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, ada.ID, models.UpdateUserRequest{Name: "Ada", LastName: "Lovelace", Email: "ada@lovelace.dev", RoleID: role.ID})
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", updated.LastName)
	assert.Equal(t, models.RoleOrganizer, updated.RoleName)

	organizers, err = svc.GetUsersByRole(ctx, models.RoleOrganizer)
	require.NoError(t, err)
	assert.Len(t, organizers, 1)

	byEmail, err := svc.GetUserByEmail(ctx, "ada@lovelace.dev")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, byEmail.ID)

	_, err = svc.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAndCountUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewUserService(env.users, env.roles)
	ada := env.createUser(t, "Ada", "ada@example.com", models.RoleAttendee, "secret1")

	count, err := svc.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.DeleteUser(ctx, 4242))
	require.NoError(t, svc.DeleteUser(ctx, ada.ID))

	users, err := svc.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
