package service

import (
	"context"
	"testing"
	"time"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tokens := jwt.NewManager("test-secret", time.Hour)
	svc := NewAuthService(env.users, env.roles, tokens, env.emailService, zap.NewNop())

	resp, err := svc.Register(ctx, models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1", Role: models.RoleOrganizer})
	require.NoError(t, err)
	assert.Equal(t, models.RoleOrganizer, resp.User.RoleName)

	claims, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, models.RoleOrganizer, claims.Role)

	_, err = svc.Register(ctx, models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrConflict)

	login, err := svc.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "ada@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegisterDefaultsToAttendeeAndBlocksAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewAuthService(env.users, env.roles, jwt.NewManager("s", time.Hour), env.emailService, zap.NewNop())

	resp, err := svc.Register(ctx, models.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAttendee, resp.User.RoleName)

	_, err = svc.Register(ctx, models.RegisterRequest{Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrValidation)
}
