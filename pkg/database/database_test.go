package database

import (
	"testing"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewDatabaseSeedsRolesOnce(t *testing.T) {
	cfg := Options{Driver: "sqlite", URL: "file::memory:", MaxOpenConns: 1, MaxIdleConns: 1}

	db, err := NewDatabase(cfg, zap.NewNop())
	require.NoError(t, err)

	// ikinci çalıştırma kopya oluşturmamalı
	require.NoError(t, RunMigrations(db))

	var roles []models.Role
	require.NoError(t, db.Order("id").Find(&roles).Error)
	require.Len(t, roles, 3)
	assert.Equal(t, models.RoleAdmin, roles[0].RoleName)
	assert.Equal(t, models.RoleOrganizer, roles[1].RoleName)
	assert.Equal(t, models.RoleAttendee, roles[2].RoleName)
}

func TestNewDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := NewDatabase(Options{Driver: "oracle", URL: "x"}, zap.NewNop())
	assert.Error(t, err)
}
