package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.EventCategory{}, &models.Location{}, &models.Event{}, &models.Notification{}, &models.User{}))
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	return db, mock
}

func TestRepositoryCRUD(t *testing.T) {
	db := setupSQLite(t)
	repo := NewRepository[models.EventCategory](db)
	ctx := context.Background()

	music := &models.EventCategory{CategoryName: "Music"}
	require.NoError(t, repo.Add(ctx, music))
	require.NoError(t, repo.Add(ctx, &models.EventCategory{CategoryName: "Tech"}))
	assert.NotZero(t, music.ID)

	got, err := repo.GetByID(ctx, music.ID)
	require.NoError(t, err)
	assert.Equal(t, "Music", got.CategoryName)

	got.CategoryName = "Live Music"
	require.NoError(t, repo.Update(ctx, got))

	matches, err := repo.GetWhere(ctx, Where("category_name LIKE ?", "Live%"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, music.ID, matches[0].ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FirstWhere(ctx, Where("category_name = ?", "Opera"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryDeleteMissingIsNoop(t *testing.T) {
	db := setupSQLite(t)
	repo := NewRepository[models.Location](db)
	ctx := context.Background()

	loc := &models.Location{City: "Berlin", Country: "Germany"}
	require.NoError(t, repo.Add(ctx, loc))

	require.NoError(t, repo.Delete(ctx, 4242))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Delete(ctx, loc.ID))
	require.NoError(t, repo.Delete(ctx, loc.ID))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetAllReturnsEmptySlice(t *testing.T) {
	repo := NewRepository[models.Location](setupSQLite(t))
	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestEventRepositoryReserveTicket(t *testing.T) {
	db := setupSQLite(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	event := &models.Event{Name: "Sold", LocationID: 1, CategoryID: 1, OrganizerID: 1, MaxAttendance: 1, AvailableTickets: 1}
	require.NoError(t, repo.Add(ctx, event))

	ok, err := repo.ReserveTicket(ctx, event.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ReserveTicket(ctx, event.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.ReleaseTicket(ctx, event.ID))
	require.NoError(t, repo.ReleaseTicket(ctx, event.ID))
	stored, err := repo.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.AvailableTickets)
}

func TestNotificationRepositoryMarkAllAsRead(t *testing.T) {
	db := setupSQLite(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &models.Notification{UserID: 1, Message: "a"}))
	require.NoError(t, repo.Add(ctx, &models.Notification{UserID: 1, Message: "b"}))
	require.NoError(t, repo.Add(ctx, &models.Notification{UserID: 2, Message: "c"}))

	n, err := repo.MarkAllAsRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	unread, err := repo.GetUnread(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, unread, 1)
}

func TestUserRepositoryByRole(t *testing.T) {
	db := setupSQLite(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &models.User{Name: "A", Email: "a@x.io", Password: []byte{1}, Salt: []byte{1}, RoleID: 1, RoleName: models.RoleAdmin}))
	require.NoError(t, repo.Add(ctx, &models.User{Name: "B", Email: "b@x.io", Password: []byte{1}, Salt: []byte{1}, RoleID: 3, RoleName: models.RoleAttendee}))

	admins, err := repo.GetByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "a@x.io", admins[0].Email)

	exists, err := repo.EmailExists(ctx, "b@x.io")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByEmail(ctx, "c@x.io")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryCountPostgresSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository[models.Event](db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "events" WHERE status = $1`)).
		WithArgs(models.StatusApproved).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background(), Where("status = ?", models.StatusApproved))
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDeletePostgresSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository[models.Report](db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "reports" WHERE "reports"."id" = $1`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 99))
	assert.NoError(t, mock.ExpectationsWereMet())
}
