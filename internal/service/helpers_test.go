package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/realtime"
	"github.com/sefazor/eventsphere-backend/internal/repository"
	"github.com/sefazor/eventsphere-backend/pkg/database"
	"github.com/sefazor/eventsphere-backend/pkg/email"
	"github.com/sefazor/eventsphere-backend/pkg/password"
	"github.com/sefazor/eventsphere-backend/pkg/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sentMail struct {
	To, Subject, HTML string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, HTML: html})
	return nil
}

func (m *recordingMailer) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

type pushed struct {
	ConnID  string
	Event   string
	Payload interface{}
}

type recordingPusher struct {
	mu     sync.Mutex
	pushes []pushed
}

func (p *recordingPusher) Push(ctx context.Context, connID, event string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, pushed{ConnID: connID, Event: event, Payload: payload})
	return nil
}

func (p *recordingPusher) Pushes() []pushed {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]pushed(nil), p.pushes...)
}

type testEnv struct {
	db            *gorm.DB
	mailer        *recordingMailer
	pusher        *recordingPusher
	registry      *realtime.Registry
	emailService  *email.EmailService
	users         *repository.UserRepository
	roles         *repository.Repository[models.Role]
	categories    *repository.Repository[models.EventCategory]
	locations     *repository.Repository[models.Location]
	events        *repository.EventRepository
	notifications *NotificationService
	eventService  *EventService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.RunMigrations(db))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	log := zap.NewNop()

	env := &testEnv{
		db:         db,
		mailer:     &recordingMailer{},
		pusher:     &recordingPusher{},
		registry:   realtime.NewRegistry(),
		users:      repository.NewUserRepository(db),
		roles:      repository.NewRepository[models.Role](db),
		categories: repository.NewRepository[models.EventCategory](db),
		locations:  repository.NewRepository[models.Location](db),
		events:     repository.NewEventRepository(db),
	}

	emailService, err := email.NewEmailService(env.mailer, log)
	require.NoError(t, err)
	env.emailService = emailService

	env.notifications = NewNotificationService(repository.NewNotificationRepository(db), env.registry, env.pusher, log)
	env.eventService = NewEventService(env.events, env.users, env.categories, env.locations, env.notifications, emailService, storage.NoopStorage{}, log)
	return env
}

func (e *testEnv) createUser(t *testing.T, name, mail, roleName, plain string) *models.User {
	t.Helper()
	role, err := e.roles.FirstWhere(context.Background(), repository.Where("role_name = ?", roleName))
	require.NoError(t, err)

	hash, salt, err := password.HashPassword(plain)
	require.NoError(t, err)

	user := &models.User{
		Name:        name,
		Email:       mail,
		Password:    hash,
		Salt:        salt,
		RoleID:      role.ID,
		RoleName:    role.RoleName,
		DateCreated: time.Now(),
	}
	require.NoError(t, e.users.Add(context.Background(), user))
	return user
}

func (e *testEnv) createCategory(t *testing.T, name string) *models.EventCategory {
	t.Helper()
	c := &models.EventCategory{CategoryName: name}
	require.NoError(t, e.categories.Add(context.Background(), c))
	return c
}

func (e *testEnv) createLocation(t *testing.T, city, country string, lat, lon float64) *models.Location {
	t.Helper()
	l := &models.Location{City: city, Country: country, Latitude: lat, Longitude: lon}
	require.NoError(t, e.locations.Add(context.Background(), l))
	return l
}

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(y % 256), B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
