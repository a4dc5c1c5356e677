package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/realtime"
	"github.com/sefazor/eventsphere-backend/internal/repository"
	"github.com/sefazor/eventsphere-backend/internal/service"
	"github.com/sefazor/eventsphere-backend/pkg/database"
	"github.com/sefazor/eventsphere-backend/pkg/email"
	"github.com/sefazor/eventsphere-backend/pkg/jwt"
	"github.com/sefazor/eventsphere-backend/pkg/password"
	"github.com/sefazor/eventsphere-backend/pkg/qrcode"
	"github.com/sefazor/eventsphere-backend/pkg/storage"
	"github.com/sefazor/eventsphere-backend/pkg/utils"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiEnv struct {
	app      *fiber.App
	db       *gorm.DB
	tokens   *jwt.Manager
	users    *repository.UserRepository
	roles    *repository.Repository[models.Role]
	events   *repository.EventRepository
	category *models.EventCategory
	location *models.Location
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func newAPIEnv(t *testing.T, webhooks WebhookVerifier) *apiEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.RunMigrations(db))

	log := zap.NewNop()
	validator := utils.NewValidator()
	tokens := jwt.NewManager("handler-test-secret", time.Hour)

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRepository[models.Role](db)
	categoryRepo := repository.NewRepository[models.EventCategory](db)
	locationRepo := repository.NewRepository[models.Location](db)
	eventRepo := repository.NewEventRepository(db)

	emailService, err := email.NewEmailService(email.NewNoopMailer(log), log)
	require.NoError(t, err)

	registry := realtime.NewRegistry()
	hub := realtime.NewHub(registry, log)

	notificationService := service.NewNotificationService(repository.NewNotificationRepository(db), registry, hub, log)
	eventService := service.NewEventService(eventRepo, userRepo, categoryRepo, locationRepo, notificationService, emailService, storage.NoopStorage{}, log)
	reportService := service.NewReportService(repository.NewReportRepository(db), userRepo, notificationService, emailService, log)
	ticketService := service.NewTicketService(
		repository.NewTicketRepository(db),
		repository.NewPaymentRepository(db),
		eventRepo,
		userRepo,
		nil,
		qrcode.NewQRService("eventsphere"),
		emailService,
		log,
	)

	handlers := NewHandlers(
		NewAuthHandler(service.NewAuthService(userRepo, roleRepo, tokens, emailService, log), validator, log),
		NewEventHandler(eventService, validator, log),
		NewUserHandler(service.NewUserService(userRepo, roleRepo), validator, log),
		NewReportHandler(reportService, validator, log),
		NewNotificationHandler(notificationService, log),
		NewCatalogHandler(service.NewCatalogService(categoryRepo, locationRepo, roleRepo), validator, log),
		NewTicketHandler(ticketService, webhooks, validator, log),
	)

	app := fiber.New()
	RegisterRoutes(app, handlers, tokens, hub)

	env := &apiEnv{
		app:    app,
		db:     db,
		tokens: tokens,
		users:  userRepo,
		roles:  roleRepo,
		events: eventRepo,
	}

	env.category = &models.EventCategory{CategoryName: "Music"}
	require.NoError(t, categoryRepo.Add(context.Background(), env.category))
	env.location = &models.Location{City: "Izmir", Country: "Turkey", Latitude: 38.42, Longitude: 27.14}
	require.NoError(t, locationRepo.Add(context.Background(), env.location))

	return env
}

// createUser stores a user with the given role and returns it with a token.
func (e *apiEnv) createUser(t *testing.T, name, mail, roleName string) (*models.User, string) {
	t.Helper()
	role, err := e.roles.FirstWhere(context.Background(), repository.Where("role_name = ?", roleName))
	require.NoError(t, err)

	hash, salt, err := password.HashPassword("secret123")
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

	token, err := e.tokens.GenerateToken(user.ID, user.Email, user.RoleName)
	require.NoError(t, err)
	return user, token
}

func (e *apiEnv) createEvent(t *testing.T, organizer *models.User, status models.ApprovalStatus, seats int) *models.Event {
	t.Helper()
	start := time.Now().Add(48 * time.Hour).UTC()
	event := &models.Event{
		Name:             "Jazz Night",
		StartDate:        start,
		EndDate:          start.Add(3 * time.Hour),
		LocationID:       e.location.ID,
		CategoryID:       e.category.ID,
		CategoryName:     e.category.CategoryName,
		OrganizerID:      organizer.ID,
		OrganizerName:    organizer.FullName(),
		MaxAttendance:    seats,
		AvailableTickets: seats,
		DateCreated:      time.Now(),
		Status:           status,
	}
	require.NoError(t, e.events.Add(context.Background(), event))
	return event
}

func (e *apiEnv) do(t *testing.T, req *http.Request, token string) (*http.Response, apiResponse) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded apiResponse
	if len(body) > 0 && resp.Header.Get(fiber.HeaderContentType) == fiber.MIMEApplicationJSON {
		require.NoError(t, json.Unmarshal(body, &decoded))
	}
	return resp, decoded
}

func (e *apiEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return e.do(t, req, token)
}

func eventForm(t *testing.T, fields map[string]string, imageField string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile(imageField, "cover.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (e *apiEnv) eventFields(name string) map[string]string {
	start := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	return map[string]string{
		"name":              name,
		"description":       "Live music",
		"start_date":        start.Format(time.RFC3339),
		"end_date":          start.Add(2 * time.Hour).Format(time.RFC3339),
		"location_id":       fmt.Sprint(e.location.ID),
		"category_id":       fmt.Sprint(e.category.ID),
		"max_attendance":    "100",
		"available_tickets": "100",
	}
}

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 30, G: uint8(x % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
