package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/repository"
	"github.com/sefazor/eventsphere-backend/pkg/email"
	"github.com/sefazor/eventsphere-backend/pkg/media"
	"github.com/sefazor/eventsphere-backend/pkg/storage"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Yakındaki etkinlikler için arama yarıçapı
const NearbyRadiusKm = 50.0

type EventService struct {
	eventRepo     *repository.EventRepository
	userRepo      *repository.UserRepository
	categoryRepo  *repository.Repository[models.EventCategory]
	locationRepo  *repository.Repository[models.Location]
	notifications *NotificationService
	emailService  *email.EmailService
	storage       storage.ObjectStore
	logger        *zap.Logger
	now           func() time.Time
}

func NewEventService(
	eventRepo *repository.EventRepository,
	userRepo *repository.UserRepository,
	categoryRepo *repository.Repository[models.EventCategory],
	locationRepo *repository.Repository[models.Location],
	notifications *NotificationService,
	emailService *email.EmailService,
	objectStore storage.ObjectStore,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo:     eventRepo,
		userRepo:      userRepo,
		categoryRepo:  categoryRepo,
		locationRepo:  locationRepo,
		notifications: notifications,
		emailService:  emailService,
		storage:       objectStore,
		logger:        logger,
		now:           time.Now,
	}
}

type eventRefs struct {
	organizer *models.User
	category  *models.EventCategory
	location  *models.Location
}

func (s *EventService) resolveRefs(ctx context.Context, req models.EventRequest) (*eventRefs, error) {
	organizer, err := s.userRepo.GetByID(ctx, req.OrganizerID)
	if err != nil {
		return nil, notFound(err, "organizer", req.OrganizerID)
	}
	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, notFound(err, "category", req.CategoryID)
	}
	location, err := s.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		return nil, notFound(err, "location", req.LocationID)
	}
	return &eventRefs{organizer: organizer, category: category, location: location}, nil
}

func validateCapacity(req models.EventRequest) error {
	if req.MaxAttendance < 0 || req.AvailableTickets < 0 {
		return validationError("capacity values must not be negative")
	}
	if req.AvailableTickets > req.MaxAttendance {
		return validationError("available tickets (%d) exceed max attendance (%d)", req.AvailableTickets, req.MaxAttendance)
	}
	if !req.EndDate.IsZero() && req.EndDate.Before(req.StartDate) {
		return validationError("end date is before start date")
	}
	return nil
}

func encodeImage(image []byte) (string, error) {
	photo, err := media.EncodeBase64(image)
	if err != nil {
		if errors.Is(err, media.ErrEmptyImage) || errors.Is(err, media.ErrUnsupportedFormat) || errors.Is(err, media.ErrInvalidImage) {
			return "", fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return "", err
	}
	return photo, nil
}

// archiveOriginal keeps the untouched upload in object storage. Failures are
// only logged.
func (s *EventService) archiveOriginal(ctx context.Context, eventID uint, image []byte) {
	mimeType, ext := media.DetectType(image)
	key := fmt.Sprintf("events/%d/original%s", eventID, ext)
	if err := s.storage.Upload(ctx, key, mimeType, image); err != nil {
		s.logger.Warn("failed to archive event image", zap.Uint("event_id", eventID), zap.Error(err))
	}
}

func (s *EventService) CreateEvent(ctx context.Context, req models.EventRequest, image []byte) (*models.Event, error) {
	if len(image) == 0 {
		return nil, validationError("event image is required")
	}
	if err := validateCapacity(req); err != nil {
		return nil, err
	}

	refs, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	photo, err := encodeImage(image)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	event := &models.Event{
		Name:             req.Name,
		Description:      req.Description,
		StartDate:        req.StartDate.UTC(),
		EndDate:          req.EndDate.UTC(),
		Address:          req.Address,
		LocationID:       refs.location.ID,
		CategoryID:       refs.category.ID,
		CategoryName:     refs.category.CategoryName,
		OrganizerID:      refs.organizer.ID,
		OrganizerName:    refs.organizer.Name,
		PhotoData:        photo,
		MaxAttendance:    req.MaxAttendance,
		AvailableTickets: req.AvailableTickets,
		TicketPrice:      req.TicketPrice,
		DateCreated:      now,
		Status:           models.StatusPending,
		ScheduleDate:     now,
	}

	if err := s.eventRepo.Add(ctx, event); err != nil {
		return nil, err
	}
	event.Location = refs.location

	s.archiveOriginal(ctx, event.ID, image)

	s.logger.Info("event created", zap.Uint("event_id", event.ID), zap.Uint("organizer_id", event.OrganizerID))
	return event, nil
}

// UpdateEvent replaces the mutable fields. The stored image is kept when
// newImage is empty.
func (s *EventService) UpdateEvent(ctx context.Context, id uint, req models.EventRequest, newImage []byte) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "event", id)
	}
	if err := validateCapacity(req); err != nil {
		return nil, err
	}

	refs, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(newImage) > 0 {
		photo, err := encodeImage(newImage)
		if err != nil {
			return nil, err
		}
		event.PhotoData = photo
	}

	event.Name = req.Name
	event.Description = req.Description
	event.Address = req.Address
	event.StartDate = req.StartDate.UTC()
	event.EndDate = req.EndDate.UTC()
	event.LocationID = refs.location.ID
	event.CategoryID = refs.category.ID
	event.CategoryName = refs.category.CategoryName
	event.OrganizerID = refs.organizer.ID
	event.OrganizerName = refs.organizer.Name
	event.MaxAttendance = req.MaxAttendance
	event.AvailableTickets = req.AvailableTickets
	event.TicketPrice = req.TicketPrice
	if !req.DateCreated.IsZero() {
		event.DateCreated = req.DateCreated.UTC()
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	event.Location = refs.location

	if len(newImage) > 0 {
		s.archiveOriginal(ctx, event.ID, newImage)
	}

	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	return s.eventRepo.Delete(ctx, id)
}

func (s *EventService) ApproveEvent(ctx context.Context, id uint) (*models.Event, error) {
	return s.changeStatus(ctx, id, models.StatusApproved, "")
}

// DisapproveEvent etkinliği tekrar onay bekleyen duruma çeker
func (s *EventService) DisapproveEvent(ctx context.Context, id uint) (*models.Event, error) {
	return s.changeStatus(ctx, id, models.StatusPending, "")
}

func (s *EventService) RejectEvent(ctx context.Context, id uint, message string) (*models.Event, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, validationError("rejection message is required")
	}
	return s.changeStatus(ctx, id, models.StatusRejected, message)
}

// changeStatus commits the new status first, then emails and notifies the
// organizer. Side effect errors are returned after the commit.
func (s *EventService) changeStatus(ctx context.Context, id uint, status models.ApprovalStatus, message string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "event", id)
	}

	event.Status = status
	event.Message = message
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID)
	if errors.Is(err, repository.ErrNotFound) {
		// Organizatör silinmiş; durum değişti ama bildirilecek kimse yok
		s.logger.Warn("event organizer missing, skipping notifications",
			zap.Uint("event_id", id), zap.Uint("organizer_id", event.OrganizerID))
		return event, nil
	}
	if err != nil {
		return event, fmt.Errorf("event %d status changed but organizer lookup failed: %w", id, err)
	}

	data := email.EventStatusData{
		OrganizerName: organizer.Name,
		EventName:     event.Name,
		Message:       message,
	}

	var mailErr error
	var text, kind string
	switch status {
	case models.StatusApproved:
		mailErr = s.emailService.SendEventApproved(ctx, organizer.Email, data)
		text, kind = fmt.Sprintf("Your event %s has been approved.", event.Name), "event_approved"
	case models.StatusRejected:
		mailErr = s.emailService.SendEventRejected(ctx, organizer.Email, data)
		text, kind = fmt.Sprintf("Your event %s has been rejected: %s", event.Name, message), "event_rejected"
	default:
		mailErr = s.emailService.SendEventDisapproved(ctx, organizer.Email, data)
		text, kind = fmt.Sprintf("Your event %s is pending review again.", event.Name), "event_disapproved"
	}

	_, notifyErr := s.notifications.Notify(ctx, organizer.ID, text, map[string]interface{}{
		"event_id": event.ID,
		"kind":     kind,
	})

	if err := multierr.Combine(mailErr, notifyErr); err != nil {
		s.logger.Error("event status side effects failed", zap.Uint("event_id", id), zap.String("status", string(status)), zap.Error(err))
		return event, fmt.Errorf("event %d status changed but organizer was not fully notified: %w", id, err)
	}

	s.logger.Info("event status changed", zap.Uint("event_id", id), zap.String("status", string(status)))
	return event, nil
}

func (s *EventService) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	return s.eventRepo.GetAll(ctx)
}

func (s *EventService) GetEventByID(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id, repository.Preload("Location"))
	if err != nil {
		return nil, notFound(err, "event", id)
	}
	return event, nil
}

func (s *EventService) CountEvents(ctx context.Context) (int64, error) {
	return s.eventRepo.Count(ctx)
}

func (s *EventService) GetOrganizerEmail(ctx context.Context, eventID uint) (string, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return "", notFound(err, "event", eventID)
	}
	organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID)
	if err != nil {
		return "", notFound(err, "organizer", event.OrganizerID)
	}
	return organizer.Email, nil
}

func (s *EventService) GetEventsByCategory(ctx context.Context, categoryID uint) ([]models.Event, error) {
	return s.eventRepo.GetByCategory(ctx, categoryID)
}

func (s *EventService) GetEventsByOrganizer(ctx context.Context, organizerID uint) ([]models.Event, error) {
	return s.eventRepo.GetByOrganizer(ctx, organizerID)
}

func (s *EventService) GetEventsByCity(ctx context.Context, city string) ([]models.Event, error) {
	return s.eventRepo.GetByCity(ctx, strings.TrimSpace(city))
}

func (s *EventService) GetEventsByCountry(ctx context.Context, country string) ([]models.Event, error) {
	return s.eventRepo.GetByCountry(ctx, strings.TrimSpace(country))
}

// GetEventsByName returns the whole catalog for an empty name. Whitespace is
// matched literally.
func (s *EventService) GetEventsByName(ctx context.Context, name string) ([]models.Event, error) {
	if name == "" {
		return s.eventRepo.GetAll(ctx)
	}
	return s.eventRepo.SearchByName(ctx, name)
}

func (s *EventService) GetApprovedEvents(ctx context.Context) ([]models.Event, error) {
	return s.eventRepo.GetByStatus(ctx, models.StatusApproved)
}

func (s *EventService) GetEventsByStatus(ctx context.Context, status models.ApprovalStatus) ([]models.Event, error) {
	if !status.Valid() {
		return nil, validationError("unknown status %q", status)
	}
	return s.eventRepo.GetByStatus(ctx, status)
}

// GetEventsByDate returns events starting on the same UTC calendar day.
// organizerID 0 matches every organizer.
func (s *EventService) GetEventsByDate(ctx context.Context, date time.Time, organizerID uint) ([]models.Event, error) {
	d := date.UTC()
	from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return s.eventRepo.GetStartingBetween(ctx, from, from.AddDate(0, 0, 1), organizerID)
}

// GetEventsByDateTime returns events starting at or after the instant.
func (s *EventService) GetEventsByDateTime(ctx context.Context, dateTime time.Time, organizerID uint) ([]models.Event, error) {
	return s.eventRepo.GetStartingFrom(ctx, dateTime.UTC(), organizerID)
}

func (s *EventService) GetEventsNearby(ctx context.Context, lat, lon float64) ([]models.Event, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, validationError("coordinates out of range")
	}

	events, err := s.eventRepo.GetWithLocation(ctx)
	if err != nil {
		return nil, err
	}

	type ranked struct {
		event    models.Event
		distance float64
	}
	var nearby []ranked
	for _, e := range events {
		if e.Location == nil {
			continue
		}
		if d := haversineKm(lat, lon, e.Location.Latitude, e.Location.Longitude); d <= NearbyRadiusKm {
			nearby = append(nearby, ranked{event: e, distance: d})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].distance < nearby[j].distance })

	result := make([]models.Event, 0, len(nearby))
	for _, r := range nearby {
		result = append(result, r.event)
	}
	return result, nil
}
