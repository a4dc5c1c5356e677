package repository

import (
	"context"
	"strings"
	"time"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	*Repository[models.Event]
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{Repository: NewRepository[models.Event](db)}
}

func byOrganizer(organizerID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if organizerID == 0 {
			return db
		}
		return db.Where("events.organizer_id = ?", organizerID)
	}
}

func joinLocations(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN locations ON locations.id = events.location_id")
}

func (r *EventRepository) GetByCategory(ctx context.Context, categoryID uint) ([]models.Event, error) {
	return r.GetWhere(ctx, Where("category_id = ?", categoryID))
}

func (r *EventRepository) GetByOrganizer(ctx context.Context, organizerID uint) ([]models.Event, error) {
	return r.GetWhere(ctx, Where("organizer_id = ?", organizerID))
}

func (r *EventRepository) GetByStatus(ctx context.Context, status models.ApprovalStatus) ([]models.Event, error) {
	return r.GetWhere(ctx, Where("status = ?", status), OrderBy("start_date"))
}

func (r *EventRepository) GetByCity(ctx context.Context, city string) ([]models.Event, error) {
	return r.GetWhere(ctx, joinLocations, Where("LOWER(locations.city) = ?", strings.ToLower(city)))
}

func (r *EventRepository) GetByCountry(ctx context.Context, country string) ([]models.Event, error) {
	return r.GetWhere(ctx, joinLocations, Where("LOWER(locations.country) = ?", strings.ToLower(country)))
}

// SearchByName büyük/küçük harf duyarsız içerir araması yapar
func (r *EventRepository) SearchByName(ctx context.Context, name string) ([]models.Event, error) {
	return r.GetWhere(ctx, Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%"))
}

func (r *EventRepository) GetWithLocation(ctx context.Context) ([]models.Event, error) {
	return r.GetWhere(ctx, Preload("Location"))
}

func (r *EventRepository) GetStartingBetween(ctx context.Context, from, to time.Time, organizerID uint) ([]models.Event, error) {
	return r.GetWhere(ctx,
		Where("events.start_date >= ? AND events.start_date < ?", from, to),
		byOrganizer(organizerID),
		OrderBy("events.start_date"),
	)
}

func (r *EventRepository) GetStartingFrom(ctx context.Context, from time.Time, organizerID uint) ([]models.Event, error) {
	return r.GetWhere(ctx,
		Where("events.start_date >= ?", from),
		byOrganizer(organizerID),
		OrderBy("events.start_date"),
	)
}

// ReserveTicket decrements available tickets only while some are left.
// Returns false when the event is sold out.
func (r *EventRepository) ReserveTicket(ctx context.Context, eventID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND available_tickets > 0", eventID).
		UpdateColumn("available_tickets", gorm.Expr("available_tickets - 1"))
	return result.RowsAffected == 1, result.Error
}

func (r *EventRepository) ReleaseTicket(ctx context.Context, eventID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND available_tickets < max_attendance", eventID).
		UpdateColumn("available_tickets", gorm.Expr("available_tickets + 1")).Error
}
