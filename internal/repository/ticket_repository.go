package repository

import (
	"context"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"gorm.io/gorm"
)

type TicketRepository struct {
	*Repository[models.Ticket]
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{Repository: NewRepository[models.Ticket](db)}
}

func (r *TicketRepository) GetByEvent(ctx context.Context, eventID uint) ([]models.Ticket, error) {
	return r.GetWhere(ctx, Where("event_id = ?", eventID))
}

func (r *TicketRepository) GetByUser(ctx context.Context, userID uint) ([]models.Ticket, error) {
	return r.GetWhere(ctx, Where("user_id = ?", userID), OrderBy("created_at DESC"))
}

type PaymentRepository struct {
	*Repository[models.Payment]
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{Repository: NewRepository[models.Payment](db)}
}

func (r *PaymentRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.Payment, error) {
	return r.FirstWhere(ctx, Where("stripe_session_id = ?", sessionID))
}

func (r *PaymentRepository) GetByTicket(ctx context.Context, ticketID uint) (*models.Payment, error) {
	return r.FirstWhere(ctx, Where("ticket_id = ?", ticketID))
}
