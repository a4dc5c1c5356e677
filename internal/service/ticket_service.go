package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sefazor/eventsphere-backend/internal/models"
	"github.com/sefazor/eventsphere-backend/internal/repository"
	"github.com/sefazor/eventsphere-backend/pkg/email"
	"github.com/sefazor/eventsphere-backend/pkg/payment"
	"github.com/sefazor/eventsphere-backend/pkg/qrcode"
	"github.com/sefazor/eventsphere-backend/pkg/utils"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
)

const bookingReferenceLength = 10

type CheckoutProvider interface {
	CreateCheckoutSession(customerEmail string, item payment.CheckoutItem) (*stripe.CheckoutSession, error)
}

type TicketService struct {
	ticketRepo   *repository.TicketRepository
	paymentRepo  *repository.PaymentRepository
	eventRepo    *repository.EventRepository
	userRepo     *repository.UserRepository
	checkout     CheckoutProvider // nil ise sadece ücretsiz biletler
	qr           *qrcode.QRService
	emailService *email.EmailService
	logger       *zap.Logger
}

func NewTicketService(
	ticketRepo *repository.TicketRepository,
	paymentRepo *repository.PaymentRepository,
	eventRepo *repository.EventRepository,
	userRepo *repository.UserRepository,
	checkout CheckoutProvider,
	qr *qrcode.QRService,
	emailService *email.EmailService,
	logger *zap.Logger,
) *TicketService {
	return &TicketService{
		ticketRepo:   ticketRepo,
		paymentRepo:  paymentRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		checkout:     checkout,
		qr:           qr,
		emailService: emailService,
		logger:       logger,
	}
}

// BookTicket reserves a seat with a conditional decrement, so concurrent
// bookings can never oversell. Paid tickets open a Stripe checkout session and
// stay pending until the webhook confirms them.
func (s *TicketService) BookTicket(ctx context.Context, userID uint, req models.BookTicketRequest) (*models.Booking, error) {
	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, notFound(err, "event", req.EventID)
	}
	if event.Status != models.StatusApproved {
		return nil, validationError("event %d is not open for booking", event.ID)
	}
	if event.TicketPrice > 0 && s.checkout == nil {
		return nil, validationError("online payments are not available")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user", userID)
	}

	reserved, err := s.eventRepo.ReserveTicket(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	if !reserved {
		return nil, fmt.Errorf("event %d is sold out: %w", event.ID, ErrConflict)
	}

	ticket := &models.Ticket{
		EventID:          event.ID,
		EventName:        event.Name,
		UserID:           user.ID,
		TicketType:       req.TicketType,
		Price:            event.TicketPrice,
		BookingReference: utils.GenerateRandomString(bookingReferenceLength),
	}
	if err := s.ticketRepo.Add(ctx, ticket); err != nil {
		s.release(ctx, event.ID)
		return nil, err
	}

	pay := &models.Payment{
		TicketID:      ticket.ID,
		TicketName:    fmt.Sprintf("%s - %s", event.Name, ticket.TicketType),
		UserID:        user.ID,
		UserName:      user.FullName(),
		Amount:        ticket.Price,
		PaymentMethod: "card",
		PaymentStatus: models.PaymentStatusPending,
		PaymentDate:   time.Now().UTC(),
	}
	booking := &models.Booking{}

	if ticket.Price == 0 {
		pay.PaymentMethod = "free"
		pay.PaymentStatus = models.PaymentStatusCompleted
	} else {
		sess, err := s.checkout.CreateCheckoutSession(user.Email, payment.CheckoutItem{
			Name:        pay.TicketName,
			Description: fmt.Sprintf("Booking %s", ticket.BookingReference),
			AmountCents: ticket.Price,
			Metadata: map[string]string{
				"ticket_id": strconv.FormatUint(uint64(ticket.ID), 10),
				"user_id":   strconv.FormatUint(uint64(user.ID), 10),
			},
		})
		if err != nil {
			s.cancelTicket(ctx, ticket)
			return nil, err
		}
		pay.StripeSessionID = sess.ID
		booking.CheckoutURL = sess.URL
	}

	if err := s.paymentRepo.Add(ctx, pay); err != nil {
		s.cancelTicket(ctx, ticket)
		return nil, err
	}

	if pay.PaymentStatus == models.PaymentStatusCompleted {
		s.sendConfirmation(ctx, user, event, ticket)
	}

	booking.Ticket = *ticket
	booking.Payment = *pay
	s.logger.Info("ticket booked", zap.Uint("ticket_id", ticket.ID), zap.Uint("event_id", event.ID), zap.String("status", string(pay.PaymentStatus)))
	return booking, nil
}

func (s *TicketService) release(ctx context.Context, eventID uint) {
	if err := s.eventRepo.ReleaseTicket(ctx, eventID); err != nil {
		s.logger.Error("failed to release ticket", zap.Uint("event_id", eventID), zap.Error(err))
	}
}

func (s *TicketService) cancelTicket(ctx context.Context, ticket *models.Ticket) {
	if err := s.ticketRepo.Delete(ctx, ticket.ID); err != nil {
		s.logger.Error("failed to delete ticket", zap.Uint("ticket_id", ticket.ID), zap.Error(err))
	}
	s.release(ctx, ticket.EventID)
}

func (s *TicketService) sendConfirmation(ctx context.Context, user *models.User, event *models.Event, ticket *models.Ticket) {
	err := s.emailService.SendTicketConfirmation(ctx, user.Email, email.TicketData{
		UserName:         user.Name,
		EventName:        event.Name,
		TicketType:       ticket.TicketType,
		BookingReference: ticket.BookingReference,
		StartDate:        event.StartDate,
	})
	if err != nil {
		s.logger.Warn("failed to send ticket confirmation", zap.Uint("ticket_id", ticket.ID), zap.Error(err))
	}
}

// Webhook handler for Stripe events
func (s *TicketService) HandleStripeWebhook(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		pay, err := s.paymentForSession(ctx, event)
		if err != nil || pay.PaymentStatus != models.PaymentStatusPending {
			return err
		}

		pay.PaymentStatus = models.PaymentStatusCompleted
		pay.PaymentDate = time.Now().UTC()
		if err := s.paymentRepo.Update(ctx, pay); err != nil {
			return err
		}

		ticket, err := s.ticketRepo.GetByID(ctx, pay.TicketID)
		if err != nil {
			return notFound(err, "ticket", pay.TicketID)
		}
		user, err := s.userRepo.GetByID(ctx, ticket.UserID)
		if err != nil {
			return notFound(err, "user", ticket.UserID)
		}
		evt, err := s.eventRepo.GetByID(ctx, ticket.EventID)
		if err != nil {
			return notFound(err, "event", ticket.EventID)
		}
		s.sendConfirmation(ctx, user, evt, ticket)
		return nil

	case "checkout.session.expired", "checkout.session.async_payment_failed":
		pay, err := s.paymentForSession(ctx, event)
		if err != nil || pay.PaymentStatus != models.PaymentStatusPending {
			return err
		}

		pay.PaymentStatus = models.PaymentStatusFailed
		if err := s.paymentRepo.Update(ctx, pay); err != nil {
			return err
		}

		ticket, err := s.ticketRepo.GetByID(ctx, pay.TicketID)
		if err != nil {
			return notFound(err, "ticket", pay.TicketID)
		}
		// Koltuk tekrar satışa açılır
		return s.eventRepo.ReleaseTicket(ctx, ticket.EventID)
	}

	return nil
}

func (s *TicketService) paymentForSession(ctx context.Context, event stripe.Event) (*models.Payment, error) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, validationError("invalid checkout session payload")
	}

	pay, err := s.paymentRepo.GetBySessionID(ctx, sess.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("payment for session %s: %w", sess.ID, ErrNotFound)
		}
		return nil, err
	}
	return pay, nil
}

func (s *TicketService) GetTicketByID(ctx context.Context, id uint) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "ticket", id)
	}
	return ticket, nil
}

func (s *TicketService) GetTicketsByEvent(ctx context.Context, eventID uint) ([]models.Ticket, error) {
	return s.ticketRepo.GetByEvent(ctx, eventID)
}

func (s *TicketService) GetTicketsByUser(ctx context.Context, userID uint) ([]models.Ticket, error) {
	return s.ticketRepo.GetByUser(ctx, userID)
}

func (s *TicketService) CountTickets(ctx context.Context) (int64, error) {
	return s.ticketRepo.Count(ctx)
}

func (s *TicketService) GetPayment(ctx context.Context, ticketID uint) (*models.Payment, error) {
	pay, err := s.paymentRepo.GetByTicket(ctx, ticketID)
	if err != nil {
		return nil, notFound(err, "payment for ticket", ticketID)
	}
	return pay, nil
}

// TicketQRCode returns a PNG for the ticket's booking reference.
func (s *TicketService) TicketQRCode(ctx context.Context, ticketID uint) ([]byte, error) {
	ticket, err := s.GetTicketByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return s.qr.GenerateQRCode(ticket.BookingReference, qrcode.DefaultSize)
}
