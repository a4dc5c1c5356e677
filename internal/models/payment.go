package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type Ticket struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	EventID          uint      `json:"event_id" gorm:"not null;index"`
	EventName        string    `json:"event_name"`
	UserID           uint      `json:"user_id" gorm:"not null;index"`
	TicketType       string    `json:"ticket_type" gorm:"not null"`
	Price            int64     `json:"price"` // cents
	BookingReference string    `json:"booking_reference" gorm:"unique;not null"`
	CreatedAt        time.Time `json:"created_at"`
}

type Payment struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	TicketID        uint          `json:"ticket_id" gorm:"not null;index"`
	TicketName      string        `json:"ticket_name"`
	UserID          uint          `json:"user_id" gorm:"not null;index"`
	UserName        string        `json:"user_name"`
	Amount          int64         `json:"amount"`
	PaymentMethod   string        `json:"payment_method"`
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"type:varchar(16);not null;default:'pending'"`
	StripeSessionID string        `json:"stripe_session_id" gorm:"index"`
	PaymentDate     time.Time     `json:"payment_date"`
}

type BookTicketRequest struct {
	EventID    uint   `json:"event_id" validate:"required"`
	TicketType string `json:"ticket_type" validate:"required,max=50"`
}

type Booking struct {
	Ticket      Ticket  `json:"ticket"`
	Payment     Payment `json:"payment"`
	CheckoutURL string  `json:"checkout_url,omitempty"`
}
