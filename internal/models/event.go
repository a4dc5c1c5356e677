package models

import (
	"time"
)

// Onay durumu. Disapprove bir etkinliği tekrar pending'e çeker.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Event struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Name             string         `json:"name" gorm:"not null"`
	Description      string         `json:"description" gorm:"type:varchar(1000)"`
	StartDate        time.Time      `json:"start_date" gorm:"index"`
	EndDate          time.Time      `json:"end_date"`
	Address          string         `json:"address"`
	LocationID       uint           `json:"location_id" gorm:"not null;index"`
	Location         *Location      `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	CategoryID       uint           `json:"category_id" gorm:"not null;index"`
	CategoryName     string         `json:"category_name"`
	OrganizerID      uint           `json:"organizer_id" gorm:"not null;index"`
	OrganizerName    string         `json:"organizer_name"`
	PhotoData        string         `json:"photo_data" gorm:"type:text"` // base64 JPEG
	MaxAttendance    int            `json:"max_attendance" gorm:"not null"`
	AvailableTickets int            `json:"available_tickets" gorm:"not null"`
	TicketPrice      int64          `json:"ticket_price" gorm:"not null;default:0"` // cents, 0 ücretsiz
	DateCreated      time.Time      `json:"date_created"`
	Status           ApprovalStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	ScheduleDate     time.Time      `json:"schedule_date"`
	Message          string         `json:"message"`
}

// Multipart form alanları; resim ayrı bir dosya alanı olarak gelir.
type EventRequest struct {
	Name             string    `json:"name" form:"name" validate:"required,max=200"`
	Description      string    `json:"description" form:"description" validate:"max=1000"`
	StartDate        time.Time `json:"start_date" form:"start_date" validate:"required"`
	EndDate          time.Time `json:"end_date" form:"end_date" validate:"required,gtefield=StartDate"`
	Address          string    `json:"address" form:"address"`
	LocationID       uint      `json:"location_id" form:"location_id" validate:"required"`
	CategoryID       uint      `json:"category_id" form:"category_id" validate:"required"`
	OrganizerID      uint      `json:"organizer_id" form:"organizer_id" validate:"required"`
	MaxAttendance    int       `json:"max_attendance" form:"max_attendance" validate:"gte=0"`
	AvailableTickets int       `json:"available_tickets" form:"available_tickets" validate:"gte=0"`
	TicketPrice      int64     `json:"ticket_price" form:"ticket_price" validate:"gte=0"`
	DateCreated      time.Time `json:"date_created" form:"date_created"`
}

type RejectEventRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}
