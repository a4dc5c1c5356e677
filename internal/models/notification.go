package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	Message   string         `json:"message" gorm:"not null"`
	IsRead    bool           `json:"is_read" gorm:"not null;default:false"`
	Data      datatypes.JSON `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
