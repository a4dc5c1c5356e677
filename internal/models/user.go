package models

import (
	"time"
)

const (
	RoleAdmin     = "Admin"
	RoleOrganizer = "Organizer"
	RoleAttendee  = "Attendee"
)

type Role struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	RoleName string `json:"role_name" gorm:"unique;not null"`
}

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email" gorm:"unique;not null"`
	Password    []byte    `json:"-" gorm:"not null"`
	Salt        []byte    `json:"-" gorm:"not null"`
	RoleID      uint      `json:"role_id" gorm:"not null;index"`
	RoleName    string    `json:"role_name"`
	DateCreated time.Time `json:"date_created"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.Name
	}
	return u.Name + " " + u.LastName
}

type UpdateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	LastName string `json:"last_name"`
	Email    string `json:"email" validate:"required,email"`
	RoleID   uint   `json:"role_id"`
}

type RoleRequest struct {
	RoleName string `json:"role_name" validate:"required,max=50"`
}
