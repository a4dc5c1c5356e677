package models

type EventCategory struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	CategoryName string `json:"category_name" gorm:"not null"`
}

type Location struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Address   string  `json:"address"`
	City      string  `json:"city" gorm:"index"`
	Country   string  `json:"country" gorm:"index"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CategoryRequest struct {
	CategoryName string `json:"category_name" validate:"required,max=100"`
}

type LocationRequest struct {
	Address   string  `json:"address"`
	City      string  `json:"city" validate:"required"`
	Country   string  `json:"country" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}
