package models

import "time"

// Budget represents a spending limit for a category over a date range.
type Budget struct {
	Base
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Category  string    `gorm:"size:100;not null;index" json:"category"`
	Amount    float64   `gorm:"type:numeric(14,2);not null" json:"amount"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Name      *string   `gorm:"size:255" json:"name"`

	Owner *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
