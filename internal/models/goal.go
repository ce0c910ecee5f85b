package models

import "time"

// Goal represents a savings target. CurrentAmount is maintained by the
// client; it is not derived from transactions and may exceed TargetAmount.
type Goal struct {
	Base
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	Name          string     `gorm:"size:255;not null;index" json:"name"`
	TargetAmount  float64    `gorm:"type:numeric(14,2);not null" json:"target_amount"`
	CurrentAmount float64    `gorm:"type:numeric(14,2);not null;default:0" json:"current_amount"`
	Deadline      *time.Time `json:"deadline"`
	Description   *string    `json:"description"`

	Owner *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
