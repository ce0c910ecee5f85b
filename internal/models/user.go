package models

// User represents an account holder. Every transaction, budget and goal
// belongs to exactly one user.
type User struct {
	Base
	Email          string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedPassword string  `gorm:"size:255;not null" json:"-"`
	FullName       *string `gorm:"size:255;index" json:"full_name"`
	IsActive       bool    `gorm:"not null" json:"is_active"`
	IsSuperuser    bool    `gorm:"not null" json:"is_superuser"`
}
