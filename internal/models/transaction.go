package models

import "time"

// TransactionType represents the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the supported transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single income or expense entry.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Amount      float64         `gorm:"type:numeric(14,2);not null" json:"amount"`
	Category    string          `gorm:"size:100;not null;index" json:"category"`
	Type        TransactionType `gorm:"size:16;not null;index" json:"type"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Description *string         `json:"description"`

	Owner *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
