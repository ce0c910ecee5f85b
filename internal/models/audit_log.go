package models

// AuditLog records mutations of user-owned data.
type AuditLog struct {
	Base
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	Action       string `gorm:"size:64;not null" json:"action"`
	ResourceType string `gorm:"size:32;not null" json:"resource_type"`
	ResourceID   uint   `json:"resource_id"`
	IPAddress    string `gorm:"size:64" json:"ip_address"`
	RequestID    string `gorm:"size:64" json:"request_id"`
	Changes      string `json:"changes,omitempty"`
}

// All lists every persisted model, in dependency order.
var All = []interface{}{
	&User{},
	&Transaction{},
	&Budget{},
	&Goal{},
	&AuditLog{},
}
