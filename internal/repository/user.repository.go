package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserRepository persists users.
type UserRepository struct {
	*Repository[models.User]
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{New[models.User](db)}
}

// GetByEmail looks a user up by email, case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.conn(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// ListAll returns every user ordered by id.
func (r *UserRepository) ListAll(ctx context.Context, page pagination.PageRequest) ([]models.User, int64, error) {
	return r.List(ctx, ListOptions{
		OrderBy: []string{"id ASC"},
		Page:    page,
	})
}

// NormalizeEmail is the canonical stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
