package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fintrack/internal/credential"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/repository"
)

// IdentityResolver authenticates bearer tokens against the user store.
type IdentityResolver struct {
	engine *credential.Engine
	users  *repository.UserRepository
}

// NewIdentityResolver creates an IdentityResolver.
func NewIdentityResolver(engine *credential.Engine, db *gorm.DB) *IdentityResolver {
	return &IdentityResolver{engine: engine, users: repository.NewUserRepository(db)}
}

// Resolve verifies token and loads the user named by its subject. An invalid
// or expired token, a malformed subject and an unknown user all fail with
// ErrUnauthorized.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*models.User, error) {
	claims, err := r.engine.VerifyToken(token)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	id, err := claims.SubjectID()
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := r.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return user, nil
}

// RequireActive fails with ErrInactiveUser for deactivated users.
func RequireActive(user *models.User) error {
	if !user.IsActive {
		return apperrors.ErrInactiveUser
	}
	return nil
}

// RequireSuperuser fails with ErrNotSuperuser unless user is a superuser.
func RequireSuperuser(user *models.User) error {
	if !user.IsSuperuser {
		return apperrors.ErrNotSuperuser
	}
	return nil
}
