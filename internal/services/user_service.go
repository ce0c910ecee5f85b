package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fintrack/internal/credential"
	"fintrack/internal/database"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/repository"
)

// userService handles user-related business logic.
type userService struct {
	db    *gorm.DB
	users *repository.UserRepository
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db, users: repository.NewUserRepository(db)}
}

// CreateUser registers a new active, non-superuser account.
func (s *userService) CreateUser(ctx context.Context, in UserCreate) (*models.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	hash, err := credential.HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Email:          repository.NormalizeEmail(in.Email),
		HashedPassword: hash,
		FullName:       in.FullName,
		IsActive:       true,
	}

	err = database.WithinTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := s.ensureEmailFree(ctx, user.Email, 0); err != nil {
			return err
		}
		return s.users.Create(ctx, user)
	})
	if err != nil {
		return nil, userStoreError(err)
	}
	return user, nil
}

// AttemptLogin checks email and password. Unknown emails and wrong passwords
// fail identically; a deactivated account with the right password fails
// with ErrInactiveUser.
func (s *userService) AttemptLogin(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}

	if !credential.VerifyPassword(password, user.HashedPassword) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := RequireActive(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return user, nil
}

// ListUsers returns a page of all users ordered by id.
func (s *userService) ListUsers(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	users, total, err := s.users.ListAll(ctx, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	result := pagination.NewPageResponse(users, page, total)
	return &result, nil
}

// UpdateUser applies in to user and returns the stored result.
func (s *userService) UpdateUser(ctx context.Context, user *models.User, in UserUpdate) (*models.User, error) {
	changes, err := userChanges(in)
	if err != nil {
		return nil, err
	}

	err = database.WithinTransaction(ctx, s.db, func(ctx context.Context) error {
		if email, ok := changes["email"].(string); ok && email != user.Email {
			if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
				return err
			}
		}
		return s.users.Update(ctx, user, changes)
	})
	if err != nil {
		return nil, userStoreError(err)
	}
	return user, nil
}

// UpdateUserByID loads the user with the given id and updates it.
func (s *userService) UpdateUserByID(ctx context.Context, id uint, in UserUpdate) (*models.User, error) {
	var user *models.User
	err := database.WithinTransaction(ctx, s.db, func(ctx context.Context) error {
		var err error
		if user, err = s.GetUserByID(ctx, id); err != nil {
			return err
		}
		user, err = s.UpdateUser(ctx, user, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureSuperuser creates an active superuser with the given credentials, or
// promotes and reactivates the existing account with that email. The bool
// result reports whether a new account was created.
func (s *userService) EnsureSuperuser(ctx context.Context, email, password string) (*models.User, bool, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		active, super := true, true
		user, err := s.UpdateUser(ctx, existing, UserUpdate{Password: &password, IsActive: &active, IsSuperuser: &super})
		return user, false, err
	case !errors.Is(err, repository.ErrNotFound):
		return nil, false, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}

	user, err := s.CreateUser(ctx, UserCreate{Email: email, Password: password})
	if err != nil {
		return nil, false, err
	}
	if err := s.users.Update(ctx, user, map[string]interface{}{"is_superuser": true}); err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	return user, true, nil
}

func (s *userService) ensureEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return apperrors.ErrDuplicateEmail
	}
	return nil
}

func userChanges(in UserUpdate) (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if in.Email != nil {
		email := repository.NormalizeEmail(*in.Email)
		if email == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email must not be empty")
		}
		changes["email"] = email
	}
	if in.Password != nil {
		hash, err := credential.HashPassword(*in.Password)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		changes["hashed_password"] = hash
	}
	if in.FullName != nil {
		changes["full_name"] = *in.FullName
	}
	if in.IsActive != nil {
		changes["is_active"] = *in.IsActive
	}
	if in.IsSuperuser != nil {
		changes["is_superuser"] = *in.IsSuperuser
	}
	return changes, nil
}

func userStoreError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.ErrDuplicateEmail
	}
	return storeError(err)
}
