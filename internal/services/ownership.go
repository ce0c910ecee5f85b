package services

import (
	"context"
	"errors"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/repository"
)

// loadOwned fetches id and checks that it belongs to userID. A missing record
// fails with notFound before ownership is considered; a record owned by
// someone else fails with ErrForbidden.
func loadOwned[T any](
	ctx context.Context,
	get func(context.Context, uint) (*T, error),
	ownerOf func(*T) uint,
	id, userID uint,
	notFound *apperrors.AppError,
) (*T, error) {
	entity, err := get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreFailure, err)
	}
	if ownerOf(entity) != userID {
		return nil, apperrors.ErrForbidden
	}
	return entity, nil
}

// storeError maps a repository failure to an application error, leaving
// application errors raised inside a transaction untouched.
func storeError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrStoreFailure, err)
}
