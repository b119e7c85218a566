package services

import (
	"errors"

	"postboard/app/models"
	"postboard/app/repositories"
)

// domainError turns repository sentinels into client-facing errors.
// notFound may be nil when a missing row is not expected.
func domainError(err error, notFound *models.AppError) error {
	var appErr *models.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, repositories.ErrNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, repositories.ErrDuplicateEmail):
		return models.NewConflictError("Email is already taken", err)
	case errors.Is(err, repositories.ErrConflict):
		return models.NewConflictError("Concurrent modification, try again", err)
	default:
		return err
	}
}
