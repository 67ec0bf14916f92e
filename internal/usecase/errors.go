package usecase

import (
	"errors"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

// notFoundOr turns a repository miss into a NotFound AppError with msg and
// passes every other error through unchanged.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(msg)
	}
	return err
}

// conflictOr turns a unique-constraint rejection into a Conflict AppError.
func conflictOr(err error, msg string) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return apperror.Conflict(msg)
	}
	return err
}
