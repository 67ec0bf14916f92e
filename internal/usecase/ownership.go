package usecase

import (
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

// AssertOwner allows a mutation only when principal's account owns record.
// It must run after the record is loaded and before anything is written.
func AssertOwner(record domain.Owned, principal *domain.Principal) error {
	if principal == nil {
		return apperror.Unauthorized("Authentication required")
	}
	if record == nil {
		return apperror.Forbidden("You do not have permission to modify this resource")
	}

	owner := record.OwnerAccountID()
	if owner == 0 || owner != principal.ID {
		return apperror.Forbidden("You do not have permission to modify this resource")
	}
	return nil
}
