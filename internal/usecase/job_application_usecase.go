package usecase

import (
	"context"
	"errors"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

type jobApplicationUsecase struct {
	applications domain.JobApplicationRepository
	listings     domain.JobListingRepository
}

func NewJobApplicationUsecase(
	applications domain.JobApplicationRepository,
	listings domain.JobListingRepository,
) domain.JobApplicationUsecase {
	return &jobApplicationUsecase{
		applications: applications,
		listings:     listings,
	}
}

// Apply records one application per (job seeker, listing). The lookup gives
// the friendly message; the unique constraint is what holds under races.
func (uc *jobApplicationUsecase) Apply(ctx context.Context, principal *domain.Principal, listingID int64) (*domain.JobApplication, error) {
	if principal == nil || principal.JobSeeker == nil {
		return nil, apperror.Forbidden("Only job seekers can apply")
	}

	listing, err := uc.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, notFoundOr(err, "Listing not found")
	}

	existing, err := uc.applications.Find(ctx, principal.JobSeeker.ID, listingID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("Application already exists")
	}

	app := &domain.JobApplication{
		JobSeekerID:  principal.JobSeeker.ID,
		JobListingID: listingID,
	}
	if err := uc.applications.Create(ctx, app); err != nil {
		return nil, notFoundOr(conflictOr(err, "Application already exists"), "Listing not found")
	}

	app.JobListing = listing
	return app, nil
}

func (uc *jobApplicationUsecase) Get(ctx context.Context, id int64) (*domain.JobApplication, error) {
	app, err := uc.applications.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Application not found")
	}

	listing, err := uc.listings.FindByID(ctx, app.JobListingID)
	if err != nil {
		return nil, notFoundOr(err, "Listing not found")
	}
	app.JobListing = listing
	return app, nil
}

func (uc *jobApplicationUsecase) MyApplications(ctx context.Context, principal *domain.Principal) ([]domain.JobApplication, error) {
	if principal == nil || principal.JobSeeker == nil {
		return nil, apperror.Forbidden("Only job seekers have applications")
	}
	return uc.applications.ListByJobSeeker(ctx, principal.JobSeeker.ID)
}
