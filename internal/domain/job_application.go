package domain

import (
	"context"
	"time"
)

type JobApplication struct {
	ID           int64             `json:"id"`
	JobSeekerID  int64             `json:"job_seeker_id"`
	JobListingID int64             `json:"job_listing_id"`
	CreatedAt    time.Time         `json:"created_at"`
	JobSeeker    *JobSeekerProfile `json:"job_seeker,omitempty"`
	JobListing   *JobListing       `json:"job_listing,omitempty"`
}

type JobApplicationRepository interface {
	// Create fails with ErrDuplicate when the (job seeker, listing) pair
	// already has an application.
	Create(ctx context.Context, app *JobApplication) error
	Find(ctx context.Context, jobSeekerID, listingID int64) (*JobApplication, error)
	FindByID(ctx context.Context, id int64) (*JobApplication, error)
	// ListByJobSeeker includes each application's listing and company.
	ListByJobSeeker(ctx context.Context, jobSeekerID int64) ([]JobApplication, error)
	// ListByListing includes each application's job seeker profile.
	ListByListing(ctx context.Context, listingID int64) ([]JobApplication, error)
}

type JobApplicationUsecase interface {
	Apply(ctx context.Context, principal *Principal, listingID int64) (*JobApplication, error)
	Get(ctx context.Context, id int64) (*JobApplication, error)
	MyApplications(ctx context.Context, principal *Principal) ([]JobApplication, error)
}
