package domain

import (
	"context"
	"time"
)

type JobListing struct {
	ID             int64           `json:"id"`
	CompanyID      int64           `json:"company_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	SkillsRequired []string        `json:"skills_required"`
	Salary         float64         `json:"salary"`
	Experience     string          `json:"experience"`
	StartDate      time.Time       `json:"start_date"`
	Location       string          `json:"location"`
	CreatedAt      time.Time       `json:"created_at"`
	Company        *CompanyProfile `json:"company,omitempty"`
}

// OwnerAccountID resolves ownership through the owning company. A listing
// loaded without its company has no owner.
func (l *JobListing) OwnerAccountID() int64 {
	if l.Company == nil {
		return 0
	}
	return l.Company.AccountID
}

// JobListingWithApplications is a company's view of one of its listings.
type JobListingWithApplications struct {
	JobListing
	Applications []JobApplication `json:"applications"`
}

type JobListingFilter struct {
	Title    string
	Location string
	Skill    string
}

type JobListingInput struct {
	Title          string
	Description    string
	SkillsRequired []string
	Salary         float64
	Experience     string
	StartDate      time.Time
	Location       string
}

// JobListingPatch is a partial update; nil fields are left unchanged.
type JobListingPatch struct {
	Title          *string
	Description    *string
	SkillsRequired []string
	Salary         *float64
	Experience     *string
	StartDate      *time.Time
	Location       *string
}

type JobListingRepository interface {
	Create(ctx context.Context, listing *JobListing) error
	Update(ctx context.Context, listing *JobListing) error
	Delete(ctx context.Context, id int64) error
	// FindByID loads the listing together with its company.
	FindByID(ctx context.Context, id int64) (*JobListing, error)
	List(ctx context.Context, filter JobListingFilter) ([]JobListing, error)
	ListByCompany(ctx context.Context, companyID int64) ([]JobListing, error)
}

type JobListingUsecase interface {
	Create(ctx context.Context, principal *Principal, in JobListingInput) (*JobListing, error)
	Get(ctx context.Context, id int64) (*JobListing, error)
	List(ctx context.Context, filter JobListingFilter) ([]JobListing, error)
	MyListings(ctx context.Context, principal *Principal) ([]JobListingWithApplications, error)
	Update(ctx context.Context, principal *Principal, id int64, patch JobListingPatch) (*JobListing, error)
	Delete(ctx context.Context, principal *Principal, id int64) error
}
