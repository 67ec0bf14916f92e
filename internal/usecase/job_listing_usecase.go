package usecase

import (
	"context"
	"strings"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

type jobListingUsecase struct {
	listings     domain.JobListingRepository
	applications domain.JobApplicationRepository
	attachments  domain.AttachmentManager
	auth         domain.AuthUsecase
}

func NewJobListingUsecase(
	listings domain.JobListingRepository,
	applications domain.JobApplicationRepository,
	attachments domain.AttachmentManager,
	authUC domain.AuthUsecase,
) domain.JobListingUsecase {
	return &jobListingUsecase{
		listings:     listings,
		applications: applications,
		attachments:  attachments,
		auth:         authUC,
	}
}

func (uc *jobListingUsecase) Create(ctx context.Context, principal *domain.Principal, in domain.JobListingInput) (*domain.JobListing, error) {
	if principal == nil || principal.Company == nil {
		return nil, apperror.Forbidden("Only companies can create listings")
	}

	listing := &domain.JobListing{
		CompanyID:      principal.Company.ID,
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		SkillsRequired: in.SkillsRequired,
		Salary:         in.Salary,
		Experience:     in.Experience,
		StartDate:      in.StartDate,
		Location:       in.Location,
	}

	if err := uc.listings.Create(ctx, listing); err != nil {
		return nil, err
	}
	listing.Company = principal.Company
	return listing, nil
}

func (uc *jobListingUsecase) Get(ctx context.Context, id int64) (*domain.JobListing, error) {
	listing, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Listing not found")
	}
	return listing, nil
}

func (uc *jobListingUsecase) List(ctx context.Context, filter domain.JobListingFilter) ([]domain.JobListing, error) {
	filter.Title = strings.TrimSpace(filter.Title)
	filter.Location = strings.TrimSpace(filter.Location)
	filter.Skill = strings.TrimSpace(filter.Skill)
	return uc.listings.List(ctx, filter)
}

// MyListings returns the company's listings with their applicants. Every
// applicant's resume link is minted fresh.
func (uc *jobListingUsecase) MyListings(ctx context.Context, principal *domain.Principal) ([]domain.JobListingWithApplications, error) {
	if principal == nil || principal.Company == nil {
		return nil, apperror.Forbidden("Only companies have listings")
	}

	listings, err := uc.listings.ListByCompany(ctx, principal.Company.ID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.JobListingWithApplications, 0, len(listings))
	for _, l := range listings {
		apps, err := uc.applications.ListByListing(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		for i := range apps {
			if apps[i].JobSeeker == nil || apps[i].JobSeeker.ResumeKey == "" {
				continue
			}
			url, err := uc.attachments.LinkFor(ctx, apps[i].JobSeeker.ResumeKey)
			if err != nil {
				return nil, err
			}
			apps[i].JobSeeker.ResumeURL = url
		}
		out = append(out, domain.JobListingWithApplications{JobListing: l, Applications: apps})
	}
	return out, nil
}

func (uc *jobListingUsecase) Update(ctx context.Context, principal *domain.Principal, id int64, patch domain.JobListingPatch) (*domain.JobListing, error) {
	listing, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Listing not found")
	}

	if err := uc.auth.AssertOwner(listing, principal); err != nil {
		return nil, err
	}

	updated := *listing
	if patch.Title != nil {
		updated.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.SkillsRequired != nil {
		updated.SkillsRequired = patch.SkillsRequired
	}
	if patch.Salary != nil {
		updated.Salary = *patch.Salary
	}
	if patch.Experience != nil {
		updated.Experience = *patch.Experience
	}
	if patch.StartDate != nil {
		updated.StartDate = *patch.StartDate
	}
	if patch.Location != nil {
		updated.Location = *patch.Location
	}

	if err := uc.listings.Update(ctx, &updated); err != nil {
		return nil, notFoundOr(err, "Listing not found")
	}
	return &updated, nil
}

func (uc *jobListingUsecase) Delete(ctx context.Context, principal *domain.Principal, id int64) error {
	listing, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Listing not found")
	}

	if err := uc.auth.AssertOwner(listing, principal); err != nil {
		return err
	}

	return notFoundOr(uc.listings.Delete(ctx, id), "Listing not found")
}
