package usecase

import (
	"context"
	"errors"
	"strings"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/logger"
	"job-board-backend/pkg/security"
)

type jobSeekerUsecase struct {
	tx          domain.TxManager
	accounts    domain.AccountRepository
	jobSeekers  domain.JobSeekerRepository
	attachments domain.AttachmentManager
	auth        domain.AuthUsecase
	secLog      *security.SecurityLogger
}

func NewJobSeekerUsecase(
	tx domain.TxManager,
	accounts domain.AccountRepository,
	jobSeekers domain.JobSeekerRepository,
	attachments domain.AttachmentManager,
	authUC domain.AuthUsecase,
	secLog *security.SecurityLogger,
) domain.JobSeekerUsecase {
	if secLog == nil {
		secLog = security.DefaultLogger()
	}
	return &jobSeekerUsecase{
		tx:          tx,
		accounts:    accounts,
		jobSeekers:  jobSeekers,
		attachments: attachments,
		auth:        authUC,
		secLog:      secLog,
	}
}

// Register uploads the resume, then creates the account and profile in one
// transaction. A failed transaction discards the upload.
func (uc *jobSeekerUsecase) Register(ctx context.Context, in domain.JobSeekerRegistration) (*domain.Session, error) {
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)

	if err := ensureAccountAvailable(ctx, uc.accounts, email, username); err != nil {
		return nil, err
	}
	if in.Resume == nil {
		return nil, apperror.BadRequest("Resume file is required")
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.BadRequest("Password cannot be used")
	}

	key, err := uc.attachments.AttachNew(ctx, email, in.Resume)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleJobSeeker,
	}
	profile := &domain.JobSeekerProfile{
		Education:  in.Education,
		Experience: in.Experience,
		Skills:     in.Skills,
		ResumeKey:  key,
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.accounts.Create(ctx, account); err != nil {
			return err
		}
		profile.AccountID = account.ID
		return uc.jobSeekers.Create(ctx, profile)
	})
	if err != nil {
		if !uc.keyClaimedByWinner(ctx, err, email) {
			uc.attachments.Discard(ctx, key)
		}
		return nil, conflictOr(err, "User already exists")
	}

	uc.secLog.LogRegistered(ctx, account.ID, string(account.Role))

	uc.withResumeLink(ctx, profile)
	return uc.auth.IssueSession(ctx, &domain.Principal{Account: *account, JobSeeker: profile})
}

// keyClaimedByWinner reports whether a registration that lost a unique
// constraint race shares its resume key with the account that won it. Keys are
// namespaced by email, so that only happens when the winner holds the same
// email. An unanswered lookup counts as claimed; an orphaned object is
// preferable to a profile pointing at a deleted one.
func (uc *jobSeekerUsecase) keyClaimedByWinner(ctx context.Context, err error, email string) bool {
	if !errors.Is(err, domain.ErrDuplicate) {
		return false
	}
	winner, lookupErr := uc.accounts.FindByEmail(ctx, email)
	if lookupErr != nil {
		if !errors.Is(lookupErr, domain.ErrNotFound) {
			logger.Log.Warn("Keeping resume after registration conflict", "error", lookupErr)
			return true
		}
		return false
	}
	return winner != nil
}

// Current returns the principal with a freshly signed resume link.
func (uc *jobSeekerUsecase) Current(ctx context.Context, principal *domain.Principal) (*domain.Principal, error) {
	if principal == nil || principal.JobSeeker == nil {
		return nil, apperror.Forbidden("Access restricted to jobseeker accounts")
	}

	profile := *principal.JobSeeker
	if err := uc.withResumeLinkStrict(ctx, &profile); err != nil {
		return nil, err
	}

	out := *principal
	out.JobSeeker = &profile
	return &out, nil
}

// Update replaces the profile fields. With a new resume the upload happens
// first, the row is updated, and only then is the previous file removed.
func (uc *jobSeekerUsecase) Update(ctx context.Context, principal *domain.Principal, id int64, in domain.JobSeekerUpdate) (*domain.JobSeekerProfile, error) {
	profile, err := uc.jobSeekers.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Job seeker not found")
	}

	if err := uc.auth.AssertOwner(profile, principal); err != nil {
		return nil, err
	}

	updated := *profile
	updated.Education = in.Education
	updated.Experience = in.Experience
	updated.Skills = in.Skills

	if in.Resume == nil {
		err = uc.jobSeekers.Update(ctx, &updated)
	} else {
		_, err = uc.attachments.ReplaceAndCommit(ctx, profile.ResumeKey, principal.Email, in.Resume,
			func(ctx context.Context, newKey string) error {
				updated.ResumeKey = newKey
				return uc.jobSeekers.Update(ctx, &updated)
			})
	}
	if err != nil {
		return nil, notFoundOr(err, "Job seeker not found")
	}

	if err := uc.withResumeLinkStrict(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// withResumeLink is used once the write is committed: a signing failure is
// logged and the link left empty rather than failing the request.
func (uc *jobSeekerUsecase) withResumeLink(ctx context.Context, profile *domain.JobSeekerProfile) {
	if err := uc.withResumeLinkStrict(ctx, profile); err != nil {
		logger.Log.Warn("Resume link unavailable", "job_seeker_id", profile.ID, "error", err)
	}
}

func (uc *jobSeekerUsecase) withResumeLinkStrict(ctx context.Context, profile *domain.JobSeekerProfile) error {
	if profile.ResumeKey == "" {
		return nil
	}
	url, err := uc.attachments.LinkFor(ctx, profile.ResumeKey)
	if err != nil {
		return err
	}
	profile.ResumeURL = url
	return nil
}

// ensureAccountAvailable gives the friendly duplicate message up front. The
// unique constraints still decide races.
func ensureAccountAvailable(ctx context.Context, accounts domain.AccountRepository, email, username string) error {
	existing, err := accounts.FindByEmailOrUsername(ctx, email, username)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil {
		return apperror.Conflict("User already exists")
	}
	return nil
}
