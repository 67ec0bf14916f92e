package usecase_test

import (
	"context"
	"testing"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/auth"
	"job-board-backend/pkg/security"
	"job-board-backend/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type registrationFixture struct {
	accounts   *MockAccountRepo
	jobSeekers *MockJobSeekerRepo
	companies  *MockCompanyRepo
	store      *storage.MemoryStore
	seekers    domain.JobSeekerUsecase
	companyUC  domain.CompanyUsecase
}

func newRegistrationFixture(t *testing.T) *registrationFixture {
	t.Helper()
	f := &registrationFixture{
		accounts:   new(MockAccountRepo),
		jobSeekers: new(MockJobSeekerRepo),
		companies:  new(MockCompanyRepo),
	}
	nop := security.NewNopSecurityLogger()
	authUC := usecase.NewAuthUsecase(usecase.AuthDeps{
		Accounts:    f.accounts,
		JobSeekers:  f.jobSeekers,
		Companies:   f.companies,
		Tokens:      auth.NewTokenService("test-secret", time.Hour),
		Revocations: auth.NewMemoryRevocationStore(),
		SecurityLog: nop,
	})

	var attachments *usecase.AttachmentManager
	attachments, f.store = newMemoryManager(t)

	f.seekers = usecase.NewJobSeekerUsecase(passthroughTx{}, f.accounts, f.jobSeekers, attachments, authUC, nop)
	f.companyUC = usecase.NewCompanyUsecase(passthroughTx{}, f.accounts, f.companies, authUC, nop)
	return f
}

func seekerRegistration() domain.JobSeekerRegistration {
	return domain.JobSeekerRegistration{
		Username:   "ada",
		Email:      "Ada@Example.com",
		Password:   testPassword,
		Education:  "BSc",
		Experience: "3 years",
		Skills:     []string{"go", "sql"},
		Resume:     resume("cv.pdf"),
	}
}

func TestJobSeekerRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account, profile and resume", func(t *testing.T) {
		f := newRegistrationFixture(t)
		f.accounts.On("FindByEmailOrUsername", ctx, "ada@example.com", "ada").Return(nil, domain.ErrNotFound)
		f.accounts.On("Create", ctx, mock.AnythingOfType("*domain.Account")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Account).ID = 11 }).
			Return(nil)
		f.jobSeekers.On("Create", ctx, mock.AnythingOfType("*domain.JobSeekerProfile")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.JobSeekerProfile).ID = 4 }).
			Return(nil)

		session, err := f.seekers.Register(ctx, seekerRegistration())
		require.NoError(t, err)

		assert.NotEmpty(t, session.Token)
		assert.Equal(t, "ada@example.com", session.Principal.Email)
		assert.Equal(t, domain.RoleJobSeeker, session.Principal.Role)
		require.NotNil(t, session.Principal.JobSeeker)
		assert.Equal(t, int64(11), session.Principal.JobSeeker.AccountID)
		assert.Equal(t, "ada@example.com/cv.pdf", session.Principal.JobSeeker.ResumeKey)
		assert.NotEmpty(t, session.Principal.JobSeeker.ResumeURL)
		assert.True(t, f.store.Has("ada@example.com/cv.pdf"))

		created := f.accounts.Calls[1].Arguments.Get(1).(*domain.Account)
		assert.True(t, security.CheckPassword(created.PasswordHash, testPassword))
	})

	t.Run("existing email or username", func(t *testing.T) {
		f := newRegistrationFixture(t)
		f.accounts.On("FindByEmailOrUsername", ctx, "ada@example.com", "ada").Return(&domain.Account{ID: 1}, nil)

		_, err := f.seekers.Register(ctx, seekerRegistration())
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		assert.Equal(t, "User already exists", err.Error())
		assert.Equal(t, 0, f.store.Len())
	})

	t.Run("lost username race discards upload", func(t *testing.T) {
		f := newRegistrationFixture(t)
		f.accounts.On("FindByEmailOrUsername", ctx, "ada@example.com", "ada").Return(nil, domain.ErrNotFound)
		f.accounts.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)
		f.accounts.On("FindByEmail", ctx, "ada@example.com").Return(nil, domain.ErrNotFound)

		_, err := f.seekers.Register(ctx, seekerRegistration())
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		assert.Equal(t, 0, f.store.Len())
		f.jobSeekers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lost email race keeps the winner's resume", func(t *testing.T) {
		f := newRegistrationFixture(t)
		f.accounts.On("FindByEmailOrUsername", ctx, "ada@example.com", "ada").Return(nil, domain.ErrNotFound)
		f.accounts.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)
		f.accounts.On("FindByEmail", ctx, "ada@example.com").Return(&domain.Account{ID: 7, Email: "ada@example.com"}, nil)

		_, err := f.seekers.Register(ctx, seekerRegistration())
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		assert.True(t, f.store.Has("ada@example.com/cv.pdf"))
	})

	t.Run("conflict never deletes a key the winner may hold", func(t *testing.T) {
		store := new(MockAttachmentStore)
		store.On("Put", mock.Anything, "ada@example.com/cv.pdf", pdfBytes, "application/pdf").Return(nil)
		attachments := usecase.NewAttachmentManager(store, security.NewFileValidator(1<<20), time.Second, security.NewNopSecurityLogger())

		accounts := new(MockAccountRepo)
		accounts.On("FindByEmailOrUsername", ctx, "ada@example.com", "ada").Return(nil, domain.ErrNotFound)
		accounts.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)
		accounts.On("FindByEmail", ctx, "ada@example.com").Return(nil, apperror.Database(assert.AnError))

		authUC := usecase.NewAuthUsecase(usecase.AuthDeps{
			Accounts:    accounts,
			Tokens:      auth.NewTokenService("test-secret", time.Hour),
			SecurityLog: security.NewNopSecurityLogger(),
		})
		seekers := usecase.NewJobSeekerUsecase(passthroughTx{}, accounts, new(MockJobSeekerRepo), attachments, authUC, security.NewNopSecurityLogger())

		_, err := seekers.Register(ctx, seekerRegistration())
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		store.AssertCalled(t, "Put", mock.Anything, "ada@example.com/cv.pdf", pdfBytes, "application/pdf")
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("profile insert failure discards upload", func(t *testing.T) {
		f := newRegistrationFixture(t)
		f.accounts.On("FindByEmailOrUsername", ctx, "ada@example.com", "ada").Return(nil, domain.ErrNotFound)
		f.accounts.On("Create", ctx, mock.Anything).Return(nil)
		f.jobSeekers.On("Create", ctx, mock.Anything).Return(apperror.Database(assert.AnError))

		_, err := f.seekers.Register(ctx, seekerRegistration())
		assert.Equal(t, apperror.KindDatabase, apperror.KindOf(err))
		assert.Equal(t, 0, f.store.Len())
	})

	t.Run("resume is required", func(t *testing.T) {
		f := newRegistrationFixture(t)
		f.accounts.On("FindByEmailOrUsername", ctx, "ada@example.com", "ada").Return(nil, domain.ErrNotFound)

		in := seekerRegistration()
		in.Resume = nil
		_, err := f.seekers.Register(ctx, in)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		f.accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestJobSeekerUpdate(t *testing.T) {
	ctx := context.Background()
	principal := &domain.Principal{Account: domain.Account{ID: 11, Email: "ada@example.com"}}

	t.Run("owner replaces resume", func(t *testing.T) {
		f := newRegistrationFixture(t)
		require.NoError(t, f.store.Put(ctx, "ada@example.com/old.pdf", pdfBytes, "application/pdf"))
		f.jobSeekers.On("FindByID", ctx, int64(4)).
			Return(&domain.JobSeekerProfile{ID: 4, AccountID: 11, ResumeKey: "ada@example.com/old.pdf"}, nil)
		f.jobSeekers.On("Update", mock.Anything, mock.AnythingOfType("*domain.JobSeekerProfile")).Return(nil)

		got, err := f.seekers.Update(ctx, principal, 4, domain.JobSeekerUpdate{
			Education: "MSc",
			Skills:    []string{"go"},
			Resume:    resume("new.pdf"),
		})
		require.NoError(t, err)

		assert.Equal(t, "MSc", got.Education)
		assert.Equal(t, "ada@example.com/new.pdf", got.ResumeKey)
		assert.NotEmpty(t, got.ResumeURL)
		assert.False(t, f.store.Has("ada@example.com/old.pdf"))
		assert.True(t, f.store.Has("ada@example.com/new.pdf"))
	})

	t.Run("without a resume keeps the file", func(t *testing.T) {
		f := newRegistrationFixture(t)
		require.NoError(t, f.store.Put(ctx, "ada@example.com/old.pdf", pdfBytes, "application/pdf"))
		f.jobSeekers.On("FindByID", ctx, int64(4)).
			Return(&domain.JobSeekerProfile{ID: 4, AccountID: 11, ResumeKey: "ada@example.com/old.pdf"}, nil)
		f.jobSeekers.On("Update", ctx, mock.Anything).Return(nil)

		got, err := f.seekers.Update(ctx, principal, 4, domain.JobSeekerUpdate{Education: "PhD"})
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com/old.pdf", got.ResumeKey)
		assert.True(t, f.store.Has("ada@example.com/old.pdf"))
	})

	t.Run("someone else's profile", func(t *testing.T) {
		f := newRegistrationFixture(t)
		f.jobSeekers.On("FindByID", ctx, int64(5)).Return(&domain.JobSeekerProfile{ID: 5, AccountID: 99}, nil)

		_, err := f.seekers.Update(ctx, principal, 5, domain.JobSeekerUpdate{Resume: resume("new.pdf")})
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		assert.Equal(t, 0, f.store.Len())
		f.jobSeekers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown profile", func(t *testing.T) {
		f := newRegistrationFixture(t)
		f.jobSeekers.On("FindByID", ctx, int64(6)).Return(nil, domain.ErrNotFound)

		_, err := f.seekers.Update(ctx, principal, 6, domain.JobSeekerUpdate{})
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestCompanyRegisterAndUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("register", func(t *testing.T) {
		f := newRegistrationFixture(t)
		f.accounts.On("FindByEmailOrUsername", ctx, "hr@acme.io", "acme").Return(nil, domain.ErrNotFound)
		f.accounts.On("Create", ctx, mock.Anything).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Account).ID = 21 }).
			Return(nil)
		f.companies.On("Create", ctx, mock.Anything).Return(nil)

		session, err := f.companyUC.Register(ctx, domain.CompanyRegistration{
			Username: "acme",
			Email:    "HR@acme.io",
			Password: testPassword,
			Name:     " Acme ",
		})
		require.NoError(t, err)
		require.NotNil(t, session.Principal.Company)
		assert.Equal(t, "Acme", session.Principal.Company.Name)
		assert.Equal(t, int64(21), session.Principal.Company.AccountID)
		assert.Equal(t, domain.RoleCompany, session.Principal.Role)
	})

	t.Run("duplicate", func(t *testing.T) {
		f := newRegistrationFixture(t)
		f.accounts.On("FindByEmailOrUsername", ctx, "hr@acme.io", "acme").Return(&domain.Account{ID: 21}, nil)

		_, err := f.companyUC.Register(ctx, domain.CompanyRegistration{Username: "acme", Email: "hr@acme.io", Password: testPassword, Name: "Acme"})
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("partial update by owner", func(t *testing.T) {
		f := newRegistrationFixture(t)
		f.companies.On("FindByID", ctx, int64(3)).
			Return(&domain.CompanyProfile{ID: 3, AccountID: 21, Name: "Acme", Location: "Berlin"}, nil)
		f.companies.On("Update", ctx, mock.Anything).Return(nil)

		website := "https://acme.io"
		got, err := f.companyUC.Update(ctx, &domain.Principal{Account: domain.Account{ID: 21}}, 3, domain.CompanyUpdate{Website: &website})
		require.NoError(t, err)
		assert.Equal(t, "Acme", got.Name)
		assert.Equal(t, "Berlin", got.Location)
		assert.Equal(t, website, got.Website)
	})

	t.Run("update by another company", func(t *testing.T) {
		f := newRegistrationFixture(t)
		f.companies.On("FindByID", ctx, int64(3)).Return(&domain.CompanyProfile{ID: 3, AccountID: 21}, nil)

		name := "Hijacked"
		_, err := f.companyUC.Update(ctx, &domain.Principal{Account: domain.Account{ID: 22}}, 3, domain.CompanyUpdate{Name: &name})
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		f.companies.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
