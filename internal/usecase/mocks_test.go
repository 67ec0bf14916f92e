package usecase_test

import (
	"context"

	"job-board-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepo) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.Account, error) {
	args := m.Called(ctx, email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

type MockJobSeekerRepo struct {
	mock.Mock
}

func (m *MockJobSeekerRepo) Create(ctx context.Context, p *domain.JobSeekerProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockJobSeekerRepo) Update(ctx context.Context, p *domain.JobSeekerProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockJobSeekerRepo) FindByID(ctx context.Context, id int64) (*domain.JobSeekerProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSeekerProfile), args.Error(1)
}

func (m *MockJobSeekerRepo) FindByAccountID(ctx context.Context, accountID int64) (*domain.JobSeekerProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSeekerProfile), args.Error(1)
}

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) Create(ctx context.Context, c *domain.CompanyProfile) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCompanyRepo) Update(ctx context.Context, c *domain.CompanyProfile) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCompanyRepo) FindByID(ctx context.Context, id int64) (*domain.CompanyProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}

func (m *MockCompanyRepo) FindByAccountID(ctx context.Context, accountID int64) (*domain.CompanyProfile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}

type MockJobListingRepo struct {
	mock.Mock
}

func (m *MockJobListingRepo) Create(ctx context.Context, l *domain.JobListing) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockJobListingRepo) Update(ctx context.Context, l *domain.JobListing) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockJobListingRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobListingRepo) FindByID(ctx context.Context, id int64) (*domain.JobListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobListing), args.Error(1)
}

func (m *MockJobListingRepo) List(ctx context.Context, filter domain.JobListingFilter) ([]domain.JobListing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobListing), args.Error(1)
}

func (m *MockJobListingRepo) ListByCompany(ctx context.Context, companyID int64) ([]domain.JobListing, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobListing), args.Error(1)
}

type MockJobApplicationRepo struct {
	mock.Mock
}

func (m *MockJobApplicationRepo) Create(ctx context.Context, app *domain.JobApplication) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockJobApplicationRepo) Find(ctx context.Context, jobSeekerID, listingID int64) (*domain.JobApplication, error) {
	args := m.Called(ctx, jobSeekerID, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *MockJobApplicationRepo) FindByID(ctx context.Context, id int64) (*domain.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *MockJobApplicationRepo) ListByJobSeeker(ctx context.Context, jobSeekerID int64) ([]domain.JobApplication, error) {
	args := m.Called(ctx, jobSeekerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobApplication), args.Error(1)
}

func (m *MockJobApplicationRepo) ListByListing(ctx context.Context, listingID int64) ([]domain.JobApplication, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobApplication), args.Error(1)
}

// passthroughTx runs fn directly; commit and rollback are the repositories'
// concern in these tests.
type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type MockAttachmentStore struct {
	mock.Mock
}

func (m *MockAttachmentStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *MockAttachmentStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockAttachmentStore) SignedURL(ctx context.Context, key, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}
