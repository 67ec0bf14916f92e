package domain

import "context"

type CompanyProfile struct {
	ID          int64  `json:"id"`
	AccountID   int64  `json:"account_id"`
	Name        string `json:"company_name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Location    string `json:"location"`
}

func (c *CompanyProfile) OwnerAccountID() int64 {
	return c.AccountID
}

type CompanyRegistration struct {
	Username    string
	Email       string
	Password    string
	Name        string
	Description string
	Website     string
	Location    string
}

// CompanyUpdate is a partial update; nil fields are left unchanged.
type CompanyUpdate struct {
	Name        *string
	Description *string
	Website     *string
	Location    *string
}

type CompanyRepository interface {
	Create(ctx context.Context, profile *CompanyProfile) error
	Update(ctx context.Context, profile *CompanyProfile) error
	FindByID(ctx context.Context, id int64) (*CompanyProfile, error)
	FindByAccountID(ctx context.Context, accountID int64) (*CompanyProfile, error)
}

type CompanyUsecase interface {
	Register(ctx context.Context, in CompanyRegistration) (*Session, error)
	Update(ctx context.Context, principal *Principal, id int64, in CompanyUpdate) (*CompanyProfile, error)
}
