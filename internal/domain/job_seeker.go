package domain

import "context"

type JobSeekerProfile struct {
	ID         int64    `json:"id"`
	AccountID  int64    `json:"account_id"`
	Education  string   `json:"education"`
	Experience string   `json:"experience"`
	Skills     []string `json:"skills"`
	ResumeKey  string   `json:"-"`
	ResumeURL  string   `json:"resume_url,omitempty"`
}

func (p *JobSeekerProfile) OwnerAccountID() int64 {
	return p.AccountID
}

type JobSeekerRegistration struct {
	Username   string
	Email      string
	Password   string
	Education  string
	Experience string
	Skills     []string
	Resume     *Attachment
}

// JobSeekerUpdate replaces the profile fields. A nil Resume keeps the
// current file.
type JobSeekerUpdate struct {
	Education  string
	Experience string
	Skills     []string
	Resume     *Attachment
}

type JobSeekerRepository interface {
	Create(ctx context.Context, profile *JobSeekerProfile) error
	Update(ctx context.Context, profile *JobSeekerProfile) error
	FindByID(ctx context.Context, id int64) (*JobSeekerProfile, error)
	FindByAccountID(ctx context.Context, accountID int64) (*JobSeekerProfile, error)
}

type JobSeekerUsecase interface {
	Register(ctx context.Context, in JobSeekerRegistration) (*Session, error)
	Current(ctx context.Context, principal *Principal) (*Principal, error)
	Update(ctx context.Context, principal *Principal, id int64, in JobSeekerUpdate) (*JobSeekerProfile, error)
}
