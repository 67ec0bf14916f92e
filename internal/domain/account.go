package domain

import (
	"context"
	"time"
)

type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is an authenticated account augmented with the profile that
// belongs to its role. Exactly one of JobSeeker or Company is set.
type Principal struct {
	Account
	JobSeeker *JobSeekerProfile `json:"job_seeker,omitempty"`
	Company   *CompanyProfile   `json:"company,omitempty"`
}

// Session is the result of a successful login or registration.
type Session struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	Principal *Principal `json:"principal"`
}

// Owned is implemented by records that belong to exactly one account.
type Owned interface {
	OwnerAccountID() int64
}

type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByID(ctx context.Context, id int64) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*Account, error)
}

// TxManager runs fn inside a single database transaction. Repositories called
// with the ctx passed to fn take part in that transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type AuthUsecase interface {
	// Authenticate verifies an email/password pair. Unknown email and wrong
	// password fail with the same error.
	Authenticate(ctx context.Context, email, password string) (*Account, error)
	Login(ctx context.Context, email, password string, role Role) (*Session, error)
	IssueSession(ctx context.Context, principal *Principal) (*Session, error)
	ResolvePrincipal(ctx context.Context, token string) (*Account, error)
	AuthorizeRole(ctx context.Context, account *Account, required Role) (*Principal, error)
	AssertOwner(record Owned, principal *Principal) error
	Logout(ctx context.Context, token string) error
}
