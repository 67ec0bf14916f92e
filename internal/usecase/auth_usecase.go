package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/auth"
	"job-board-backend/pkg/logger"
	"job-board-backend/pkg/security"
)

// TokenService issues and verifies access tokens.
type TokenService interface {
	Issue(accountID int64) (string, *auth.Claims, error)
	Verify(token string) (*auth.Claims, error)
}

// TokenRevoker remembers logged-out tokens until they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// LoginGuard throttles repeated failed logins per email.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email string) bool
	RecordFailure(ctx context.Context, email string) bool
	Reset(ctx context.Context, email string)
}

type AuthDeps struct {
	Accounts    domain.AccountRepository
	JobSeekers  domain.JobSeekerRepository
	Companies   domain.CompanyRepository
	Tokens      TokenService
	Revocations TokenRevoker
	LoginGuard  LoginGuard
	SecurityLog *security.SecurityLogger
}

// profileLoader attaches the role-scoped profile to a principal.
type profileLoader func(ctx context.Context, p *domain.Principal) error

type authUsecase struct {
	accounts    domain.AccountRepository
	jobSeekers  domain.JobSeekerRepository
	companies   domain.CompanyRepository
	tokens      TokenService
	revocations TokenRevoker
	guard       LoginGuard
	secLog      *security.SecurityLogger

	profiles map[domain.Role]profileLoader
}

func NewAuthUsecase(deps AuthDeps) domain.AuthUsecase {
	uc := &authUsecase{
		accounts:    deps.Accounts,
		jobSeekers:  deps.JobSeekers,
		companies:   deps.Companies,
		tokens:      deps.Tokens,
		revocations: deps.Revocations,
		guard:       deps.LoginGuard,
		secLog:      deps.SecurityLog,
	}
	if uc.secLog == nil {
		uc.secLog = security.DefaultLogger()
	}
	uc.profiles = map[domain.Role]profileLoader{
		domain.RoleJobSeeker: uc.loadJobSeeker,
		domain.RoleCompany:   uc.loadCompany,
	}
	return uc
}

func (uc *authUsecase) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	email = normalizeEmail(email)

	if uc.guard != nil && uc.guard.IsBlocked(ctx, email) {
		uc.secLog.LogLoginBlocked(ctx, email)
		return nil, apperror.InvalidCredentials()
	}

	account, err := uc.accounts.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		security.BurnPasswordCheck(password)
		uc.recordFailure(ctx, email)
		return nil, apperror.InvalidCredentials()
	}

	if !security.CheckPassword(account.PasswordHash, password) {
		uc.recordFailure(ctx, email)
		return nil, apperror.InvalidCredentials()
	}

	if uc.guard != nil {
		uc.guard.Reset(ctx, email)
	}
	return account, nil
}

func (uc *authUsecase) recordFailure(ctx context.Context, email string) {
	if uc.guard != nil {
		uc.guard.RecordFailure(ctx, email)
		return
	}
	uc.secLog.LogLoginFailed(ctx, email, "invalid_credentials")
}

// Login authenticates and then requires the account to hold role, so a
// company cannot sign in through the job seeker endpoint and vice versa.
func (uc *authUsecase) Login(ctx context.Context, email, password string, role domain.Role) (*domain.Session, error) {
	account, err := uc.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	principal, err := uc.AuthorizeRole(ctx, account, role)
	if err != nil {
		return nil, err
	}

	session, err := uc.IssueSession(ctx, principal)
	if err != nil {
		return nil, err
	}

	uc.secLog.LogLoginSuccess(ctx, account.ID, account.Email)
	return session, nil
}

func (uc *authUsecase) IssueSession(ctx context.Context, principal *domain.Principal) (*domain.Session, error) {
	token, claims, err := uc.tokens.Issue(principal.ID)
	if err != nil {
		logger.Log.Error("Failed to issue access token", "account_id", principal.ID, "error", err)
		return nil, apperror.Internal(err)
	}

	return &domain.Session{
		Token:     token,
		ExpiresAt: claims.Expiry(),
		Principal: principal,
	}, nil
}

func (uc *authUsecase) ResolvePrincipal(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, apperror.Unauthorized("Authentication required")
	}

	claims, err := uc.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrMissingSecret) {
			return nil, apperror.Internal(err)
		}
		return nil, apperror.Unauthorized("Invalid or expired token")
	}

	if uc.revocations != nil {
		revoked, err := uc.revocations.IsRevoked(ctx, claims.TokenID())
		if err != nil {
			// fails open
			logger.Log.Warn("Token revocation lookup failed", "error", err)
		} else if revoked {
			return nil, apperror.Unauthorized("Token has been revoked")
		}
	}

	account, err := uc.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Account no longer exists")
		}
		return nil, err
	}
	return account, nil
}

func (uc *authUsecase) AuthorizeRole(ctx context.Context, account *domain.Account, required domain.Role) (*domain.Principal, error) {
	if account == nil {
		return nil, apperror.Unauthorized("Authentication required")
	}

	load, ok := uc.profiles[required]
	if !ok || account.Role != required {
		uc.secLog.LogForbidden(ctx, account.ID, "role "+string(account.Role)+" cannot act as "+string(required))
		return nil, apperror.Forbidden("Access restricted to " + string(required) + " accounts")
	}

	principal := &domain.Principal{Account: *account}
	if err := load(ctx, principal); err != nil {
		return nil, err
	}
	return principal, nil
}

func (uc *authUsecase) loadJobSeeker(ctx context.Context, p *domain.Principal) error {
	profile, err := uc.jobSeekers.FindByAccountID(ctx, p.ID)
	if err != nil {
		return notFoundOr(err, "Job seeker profile not found")
	}
	p.JobSeeker = profile
	return nil
}

func (uc *authUsecase) loadCompany(ctx context.Context, p *domain.Principal) error {
	profile, err := uc.companies.FindByAccountID(ctx, p.ID)
	if err != nil {
		return notFoundOr(err, "Company profile not found")
	}
	p.Company = profile
	return nil
}

func (uc *authUsecase) AssertOwner(record domain.Owned, principal *domain.Principal) error {
	err := AssertOwner(record, principal)
	if err != nil && principal != nil {
		uc.secLog.LogForbidden(context.Background(), principal.ID, "not resource owner")
	}
	return err
}

// Logout revokes token until its natural expiry. A token that no longer
// verifies is already unusable, so it is not an error.
func (uc *authUsecase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := uc.tokens.Verify(token)
	if err != nil {
		return nil
	}

	if uc.revocations != nil {
		if err := uc.revocations.Revoke(ctx, claims.TokenID(), claims.Expiry()); err != nil {
			return apperror.Internal(err)
		}
	}

	uc.secLog.LogLogout(ctx, claims.AccountID)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
