package usecase

import (
	"context"
	"strings"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/security"
)

type companyUsecase struct {
	tx        domain.TxManager
	accounts  domain.AccountRepository
	companies domain.CompanyRepository
	auth      domain.AuthUsecase
	secLog    *security.SecurityLogger
}

func NewCompanyUsecase(
	tx domain.TxManager,
	accounts domain.AccountRepository,
	companies domain.CompanyRepository,
	authUC domain.AuthUsecase,
	secLog *security.SecurityLogger,
) domain.CompanyUsecase {
	if secLog == nil {
		secLog = security.DefaultLogger()
	}
	return &companyUsecase{
		tx:        tx,
		accounts:  accounts,
		companies: companies,
		auth:      authUC,
		secLog:    secLog,
	}
}

func (uc *companyUsecase) Register(ctx context.Context, in domain.CompanyRegistration) (*domain.Session, error) {
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)

	if err := ensureAccountAvailable(ctx, uc.accounts, email, username); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.BadRequest("Password cannot be used")
	}

	account := &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleCompany,
	}
	company := &domain.CompanyProfile{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Website:     in.Website,
		Location:    in.Location,
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.accounts.Create(ctx, account); err != nil {
			return err
		}
		company.AccountID = account.ID
		return uc.companies.Create(ctx, company)
	})
	if err != nil {
		return nil, conflictOr(err, "User already exists")
	}

	uc.secLog.LogRegistered(ctx, account.ID, string(account.Role))
	return uc.auth.IssueSession(ctx, &domain.Principal{Account: *account, Company: company})
}

func (uc *companyUsecase) Update(ctx context.Context, principal *domain.Principal, id int64, in domain.CompanyUpdate) (*domain.CompanyProfile, error) {
	company, err := uc.companies.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Company not found")
	}

	if err := uc.auth.AssertOwner(company, principal); err != nil {
		return nil, err
	}

	updated := *company
	if in.Name != nil {
		updated.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		updated.Description = *in.Description
	}
	if in.Website != nil {
		updated.Website = *in.Website
	}
	if in.Location != nil {
		updated.Location = *in.Location
	}

	if err := uc.companies.Update(ctx, &updated); err != nil {
		return nil, notFoundOr(err, "Company not found")
	}
	return &updated, nil
}
