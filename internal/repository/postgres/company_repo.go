package postgres

import (
	"context"

	"job-board-backend/internal/domain"
)

type companyRepo struct {
	db *Store
}

func NewCompanyRepository(db *Store) domain.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, c *domain.CompanyProfile) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO companies (account_id, company_name, description, website, location)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.conn(ctx).QueryRow(ctx, query,
		c.AccountID, c.Name, c.Description, c.Website, c.Location,
	).Scan(&c.ID)
	return mapError(err)
}

func (r *companyRepo) Update(ctx context.Context, c *domain.CompanyProfile) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE companies
		SET company_name = $2, description = $3, website = $4, location = $5
		WHERE id = $1`

	tag, err := r.db.conn(ctx).Exec(ctx, query, c.ID, c.Name, c.Description, c.Website, c.Location)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *companyRepo) FindByID(ctx context.Context, id int64) (*domain.CompanyProfile, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *companyRepo) FindByAccountID(ctx context.Context, accountID int64) (*domain.CompanyProfile, error) {
	return r.findOne(ctx, `WHERE account_id = $1`, accountID)
}

func (r *companyRepo) findOne(ctx context.Context, where string, args ...any) (*domain.CompanyProfile, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT id, account_id, company_name, description, website, location FROM companies ` + where

	var c domain.CompanyProfile
	err := r.db.conn(ctx).QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.AccountID, &c.Name, &c.Description, &c.Website, &c.Location,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}
