package postgres

import (
	"context"
	"fmt"
	"strings"

	"job-board-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

type jobListingRepo struct {
	db *Store
}

func NewJobListingRepository(db *Store) domain.JobListingRepository {
	return &jobListingRepo{db: db}
}

const jobListingColumns = `
	l.id, l.company_id, l.title, l.description, l.skills_required,
	l.salary, l.experience, l.start_date, l.location, l.created_at,
	c.id, c.account_id, c.company_name, c.description, c.website, c.location`

const jobListingSelect = `SELECT ` + jobListingColumns + `
	FROM job_listings l
	JOIN companies c ON c.id = l.company_id`

func (r *jobListingRepo) Create(ctx context.Context, l *domain.JobListing) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO job_listings (company_id, title, description, skills_required, salary, experience, start_date, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.conn(ctx).QueryRow(ctx, query,
		l.CompanyID,
		l.Title,
		l.Description,
		pq.Array(l.SkillsRequired),
		l.Salary,
		l.Experience,
		l.StartDate,
		l.Location,
	).Scan(&l.ID, &l.CreatedAt)
	return mapError(err)
}

func (r *jobListingRepo) Update(ctx context.Context, l *domain.JobListing) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE job_listings
		SET title = $2, description = $3, skills_required = $4, salary = $5,
		    experience = $6, start_date = $7, location = $8
		WHERE id = $1`

	tag, err := r.db.conn(ctx).Exec(ctx, query,
		l.ID,
		l.Title,
		l.Description,
		pq.Array(l.SkillsRequired),
		l.Salary,
		l.Experience,
		l.StartDate,
		l.Location,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobListingRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.conn(ctx).Exec(ctx, `DELETE FROM job_listings WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobListingRepo) FindByID(ctx context.Context, id int64) (*domain.JobListing, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	l, err := scanJobListing(r.db.conn(ctx).QueryRow(ctx, jobListingSelect+` WHERE l.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return l, nil
}

// List returns listings newest first. Filters are case-insensitive substring
// matches, except Skill which must equal one of skills_required ignoring case.
func (r *jobListingRepo) List(ctx context.Context, filter domain.JobListingFilter) ([]domain.JobListing, error) {
	conds, args := listingFilterSQL(filter)

	query := jobListingSelect
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY l.created_at DESC, l.id DESC`

	return r.list(ctx, query, args...)
}

// listingFilterSQL turns the search filter into WHERE conditions. Every field
// is a case-insensitive substring match; for skill, against any element.
func listingFilterSQL(filter domain.JobListingFilter) ([]string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Title != "" {
		args = append(args, likePattern(filter.Title))
		conds = append(conds, fmt.Sprintf("l.title ILIKE $%d", len(args)))
	}
	if filter.Location != "" {
		args = append(args, likePattern(filter.Location))
		conds = append(conds, fmt.Sprintf("l.location ILIKE $%d", len(args)))
	}
	if filter.Skill != "" {
		args = append(args, likePattern(filter.Skill))
		conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(l.skills_required) s WHERE s ILIKE $%d)", len(args)))
	}
	return conds, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern matches s literally anywhere in the column.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *jobListingRepo) ListByCompany(ctx context.Context, companyID int64) ([]domain.JobListing, error) {
	return r.list(ctx, jobListingSelect+` WHERE l.company_id = $1 ORDER BY l.created_at DESC, l.id DESC`, companyID)
}

func (r *jobListingRepo) list(ctx context.Context, query string, args ...any) ([]domain.JobListing, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	listings := []domain.JobListing{}
	for rows.Next() {
		l, err := scanJobListing(rows)
		if err != nil {
			return nil, mapError(err)
		}
		listings = append(listings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return listings, nil
}

func scanJobListing(row pgx.Row) (*domain.JobListing, error) {
	var l domain.JobListing
	var c domain.CompanyProfile
	err := row.Scan(
		&l.ID, &l.CompanyID, &l.Title, &l.Description, pq.Array(&l.SkillsRequired),
		&l.Salary, &l.Experience, &l.StartDate, &l.Location, &l.CreatedAt,
		&c.ID, &c.AccountID, &c.Name, &c.Description, &c.Website, &c.Location,
	)
	if err != nil {
		return nil, err
	}
	l.Company = &c
	return &l, nil
}
