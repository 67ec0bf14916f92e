package postgres

import (
	"context"

	"job-board-backend/internal/domain"

	"github.com/lib/pq"
)

type jobApplicationRepo struct {
	db *Store
}

func NewJobApplicationRepository(db *Store) domain.JobApplicationRepository {
	return &jobApplicationRepo{db: db}
}

// Create relies on uq_job_applications_seeker_listing to reject a second
// application for the same pair.
func (r *jobApplicationRepo) Create(ctx context.Context, app *domain.JobApplication) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO job_applications (job_seeker_id, job_listing_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.conn(ctx).QueryRow(ctx, query, app.JobSeekerID, app.JobListingID).Scan(&app.ID, &app.CreatedAt)
	return mapError(err)
}

func (r *jobApplicationRepo) Find(ctx context.Context, jobSeekerID, listingID int64) (*domain.JobApplication, error) {
	return r.findOne(ctx, `WHERE job_seeker_id = $1 AND job_listing_id = $2`, jobSeekerID, listingID)
}

func (r *jobApplicationRepo) FindByID(ctx context.Context, id int64) (*domain.JobApplication, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *jobApplicationRepo) findOne(ctx context.Context, where string, args ...any) (*domain.JobApplication, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT id, job_seeker_id, job_listing_id, created_at FROM job_applications ` + where

	var app domain.JobApplication
	err := r.db.conn(ctx).QueryRow(ctx, query, args...).Scan(
		&app.ID, &app.JobSeekerID, &app.JobListingID, &app.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &app, nil
}

func (r *jobApplicationRepo) ListByJobSeeker(ctx context.Context, jobSeekerID int64) ([]domain.JobApplication, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT a.id, a.job_seeker_id, a.job_listing_id, a.created_at, ` + jobListingColumns + `
		FROM job_applications a
		JOIN job_listings l ON l.id = a.job_listing_id
		JOIN companies c ON c.id = l.company_id
		WHERE a.job_seeker_id = $1
		ORDER BY a.created_at DESC, a.id DESC`

	rows, err := r.db.conn(ctx).Query(ctx, query, jobSeekerID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	apps := []domain.JobApplication{}
	for rows.Next() {
		var app domain.JobApplication
		var l domain.JobListing
		var c domain.CompanyProfile
		err := rows.Scan(
			&app.ID, &app.JobSeekerID, &app.JobListingID, &app.CreatedAt,
			&l.ID, &l.CompanyID, &l.Title, &l.Description, pq.Array(&l.SkillsRequired),
			&l.Salary, &l.Experience, &l.StartDate, &l.Location, &l.CreatedAt,
			&c.ID, &c.AccountID, &c.Name, &c.Description, &c.Website, &c.Location,
		)
		if err != nil {
			return nil, mapError(err)
		}
		l.Company = &c
		app.JobListing = &l
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return apps, nil
}

func (r *jobApplicationRepo) ListByListing(ctx context.Context, listingID int64) ([]domain.JobApplication, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		SELECT a.id, a.job_seeker_id, a.job_listing_id, a.created_at,
		       ` + jobSeekerColumns + `
		FROM job_applications a
		JOIN job_seekers js ON js.id = a.job_seeker_id
		WHERE a.job_listing_id = $1
		ORDER BY a.created_at ASC, a.id ASC`

	rows, err := r.db.conn(ctx).Query(ctx, query, listingID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	apps := []domain.JobApplication{}
	for rows.Next() {
		var app domain.JobApplication
		var js domain.JobSeekerProfile
		err := rows.Scan(
			&app.ID, &app.JobSeekerID, &app.JobListingID, &app.CreatedAt,
			&js.ID, &js.AccountID, &js.Education, &js.Experience, pq.Array(&js.Skills), &js.ResumeKey,
		)
		if err != nil {
			return nil, mapError(err)
		}
		app.JobSeeker = &js
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return apps, nil
}
