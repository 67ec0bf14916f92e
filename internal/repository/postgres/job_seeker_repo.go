package postgres

import (
	"context"

	"job-board-backend/internal/domain"

	"github.com/lib/pq"
)

type jobSeekerRepo struct {
	db *Store
}

func NewJobSeekerRepository(db *Store) domain.JobSeekerRepository {
	return &jobSeekerRepo{db: db}
}

const jobSeekerColumns = `js.id, js.account_id, js.education, js.experience, js.skills, js.resume_key`

func (r *jobSeekerRepo) Create(ctx context.Context, p *domain.JobSeekerProfile) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO job_seekers (account_id, education, experience, skills, resume_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.conn(ctx).QueryRow(ctx, query,
		p.AccountID, p.Education, p.Experience, pq.Array(p.Skills), p.ResumeKey,
	).Scan(&p.ID)
	return mapError(err)
}

func (r *jobSeekerRepo) Update(ctx context.Context, p *domain.JobSeekerProfile) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE job_seekers
		SET education = $2, experience = $3, skills = $4, resume_key = $5
		WHERE id = $1`

	tag, err := r.db.conn(ctx).Exec(ctx, query,
		p.ID, p.Education, p.Experience, pq.Array(p.Skills), p.ResumeKey,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobSeekerRepo) FindByID(ctx context.Context, id int64) (*domain.JobSeekerProfile, error) {
	return r.findOne(ctx, `WHERE js.id = $1`, id)
}

func (r *jobSeekerRepo) FindByAccountID(ctx context.Context, accountID int64) (*domain.JobSeekerProfile, error) {
	return r.findOne(ctx, `WHERE js.account_id = $1`, accountID)
}

func (r *jobSeekerRepo) findOne(ctx context.Context, where string, args ...any) (*domain.JobSeekerProfile, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + jobSeekerColumns + ` FROM job_seekers js ` + where

	var p domain.JobSeekerProfile
	err := r.db.conn(ctx).QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.AccountID, &p.Education, &p.Experience, pq.Array(&p.Skills), &p.ResumeKey,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}
