package postgres

import (
	"context"

	"job-board-backend/internal/domain"
)

type accountRepo struct {
	db *Store
}

func NewAccountRepository(db *Store) domain.AccountRepository {
	return &accountRepo{db: db}
}

const accountColumns = `a.id, a.username, a.email, a.password_hash, r.name, a.created_at`

func (r *accountRepo) Create(ctx context.Context, account *domain.Account) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO accounts (username, email, password_hash, role_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.conn(ctx).QueryRow(ctx, query,
		account.Username,
		account.Email,
		account.PasswordHash,
		account.Role.ID(),
	).Scan(&account.ID, &account.CreatedAt)
	return mapError(err)
}

func (r *accountRepo) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.findOne(ctx, `WHERE a.id = $1`, id)
}

func (r *accountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, `WHERE a.email = $1`, email)
}

func (r *accountRepo) FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.Account, error) {
	return r.findOne(ctx, `WHERE a.email = $1 OR a.username = $2 ORDER BY a.id LIMIT 1`, email, username)
}

func (r *accountRepo) findOne(ctx context.Context, where string, args ...any) (*domain.Account, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + accountColumns + ` FROM accounts a JOIN roles r ON r.id = a.role_id ` + where

	var a domain.Account
	var role string
	err := r.db.conn(ctx).QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash, &role, &a.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	a.Role = domain.Role(role)
	return &a, nil
}
