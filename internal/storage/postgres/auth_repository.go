package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
)

type AuthRepository struct {
	pool *pgxpool.Pool
}

func NewAuthRepository(pool *pgxpool.Pool) *AuthRepository {
	return &AuthRepository{pool: pool}
}

func (r *AuthRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *AuthRepository) CreateAccount(ctx context.Context, account domain.Account) error {
	const stmt = `
INSERT INTO accounts (id, email, password_hash, created_at)
VALUES ($1, $2, $3, $4)`
	_, err := r.exec(ctx, stmt, account.ID, account.Email, account.PasswordHash, account.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *AuthRepository) CreateProfile(ctx context.Context, profile domain.Profile) error {
	const stmt = `
INSERT INTO profiles (id, full_name, email, role)
VALUES ($1, $2, $3, $4)`
	_, err := r.exec(ctx, stmt, profile.ID, profile.FullName, profile.Email, profile.Role)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// GetAccountByEmail returns nil when no account matches.
func (r *AuthRepository) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
SELECT id, email, password_hash, created_at
FROM accounts
WHERE lower(email) = lower($1)`
	var a domain.Account
	err := r.queryRow(ctx, query, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return &a, nil
}

// GetProfile returns nil when the account has no profile row; role derivation
// treats that as a student.
func (r *AuthRepository) GetProfile(ctx context.Context, accountID string) (*domain.Profile, error) {
	const query = `SELECT id, full_name, email, role FROM profiles WHERE id = $1`
	var p domain.Profile
	err := r.queryRow(ctx, query, accountID).Scan(&p.ID, &p.FullName, &p.Email, &p.Role)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (r *AuthRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *AuthRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
