package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hartantowib/account-service/internal/domain"
)

// ErrDuplicate is returned when an insert violates a unique constraint.
// The unique email index is the only concurrency control around registration;
// a racing duplicate sign-up is rejected here rather than by a lock.
var ErrDuplicate = errors.New("store: duplicate key")

type UsersStore struct {
	db *sql.DB
}

const userColumns = `id, email, password_hash, role, is_verified, is_active, account_type, created_at`

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsVerified,
		&user.IsActive,
		&user.AccountType,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UsersStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *UsersStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *UsersStore) CountByEmail(ctx context.Context, email string) (int, error) {
	query := `SELECT COUNT(*) FROM users WHERE email = $1`
	var n int
	if err := s.db.QueryRowContext(ctx, query, email).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *UsersStore) Create(ctx context.Context, user *domain.User) error {
	query := `
	INSERT INTO users (id, email, password_hash, role, is_verified, is_active, account_type)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsVerified,
		user.IsActive,
		user.AccountType,
	).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *UsersStore) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET email = $1, password_hash = $2, role = $3, is_verified = $4, is_active = $5, account_type = $6 WHERE id = $7`
	_, err := s.db.ExecContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsVerified,
		user.IsActive,
		user.AccountType,
		user.ID,
	)
	return err
}
