package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hartantowib/account-service/internal/config"
	"github.com/hartantowib/account-service/internal/domain"
	"github.com/hartantowib/account-service/internal/logger"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('ADMIN', 'USER')),
		is_verified   BOOLEAN NOT NULL DEFAULT FALSE,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		account_type  TEXT NOT NULL DEFAULT 'BASIC',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS user_biodata (
		id           UUID PRIMARY KEY,
		user_id      UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		first_name   TEXT NOT NULL,
		last_name    TEXT,
		phone_number TEXT NOT NULL,
		street       TEXT NOT NULL,
		city         TEXT NOT NULL,
		province     TEXT NOT NULL,
		country      TEXT NOT NULL,
		avatar       TEXT
	)`,
}

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin creates the default admin account when SEED_ADMIN_EMAIL is set.
// Restart safe: an existing account is left untouched.
func SeedAdmin(ctx context.Context, storage Storage) {
	email := config.GetString("SEED_ADMIN_EMAIL", "")
	password := config.GetString("SEED_ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("seed: hash failed")
		return
	}

	admin := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsVerified:   true,
		IsActive:     true,
		AccountType:  domain.AccountBasic,
	}
	if err := storage.Users.Create(ctx, admin); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return
		}
		logger.Logger.Error().Err(err).Msg("seed: admin create failed")
		return
	}
	logger.Logger.Info().Str("email", email).Msg("seed: admin user created")
}
