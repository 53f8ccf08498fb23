package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hartantowib/account-service/internal/domain"
)

type BiodataStore struct {
	db *sql.DB
}

const biodataColumns = `id, user_id, first_name, last_name, phone_number, street, city, province, country, avatar`

func (s *BiodataStore) GetByUserID(ctx context.Context, userID string) (*domain.UserBiodata, error) {
	query := `SELECT ` + biodataColumns + ` FROM user_biodata WHERE user_id = $1`
	var bio domain.UserBiodata
	var lastName, avatar sql.NullString
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&bio.ID,
		&bio.UserID,
		&bio.FirstName,
		&lastName,
		&bio.PhoneNumber,
		&bio.Street,
		&bio.City,
		&bio.Province,
		&bio.Country,
		&avatar,
	)
	if err != nil {
		return nil, err
	}
	bio.LastName = lastName.String
	bio.Avatar = avatar.String
	return &bio, nil
}

func (s *BiodataStore) Create(ctx context.Context, bio *domain.UserBiodata) error {
	query := `
	INSERT INTO user_biodata (id, user_id, first_name, last_name, phone_number, street, city, province, country, avatar)
	VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, NULLIF($10, ''))
	`
	_, err := s.db.ExecContext(ctx, query,
		bio.ID,
		bio.UserID,
		bio.FirstName,
		bio.LastName,
		bio.PhoneNumber,
		bio.Street,
		bio.City,
		bio.Province,
		bio.Country,
		bio.Avatar,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *BiodataStore) Update(ctx context.Context, bio *domain.UserBiodata) error {
	query := `
	UPDATE user_biodata
	SET first_name = $1, last_name = NULLIF($2, ''), phone_number = $3, street = $4,
	    city = $5, province = $6, country = $7, avatar = NULLIF($8, '')
	WHERE user_id = $9
	`
	_, err := s.db.ExecContext(ctx, query,
		bio.FirstName,
		bio.LastName,
		bio.PhoneNumber,
		bio.Street,
		bio.City,
		bio.Province,
		bio.Country,
		bio.Avatar,
		bio.UserID,
	)
	return err
}
