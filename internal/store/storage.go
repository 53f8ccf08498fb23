package store

import (
	"context"
	"database/sql"
	"time"

	// database/sql driver for postgres
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/hartantowib/account-service/internal/domain"
)

// Storage groups the persistence collaborators. The workflows depend on the
// interfaces only; the concrete stores run raw SQL over database/sql.
type Storage struct {
	Users interface {
		GetByID(ctx context.Context, id string) (*domain.User, error)
		GetByEmail(ctx context.Context, email string) (*domain.User, error)
		CountByEmail(ctx context.Context, email string) (int, error)
		Create(ctx context.Context, user *domain.User) error
		Update(ctx context.Context, user *domain.User) error
	}
	Biodata interface {
		GetByUserID(ctx context.Context, userID string) (*domain.UserBiodata, error)
		Create(ctx context.Context, bio *domain.UserBiodata) error
		Update(ctx context.Context, bio *domain.UserBiodata) error
	}
}

func NewStorage(db *sql.DB) Storage {
	return Storage{
		Users:   &UsersStore{db: db},
		Biodata: &BiodataStore{db: db},
	}
}

// Open connects to postgres via the pgx stdlib driver and verifies the
// connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(15 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
