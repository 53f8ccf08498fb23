package domain

import "time"

// Role is a named permission tier. Seed data contains exactly ADMIN and USER.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// AccountType distinguishes password accounts from externally authenticated
// ones. Only BASIC accounts can sign in with a password.
type AccountType string

const (
	AccountBasic  AccountType = "BASIC"
	AccountGoogle AccountType = "GOOGLE"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	IsVerified   bool
	IsActive     bool
	AccountType  AccountType
	CreatedAt    time.Time
}

// UserBiodata is the one-to-one profile extension of a User.
// At most one record exists per user id.
type UserBiodata struct {
	ID          string
	UserID      string
	FirstName   string
	LastName    string
	PhoneNumber string
	Street      string
	City        string
	Province    string
	Country     string
	Avatar      string
}
