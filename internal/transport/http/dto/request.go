package dto

// Password minimums are intentionally asymmetric: 8 for registration and
// reset, 6 for login. Login must keep accepting passwords created before the
// registration minimum was raised.

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,min=8,max=128"`
}

type BiodataRequest struct {
	FirstName   string `json:"first_name" validate:"required,min=1,max=100"`
	LastName    string `json:"last_name" validate:"omitempty,min=1,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,min=12,max=20"`
	Street      string `json:"street" validate:"required,min=1,max=255"`
	City        string `json:"city" validate:"required,min=1,max=100"`
	Province    string `json:"province" validate:"required,min=1,max=100"`
	Country     string `json:"country" validate:"required,min=1,max=100"`
}
