package domain

import (
	"errors"
	"fmt"
)

// ErrKind maps domain errors to HTTP status codes at a single dispatch point.
type ErrKind string

const (
	KindBadRequest  ErrKind = "bad_request"  // 400
	KindAuth        ErrKind = "auth"         // 401
	KindForbidden   ErrKind = "forbidden"    // 403
	KindNotFound    ErrKind = "not_found"    // 404
	KindRateLimited ErrKind = "rate_limited" // 429
	KindInternal    ErrKind = "internal"     // 500
)

// FieldError describes a single field-level validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a structured domain error.
// - Kind: category for HTTP status mapping
// - Code: stable machine code
// - Message: safe summary for clients
// - Fields: set only for validation errors; carries every violation, not just the first
// - Cause: wrapped internal error for logging
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Fields  []FieldError
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

// Is reports whether err is a domain error carrying the given code.
func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation (400)
// ----------------------

func ErrValidation(fields []FieldError) *Error {
	return &Error{
		Kind:    KindBadRequest,
		Code:    "validation_failed",
		Message: "request validation failed",
		Fields:  fields,
	}
}

func ErrInvalidBody(cause error) *Error {
	return Wrap(KindBadRequest, "invalid_body", "invalid request body", cause)
}

// ----------------------
// Auth workflow (400/404)
// ----------------------

func ErrEmailTaken() *Error {
	return New(KindBadRequest, "email_taken", "Email already exist")
}

func ErrPasswordMismatch() *Error {
	return New(KindBadRequest, "password_mismatch", "Password and confirm password is not same")
}

// ErrInvalidCredentials covers both an unknown email and a wrong password so
// the response does not reveal which part failed.
func ErrInvalidCredentials() *Error {
	return New(KindBadRequest, "invalid_credentials", "Email or password is wrong")
}

func ErrNotVerified() *Error {
	return New(KindBadRequest, "not_verified", "User is not verified")
}

func ErrAlreadyVerified() *Error {
	return New(KindBadRequest, "already_verified", "User already verified")
}

func ErrWrongAuthMethod() *Error {
	return New(KindBadRequest, "wrong_auth_method", "Account is registered with another method")
}

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "User not found")
}

// ----------------------
// Tokens (401)
// ----------------------

func ErrTokenInvalid() *Error {
	return New(KindAuth, "token_invalid", "Invalid token")
}

func ErrTokenExpired() *Error {
	return New(KindAuth, "token_expired", "Token expired")
}

func ErrUnauthorized() *Error {
	return New(KindAuth, "unauthorized", "Unauthorized")
}

// ----------------------
// Throttling (429)
// ----------------------

func ErrRateLimited() *Error {
	return New(KindRateLimited, "rate_limited", "Too many requests")
}

// ----------------------
// Profile workflow
// ----------------------

func ErrBiodataExists() *Error {
	return New(KindBadRequest, "biodata_exists", "User bio already exists")
}

func ErrBiodataNotFound() *Error {
	return New(KindNotFound, "biodata_not_found", "User bio not found")
}

func ErrAvatarTooLarge(limit int64) *Error {
	return New(KindBadRequest, "avatar_too_large", fmt.Sprintf("Avatar must be at most %d bytes", limit))
}

func ErrAvatarBadType() *Error {
	return New(KindBadRequest, "avatar_bad_type", "Avatar must be a png, jpeg or jpg image")
}

// ----------------------
// Infrastructure (500)
// ----------------------

func ErrInternal(msg string, cause error) *Error {
	return Wrap(KindInternal, "internal_error", msg, cause)
}
