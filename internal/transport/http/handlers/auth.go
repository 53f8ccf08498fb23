package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hartantowib/account-service/internal/transport/http/dto"
	"github.com/hartantowib/account-service/internal/transport/http/response"
)

// Authenticator is the auth workflow surface the HTTP layer depends on.
type Authenticator interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
}

// AuthHandler exposes the auth workflow over HTTP.
type AuthHandler struct {
	auth Authenticator
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// SignUp handles POST /api/auth/sign-up.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, err)
		return
	}
	if err := h.auth.Register(r.Context(), req); err != nil {
		response.WriteError(w, err)
		return
	}
	response.Created(w, "OK")
}

// Verify handles GET /api/auth/verify/{token}.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	req := dto.VerifyEmailRequest{Token: chi.URLParam(r, "token")}
	token, err := h.auth.VerifyEmail(r.Context(), req)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.OK(w, token)
}

// SignIn handles POST /api/auth/sign-in.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, err)
		return
	}
	token, err := h.auth.Login(r.Context(), req)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.OK(w, token)
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, err)
		return
	}
	if err := h.auth.ForgotPassword(r.Context(), req); err != nil {
		response.WriteError(w, err)
		return
	}
	response.OK(w, "OK")
}

// ResetPassword handles POST /api/auth/reset-password/{token}. The token
// travels in the path; the new password pair travels in the body.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := response.DecodeJSON(r, &body); err != nil {
		response.WriteError(w, err)
		return
	}
	req := dto.ResetPasswordRequest{
		Token:           chi.URLParam(r, "token"),
		Password:        body.Password,
		ConfirmPassword: body.ConfirmPassword,
	}
	if err := h.auth.ResetPassword(r.Context(), req); err != nil {
		response.WriteError(w, err)
		return
	}
	response.OK(w, "OK")
}
