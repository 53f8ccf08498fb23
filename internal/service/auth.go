package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hartantowib/account-service/internal/domain"
	"github.com/hartantowib/account-service/internal/logger"
	"github.com/hartantowib/account-service/internal/mailer"
	"github.com/hartantowib/account-service/internal/metrics"
	"github.com/hartantowib/account-service/internal/store"
	"github.com/hartantowib/account-service/internal/token"
	"github.com/hartantowib/account-service/internal/transport/http/dto"
	"github.com/hartantowib/account-service/internal/validation"
)

const bcryptCost = 10

// AuthService orchestrates registration, email verification, login and the
// forgot/reset password flow. Each method validates first and fails fast on
// the first violated precondition; there is no partial success except the
// documented mail step during registration.
type AuthService struct {
	store   store.Storage
	tokens  *token.Service
	sender  mailer.Sender
	appLink string
}

func NewAuthService(storage store.Storage, tokens *token.Service, sender mailer.Sender, appLink string) *AuthService {
	return &AuthService{
		store:   storage,
		tokens:  tokens,
		sender:  sender,
		appLink: appLink,
	}
}

// Register creates an unverified BASIC account and mails a verification link.
// The mail dispatch happens after the user row is committed; a delivery
// failure surfaces as an error without rolling the row back, so a retried
// sign-up for the same address reports the email as taken.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) error {
	if err := validation.Validate(req); err != nil {
		return err
	}

	count, err := s.store.Users.CountByEmail(ctx, req.Email)
	if err != nil {
		return domain.ErrInternal("failed to check email", err)
	}
	if count != 0 {
		return domain.ErrEmailTaken()
	}

	if req.Password != req.ConfirmPassword {
		return domain.ErrPasswordMismatch()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return domain.ErrInternal("failed to hash password", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		IsVerified:   false,
		IsActive:     true,
		AccountType:  domain.AccountBasic,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// lost the race against a concurrent sign-up for the same email
			return domain.ErrEmailTaken()
		}
		return domain.ErrInternal("failed to create user", err)
	}

	verifyToken, err := s.tokens.Issue(claimsFor(user), token.ActionTTL)
	if err != nil {
		return err
	}

	link := s.appLink + "/api/auth/verify/" + verifyToken
	if err := s.sender.SendVerifyEmail(ctx, user.Email, link); err != nil {
		log := logger.FromContext(ctx)
		log.Error().Err(err).Str("email", user.Email).Msg("verification mail dispatch failed")
		return domain.ErrInternal("failed to send verification email", err)
	}

	metrics.RegistrationsTotal.Inc()
	return nil
}

// VerifyEmail redeems a verification token and returns a session token for
// immediate sign-in. First redemption wins; a second call for the same user
// fails even while the token is still fresh.
func (s *AuthService) VerifyEmail(ctx context.Context, req dto.VerifyEmailRequest) (*dto.TokenResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	claims, err := s.tokens.Verify(req.Token)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Users.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound()
		}
		return nil, domain.ErrInternal("failed to load user", err)
	}

	if user.IsVerified {
		return nil, domain.ErrAlreadyVerified()
	}

	user.IsVerified = true
	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, domain.ErrInternal("failed to update user", err)
	}

	sessionToken, err := s.tokens.Issue(claimsFor(user), token.SessionTTL)
	if err != nil {
		return nil, err
	}

	metrics.EmailVerificationsTotal.Inc()
	return &dto.TokenResponse{Token: sessionToken}, nil
}

// Login authenticates a verified BASIC account and returns a session token.
// An unknown email and a wrong password produce the same error so the
// response does not reveal which part was wrong.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metrics.LoginsFailed.Inc()
			return nil, domain.ErrInvalidCredentials()
		}
		return nil, domain.ErrInternal("failed to load user", err)
	}

	if !user.IsVerified {
		return nil, domain.ErrNotVerified()
	}
	if user.AccountType != domain.AccountBasic {
		return nil, domain.ErrWrongAuthMethod()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.LoginsFailed.Inc()
		return nil, domain.ErrInvalidCredentials()
	}

	sessionToken, err := s.tokens.Issue(claimsFor(user), token.SessionTTL)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.Inc()
	return &dto.TokenResponse{Token: sessionToken}, nil
}

// ForgotPassword mails a reset link. Unlike login this reports an unknown
// email as 404, revealing account existence; kept as observed behavior.
func (s *AuthService) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error {
	if err := validation.Validate(req); err != nil {
		return err
	}

	user, err := s.store.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound()
		}
		return domain.ErrInternal("failed to load user", err)
	}

	resetToken, err := s.tokens.Issue(claimsFor(user), token.ActionTTL)
	if err != nil {
		return err
	}

	link := s.appLink + "/reset-password/" + resetToken
	if err := s.sender.SendPasswordReset(ctx, user.Email, link); err != nil {
		log := logger.FromContext(ctx)
		log.Error().Err(err).Str("email", user.Email).Msg("reset mail dispatch failed")
		return domain.ErrInternal("failed to send reset email", err)
	}
	return nil
}

// ResetPassword redeems a reset token and overwrites the stored password.
// Outstanding tokens stay valid (stateless tokens, no revocation list) and
// the account keeps its verification status.
func (s *AuthService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	if err := validation.Validate(req); err != nil {
		return err
	}

	claims, err := s.tokens.Verify(req.Token)
	if err != nil {
		return err
	}

	if req.Password != req.ConfirmPassword {
		return domain.ErrPasswordMismatch()
	}

	user, err := s.store.Users.GetByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound()
		}
		return domain.ErrInternal("failed to load user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return domain.ErrInternal("failed to hash password", err)
	}

	user.PasswordHash = string(hash)
	if err := s.store.Users.Update(ctx, user); err != nil {
		return domain.ErrInternal("failed to update password", err)
	}

	metrics.PasswordResetsTotal.Inc()
	return nil
}

// GetUserByID resolves the bearer identity for the auth middleware.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound()
		}
		return nil, domain.ErrInternal("failed to load user", err)
	}
	return user, nil
}

func claimsFor(user *domain.User) token.Claims {
	return token.Claims{
		ID:    user.ID,
		Role:  string(user.Role),
		Email: user.Email,
	}
}
