package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hartantowib/account-service/internal/domain"
)

const (
	// SessionTTL is the lifetime of login session tokens.
	SessionTTL = 24 * time.Hour
	// ActionTTL is the lifetime of email-verification and password-reset tokens.
	ActionTTL = 300 * time.Second
)

// Claims is the identity bundle embedded in every token. The same secret and
// algorithm serve all token purposes; the payload carries no purpose field, so
// any token that verifies is accepted wherever a bearer token is checked.
type Claims struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

type signedClaims struct {
	Claims
	jwt.RegisteredClaims
}

// Service issues and verifies signed, time-boxed identity tokens.
// Tokens are self-contained and stateless; there is no revocation list.
type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue produces an HS256-signed token embedding claims with an expiry ttl
// from now.
func (s *Service) Issue(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	sc := signedClaims{
		Claims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sc)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", domain.ErrInternal("failed to sign token", err)
	}
	return signed, nil
}

// Verify parses and validates a token. Expiry and signature failures map to
// distinct domain errors so the boundary can report them separately from
// business-rule failures.
func (s *Service) Verify(tokenStr string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &signedClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenInvalid()
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, domain.ErrTokenExpired()
		}
		return Claims{}, domain.ErrTokenInvalid()
	}

	sc, ok := parsed.Claims.(*signedClaims)
	if !ok || !parsed.Valid {
		return Claims{}, domain.ErrTokenInvalid()
	}
	return sc.Claims, nil
}
