package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hartantowib/account-service/internal/domain"
	"github.com/hartantowib/account-service/internal/token"
)

/*
BearerAuth Test Cases:

1. TestBearerAuth_NoHeader
   - No Authorization header -> request passes through anonymously

2. TestBearerAuth_ValidToken
   - Valid bearer token -> user loaded into the request context

3. TestBearerAuth_MalformedScheme
   - "Basic xyz" -> 401

4. TestBearerAuth_InvalidToken
   - Garbage token -> 401

5. TestBearerAuth_UserGone
   - Valid token for a deleted user -> anonymous pass-through

RequireUser Test Cases:

1. TestRequireUser_Anonymous
   - No user in context -> 401

2. TestRequireUser_Authenticated
   - User in context -> handler runs
*/

type mockLoader struct {
	getFunc func(ctx context.Context, id string) (*domain.User, error)
}

func (m *mockLoader) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound()
}

func passthroughHandler(sawUser *bool, gotUser **domain.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		*sawUser = ok
		if gotUser != nil {
			*gotUser = u
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestBearerAuth_NoHeader(t *testing.T) {
	tokens := token.NewService("test-secret")
	var sawUser bool
	mw := BearerAuth(tokens, &mockLoader{})(passthroughHandler(&sawUser, nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sawUser)
}

func TestBearerAuth_ValidToken(t *testing.T) {
	tokens := token.NewService("test-secret")
	want := &domain.User{ID: "user-1", Email: "user@example.com"}
	loader := &mockLoader{
		getFunc: func(_ context.Context, id string) (*domain.User, error) {
			require.Equal(t, "user-1", id)
			return want, nil
		},
	}

	var sawUser bool
	var gotUser *domain.User
	mw := BearerAuth(tokens, loader)(passthroughHandler(&sawUser, &gotUser))

	tok, err := tokens.Issue(token.Claims{ID: "user-1"}, token.SessionTTL)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sawUser)
	assert.Equal(t, want, gotUser)
}

func TestBearerAuth_MalformedScheme(t *testing.T) {
	tokens := token.NewService("test-secret")
	var sawUser bool
	mw := BearerAuth(tokens, &mockLoader{})(passthroughHandler(&sawUser, nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, sawUser)
}

func TestBearerAuth_InvalidToken(t *testing.T) {
	tokens := token.NewService("test-secret")
	var sawUser bool
	mw := BearerAuth(tokens, &mockLoader{})(passthroughHandler(&sawUser, nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, sawUser)
}

func TestBearerAuth_UserGone(t *testing.T) {
	tokens := token.NewService("test-secret")
	var sawUser bool
	mw := BearerAuth(tokens, &mockLoader{})(passthroughHandler(&sawUser, nil))

	tok, err := tokens.Issue(token.Claims{ID: "ghost"}, token.SessionTTL)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	// verified token, missing user: treated as anonymous, not a 401
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sawUser)
}

func TestRequireUser_Anonymous(t *testing.T) {
	called := false
	mw := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.JSONEq(t, `{"errors":"Unauthorized"}`, rec.Body.String())
}

func TestRequireUser_Authenticated(t *testing.T) {
	called := false
	mw := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), &domain.User{ID: "user-1"}))
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
