package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hartantowib/account-service/internal/domain"
	"github.com/hartantowib/account-service/internal/service"
	"github.com/hartantowib/account-service/internal/store"
	"github.com/hartantowib/account-service/internal/token"
	"github.com/hartantowib/account-service/internal/transport/http/dto"
	"github.com/hartantowib/account-service/internal/transport/http/router"
)

/*
Auth Flow Test Cases:

1. TestAuthFlow_SignUpVerifySignIn
   - sign-up -> 201 {"data":"OK"}, verification mail captured
   - verify with the token from the mail link -> 200 {"data":{"token":...}}
   - sign-in with the registered password -> 200 {"data":{"token":...}}
   - sign-in with a wrong password -> 400 "Email or password is wrong"

2. TestAuthFlow_SignInBeforeVerify
   - sign-in between sign-up and verify -> 400 "User is not verified"

3. TestAuthFlow_DuplicateSignUp
   - second sign-up for the same address -> 400 "Email already exist"

The flow runs against the real router, auth service and token service; only
the database and the mail transport are in-memory doubles.
*/

// memUsersStore keeps users in a map with the store's contract: sql.ErrNoRows
// on a miss, ErrDuplicate on a second insert for the same email.
type memUsersStore struct {
	mu    sync.Mutex
	users map[string]*domain.User // by id
}

func newMemUsersStore() *memUsersStore {
	return &memUsersStore{users: make(map[string]*domain.User)}
}

func (m *memUsersStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memUsersStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUsersStore) CountByEmail(_ context.Context, email string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.users {
		if u.Email == email {
			n++
		}
	}
	return n, nil
}

func (m *memUsersStore) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUsersStore) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

// capturingSender records outgoing mail links instead of delivering them.
type capturingSender struct {
	mu          sync.Mutex
	verifyLinks []string
	resetLinks  []string
}

func (c *capturingSender) SendVerifyEmail(_ context.Context, _, link string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verifyLinks = append(c.verifyLinks, link)
	return nil
}

func (c *capturingSender) SendPasswordReset(_ context.Context, _, link string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLinks = append(c.resetLinks, link)
	return nil
}

const flowAppLink = "http://localhost:3000"

func newFlowServer(t *testing.T) (http.Handler, *capturingSender) {
	t.Helper()
	tokens := token.NewService("flow-test-secret")
	sender := &capturingSender{}
	auth := service.NewAuthService(store.Storage{Users: newMemUsersStore()}, tokens, sender, flowAppLink)

	h := router.New(router.Deps{
		Auth:   auth,
		Users:  &profilerStub{},
		Tokens: tokens,
		Loader: auth,
		Log:    zerolog.Nop(),
	})
	return h, sender
}

// profilerStub satisfies the router's profile dependency; the flow never
// reaches it.
type profilerStub struct{}

func (*profilerStub) CreateBiodata(context.Context, *domain.User, dto.BiodataRequest) (*dto.BiodataResponse, error) {
	return nil, domain.ErrInternal("not wired", nil)
}

func (*profilerStub) GetBiodata(context.Context, *domain.User) (*dto.BiodataResponse, error) {
	return nil, domain.ErrInternal("not wired", nil)
}

func (*profilerStub) UpdateBiodata(context.Context, *domain.User, dto.BiodataRequest) (*dto.BiodataResponse, error) {
	return nil, domain.ErrInternal("not wired", nil)
}

func (*profilerStub) UploadAvatar(context.Context, *domain.User, service.AvatarUpload) (*dto.BiodataResponse, error) {
	return nil, domain.ErrInternal("not wired", nil)
}

func flowPost(t *testing.T, h http.Handler, path string, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func signUpBody() map[string]string {
	return map[string]string{
		"email":           "flow@example.com",
		"password":        "password123",
		"confirmPassword": "password123",
	}
}

func verifyTokenFromLink(t *testing.T, sender *capturingSender) string {
	t.Helper()
	require.Len(t, sender.verifyLinks, 1)
	link := sender.verifyLinks[0]
	tok := strings.TrimPrefix(link, flowAppLink+"/api/auth/verify/")
	require.NotEqual(t, link, tok)
	require.NotEmpty(t, tok)
	return tok
}

func TestAuthFlow_SignUpVerifySignIn(t *testing.T) {
	h, sender := newFlowServer(t)

	// sign-up
	rec := flowPost(t, h, "/api/auth/sign-up", signUpBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":"OK"}`, rec.Body.String())

	// verify with the token taken from the mail link
	verifyToken := verifyTokenFromLink(t, sender)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify/"+verifyToken, nil)
	vrec := httptest.NewRecorder()
	h.ServeHTTP(vrec, req)
	require.Equal(t, http.StatusOK, vrec.Code)

	var verified struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(vrec.Body.Bytes(), &verified))
	assert.NotEmpty(t, verified.Data.Token)

	// sign-in with the registered password
	rec = flowPost(t, h, "/api/auth/sign-in", map[string]string{
		"email":    "flow@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var session struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.NotEmpty(t, session.Data.Token)

	// sign-in with a wrong password
	rec = flowPost(t, h, "/api/auth/sign-in", map[string]string{
		"email":    "flow@example.com",
		"password": "wrongpass1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":"Email or password is wrong"}`, rec.Body.String())
}

func TestAuthFlow_SignInBeforeVerify(t *testing.T) {
	h, _ := newFlowServer(t)

	rec := flowPost(t, h, "/api/auth/sign-up", signUpBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = flowPost(t, h, "/api/auth/sign-in", map[string]string{
		"email":    "flow@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":"User is not verified"}`, rec.Body.String())
}

func TestAuthFlow_DuplicateSignUp(t *testing.T) {
	h, _ := newFlowServer(t)

	rec := flowPost(t, h, "/api/auth/sign-up", signUpBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = flowPost(t, h, "/api/auth/sign-up", signUpBody())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":"Email already exist"}`, rec.Body.String())
}
