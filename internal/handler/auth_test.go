package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medix-app/medix-backend/internal/auth"
	"github.com/medix-app/medix-backend/internal/config"
	"github.com/medix-app/medix-backend/internal/handler"
	"github.com/medix-app/medix-backend/internal/model"
	"github.com/medix-app/medix-backend/internal/repository"
	"github.com/medix-app/medix-backend/internal/router"
	"github.com/medix-app/medix-backend/internal/service"
)

// memStore is an in-memory account directory for tests.
type memStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, users: make(map[uint64]model.User)}
}

func (m *memStore) Create(_ context.Context, u *model.User) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.users {
		if ex.Login == u.Login {
			return 0, repository.ErrDuplicateLogin
		}
	}
	id := m.nextID
	m.nextID++
	u.ID = id
	u.CreatedAt = time.Now().UTC()
	m.users[id] = *u
	return id, nil
}

func (m *memStore) GetByLogin(_ context.Context, login string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Login == login {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (m *memStore) List(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.User, 0, len(m.users))
	for id := uint64(1); id < m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memStore) SetOnline(_ context.Context, id uint64, online bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsOnline = online
	m.users[id] = u
	return nil
}

func (m *memStore) Count(_ context.Context) (total, online uint64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		total++
		if u.IsOnline {
			online++
		}
	}
	return total, online, nil
}

func newTestServer(t *testing.T) (*echo.Echo, *memStore, *auth.TokenService) {
	t.Helper()
	store := newMemStore()
	hasher := auth.NewHasher(4)
	tokens := auth.NewTokenService([]byte("test-secret"))
	events := service.NewPublisher("") // drops all events

	e := echo.New()
	router.Register(e, router.Deps{
		Auth:   handler.NewAuthHandler(store, hasher, tokens, events),
		Users:  handler.NewUserHandler(store, events),
		Admin:  handler.NewAdminHandler(store),
		Tokens: tokens,
		Cache:  config.CacheConfig{Enabled: false},
	})
	return e, store, tokens
}

func do(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterLoginAndProtectedRoutes(t *testing.T) {
	t.Parallel()

	e, store, _ := newTestServer(t)

	// Register succeeds and stores a hash, not the plaintext.
	rec := do(e, http.MethodPost, "/v1/auth/register", "",
		`{"username":"Alice","login":"alice","password":"secret1","speciality":"cardiology"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret1")

	u, err := store.GetByLogin(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.Equal(t, model.RoleUser, u.Role)

	// Duplicate login is rejected with 400.
	rec = do(e, http.MethodPost, "/v1/auth/register", "",
		`{"username":"Other","login":"alice","password":"x","speciality":"surgery"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Wrong password and unknown login look identical.
	rec = do(e, http.MethodPost, "/v1/auth/login", "", `{"login":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	wrongPass := rec.Body.String()
	rec = do(e, http.MethodPost, "/v1/auth/login", "", `{"login":"nobody","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, wrongPass, rec.Body.String())

	// Correct login issues a usable token.
	rec = do(e, http.MethodPost, "/v1/auth/login", "", `{"login":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	// Protected listing: valid token passes, no token is 401, a
	// tampered token is 403.
	rec = do(e, http.MethodGet, "/v1/users", login.Token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"login":"alice"`)
	assert.NotContains(t, rec.Body.String(), u.PasswordHash)

	rec = do(e, http.MethodGet, "/v1/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tampered := login.Token[:len(login.Token)-1]
	if strings.HasSuffix(login.Token, "A") {
		tampered += "B"
	} else {
		tampered += "A"
	}
	rec = do(e, http.MethodGet, "/v1/users", tampered, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProfileAndStatus(t *testing.T) {
	t.Parallel()

	e, store, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/v1/auth/register", "",
		`{"username":"Bob","login":"bob","password":"pw12345","speciality":"radiology"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(e, http.MethodPost, "/v1/auth/login", "", `{"login":"bob","password":"pw12345"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	// Profile by id, then an unknown id.
	rec = do(e, http.MethodGet, "/v1/users/1", login.Token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"Bob"`)

	rec = do(e, http.MethodGet, "/v1/users/999", login.Token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Status update flips the caller's own flag.
	rec = do(e, http.MethodPut, "/v1/users/status", login.Token, `{"is_online":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	u, err := store.GetByLogin(context.Background(), "bob")
	require.NoError(t, err)
	assert.True(t, u.IsOnline)

	rec = do(e, http.MethodPut, "/v1/users/status", login.Token, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Identity echo.
	rec = do(e, http.MethodGet, "/v1/me", login.Token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), fmt.Sprintf(`"user_id":%d`, u.ID))
}

func TestAdminRouteIsRoleGated(t *testing.T) {
	t.Parallel()

	e, store, tokens := newTestServer(t)

	rec := do(e, http.MethodPost, "/v1/auth/register", "",
		`{"username":"Carol","login":"carol","password":"pw","speciality":"neurology"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// A regular user is forbidden.
	userTok, err := tokens.Issue(1, model.RoleUser)
	require.NoError(t, err)
	rec = do(e, http.MethodGet, "/v1/admin/stats", userTok, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// An admin gets the totals.
	require.NoError(t, store.SetOnline(context.Background(), 1, true))
	adminTok, err := tokens.Issue(1, model.RoleAdmin)
	require.NoError(t, err)
	rec = do(e, http.MethodGet, "/v1/admin/stats", adminTok, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_users":1`)
	assert.Contains(t, rec.Body.String(), `"online_users":1`)
}
