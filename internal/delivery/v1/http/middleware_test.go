package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ezstore-dev/go-backend/internal/cfg"
	"github.com/ezstore-dev/go-backend/internal/domain"
	"github.com/ezstore-dev/go-backend/internal/usecase"
	"github.com/ezstore-dev/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (testLogger) Debugf(string, ...any)        {}
func (testLogger) Infof(string, ...any)         {}
func (testLogger) Warnf(string, ...any)         {}
func (testLogger) Errorf(error, string, ...any) {}

type stubUserUC struct {
	user      *domain.User
	sessionID string
	err       error
}

func (s *stubUserUC) Register(context.Context, *usecase.RegisterUserReq) error { return s.err }

func (s *stubUserUC) Login(context.Context, string, string) (string, error) {
	return s.sessionID, s.err
}

func (s *stubUserUC) Logout(context.Context, string) error { return s.err }

func (s *stubUserUC) Resolve(_ context.Context, sessionID string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if sessionID != s.sessionID {
		return nil, e.ErrUnauthorized
	}
	return s.user, nil
}

func (s *stubUserUC) GetAll(context.Context) ([]domain.User, error) { return nil, s.err }

func (s *stubUserUC) GetByUsername(context.Context, string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserUC) Delete(context.Context, string) error { return s.err }

func testAuthCfg() *cfg.AuthCfg {
	return &cfg.AuthCfg{CookieName: "session_id"}
}

func TestAuthenticate_NoCookie(t *testing.T) {
	auth := NewAuthMiddleware(&stubUserUC{}, testAuthCfg(), testLogger{})

	handler := auth.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not be called")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticate_InvalidSession(t *testing.T) {
	auth := NewAuthMiddleware(&stubUserUC{sessionID: "valid"}, testAuthCfg(), testLogger{})

	handler := auth.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not be called")
	}))

	request := httptest.NewRequest("GET", "/cart", nil)
	request.AddCookie(&http.Cookie{Name: "session_id", Value: "stale"})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticate_InjectsUser(t *testing.T) {
	alice := &domain.User{Username: "alice", Role: domain.RoleCustomer}
	auth := NewAuthMiddleware(&stubUserUC{user: alice, sessionID: "valid"}, testAuthCfg(), testLogger{})

	var seen *domain.User
	handler := auth.Authenticate(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = UserFromCtx(r.Context())
	}))

	request := httptest.NewRequest("GET", "/cart", nil)
	request.AddCookie(&http.Cookie{Name: "session_id", Value: "valid"})
	handler.ServeHTTP(httptest.NewRecorder(), request)

	require.NotNil(t, seen)
	assert.Equal(t, "alice", seen.Username)
}

func TestRequireRole(t *testing.T) {
	called := false
	handler := RequireRole(domain.RoleAdmin, domain.RoleManager)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	// Покупателю закрыто
	request := withUser(httptest.NewRequest("GET", "/admin/carts", nil), &domain.User{Username: "alice", Role: domain.RoleCustomer})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.False(t, called)

	// Менеджеру открыто
	request = withUser(httptest.NewRequest("GET", "/admin/carts", nil), &domain.User{Username: "m", Role: domain.RoleManager})
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.True(t, called)

	// Без пользователя в контексте — 401
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/admin/carts", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
