package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/backoffice-api/internal/domain"
	"github.com/vfg2006/backoffice-api/internal/usecases/authenticating"
	"github.com/vfg2006/backoffice-api/pkg/apiErrors"
)

type stubAuthenticator struct {
	authenticating.Authenticator
	claims *domain.Claims
	err    error
}

func (s *stubAuthenticator) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	if token != "valid" {
		return nil, s.err
	}
	return s.claims, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	auth := &stubAuthenticator{
		claims: &domain.Claims{UserID: 1, UserRoleID: RoleOperator},
		err:    authenticating.NewAuthError(authenticating.ErrSessionEnded, apiErrors.ErrInvalidToken, ""),
	}

	tests := []struct {
		name     string
		path     string
		header   string
		expected int
	}{
		{name: "rota pública", path: "/healthcheck", expected: http.StatusNoContent},
		{name: "login é público", path: "/v1/login", expected: http.StatusNoContent},
		{name: "sem header", path: "/v1/dashboard", expected: http.StatusUnauthorized},
		{name: "sem Bearer", path: "/v1/dashboard", header: "valid", expected: http.StatusUnauthorized},
		{name: "sessão encerrada", path: "/v1/dashboard", header: "Bearer old", expected: http.StatusUnauthorized},
		{name: "token válido", path: "/v1/dashboard", header: "Bearer valid", expected: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(auth)(okHandler()).ServeHTTP(rec, req)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestAuthMiddleware_StoreFailureIsServerError(t *testing.T) {
	auth := &stubAuthenticator{err: errors.New("redis down")}

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer other")
	rec := httptest.NewRecorder()

	AuthMiddleware(auth)(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRoleMiddleware(t *testing.T) {
	withClaims := func(roleID int) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
		ctx := context.WithValue(req.Context(), ContextKeyUser, &domain.Claims{UserID: 9, UserRoleID: roleID})
		return req.WithContext(ctx)
	}

	rec := httptest.NewRecorder()
	AdminOnly()(okHandler()).ServeHTTP(rec, withClaims(RoleAdmin))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	AdminOnly()(okHandler()).ServeHTTP(rec, withClaims(RoleOperator))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	AllRoles()(okHandler()).ServeHTTP(rec, withClaims(RoleOperator))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	AllRoles()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"https://painel.loja.com"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/v1/dashboard", nil)
	req.Header.Set("Origin", "https://painel.loja.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://painel.loja.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingAndPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	handler := LogPanicMiddleware()(LoggingMiddleware()(panicking))

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { handler.ServeHTTP(rec, req) })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(CorrelationIDHeader))
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)
}
