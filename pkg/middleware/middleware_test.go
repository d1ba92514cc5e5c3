package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/overtime-counters-api/internal/config"
	"github.com/vfg2006/overtime-counters-api/internal/domain"
	"github.com/vfg2006/overtime-counters-api/internal/usecases/authenticating"
	"github.com/vfg2006/overtime-counters-api/pkg/apiErrors"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body apiErrors.APIError
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func tokenFor(t *testing.T, auth authenticating.Authenticator, role int) string {
	t.Helper()
	token, err := auth.GenerateToken(domain.Claims{UserID: 7, UserRoleID: role}, time.Hour)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	auth := authenticating.NewService(config.Auth{Secret: "segredo"})

	tests := []struct {
		name           string
		method         string
		path           string
		header         string
		expectedStatus int
		expectedCode   string
	}{
		{name: "rota pública", method: http.MethodGet, path: "/healthcheck", expectedStatus: http.StatusOK},
		{name: "preflight passa sem token", method: http.MethodOptions, path: "/v1/analytics", expectedStatus: http.StatusOK},
		{name: "sem cabeçalho", method: http.MethodGet, path: "/v1/analytics", expectedStatus: http.StatusUnauthorized, expectedCode: apiErrors.ErrMissingToken},
		{name: "sem Bearer", method: http.MethodGet, path: "/v1/analytics", header: "Basic abc", expectedStatus: http.StatusUnauthorized, expectedCode: apiErrors.ErrMissingToken},
		{name: "token inválido", method: http.MethodGet, path: "/v1/analytics", header: "Bearer abc", expectedStatus: http.StatusUnauthorized, expectedCode: apiErrors.ErrInvalidToken},
		{name: "token válido", method: http.MethodGet, path: "/v1/analytics", header: "Bearer " + tokenFor(t, auth, RoleClient), expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(auth)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, rec))
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	auth := authenticating.NewService(config.Auth{Secret: "segredo"})

	tests := []struct {
		name           string
		role           func(http.Handler) http.Handler
		userRole       int
		expectedStatus int
	}{
		{name: "supervisor importa", role: AdminOrSupervisor(), userRole: RoleSupervisor, expectedStatus: http.StatusOK},
		{name: "cliente não importa", role: AdminOrSupervisor(), userRole: RoleClient, expectedStatus: http.StatusForbidden},
		{name: "cliente lê indicadores", role: AllRoles(), userRole: RoleClient, expectedStatus: http.StatusOK},
		{name: "papel desconhecido", role: AllRoles(), userRole: 99, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/imports", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, auth, tt.userRole))
			rec := httptest.NewRecorder()

			AuthMiddleware(auth)(tt.role(okHandler())).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}

	t.Run("sem usuário no contexto", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AllRoles()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/periods", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidToken, errorCode(t, rec))
	})
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler())

	t.Run("origem permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/periods", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("origem desconhecida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/periods", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/imports", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestLoggingMiddleware(t *testing.T) {
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	t.Run("propaga o X-Request-ID recebido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/periods", nil)
		req.Header.Set("X-Request-ID", "req-123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("gera um id quando ausente", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/periods", nil))

		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("falha inesperada")
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/analytics", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apiErrors.ErrInternalServer, errorCode(t, rec))
}
