package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/learnhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeValidator accepts "good-<role>" tokens
type fakeValidator struct{}

func (fakeValidator) ValidateAccessToken(token string) (models.Identity, error) {
	switch token {
	case "good-student":
		return models.Identity{ID: "s1", Role: models.RoleStudent}, nil
	case "good-creator":
		return models.Identity{ID: "c1", Role: models.RoleCreator}, nil
	case "good-admin":
		return models.Identity{ID: "a1", Role: models.RoleSuperAdmin}, nil
	}
	return models.Identity{}, errors.New("invalid")
}

// identityEcho writes the resolved identity ID, or "anonymous"
var identityEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentity(r.Context())
	if !ok {
		w.Write([]byte("anonymous"))
		return
	}
	w.Write([]byte(identity.ID))
})

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	handler := AuthMiddleware(fakeValidator{})(identityEcho)

	tests := []struct {
		name           string
		setup          func(*http.Request)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "bearer header",
			setup:          func(r *http.Request) { r.Header.Set("Authorization", "Bearer good-student") },
			expectedStatus: http.StatusOK,
			expectedBody:   "s1",
		},
		{
			name:           "lowercase scheme",
			setup:          func(r *http.Request) { r.Header.Set("Authorization", "bearer good-creator") },
			expectedStatus: http.StatusOK,
			expectedBody:   "c1",
		},
		{
			name:           "cookie",
			setup:          func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: "good-admin"}) },
			expectedStatus: http.StatusOK,
			expectedBody:   "a1",
		},
		{
			name:           "missing token",
			setup:          func(r *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "authentication required",
		},
		{
			name:           "invalid token",
			setup:          func(r *http.Request) { r.Header.Set("Authorization", "Bearer bad") },
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "invalid or expired token",
		},
		{
			name:           "wrong scheme",
			setup:          func(r *http.Request) { r.Header.Set("Authorization", "Basic good-student") },
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "authentication required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)

			rec := serve(handler, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	handler := OptionalAuthMiddleware(fakeValidator{})(identityEcho)

	rec := serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-student")
	rec = serve(handler, req)
	assert.Equal(t, "s1", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec = serve(handler, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleMiddleware(t *testing.T) {
	handler := AuthMiddleware(fakeValidator{})(RoleMiddleware(models.RoleCreator)(identityEcho))

	tests := []struct {
		token          string
		expectedStatus int
	}{
		{token: "good-student", expectedStatus: http.StatusForbidden},
		{token: "good-creator", expectedStatus: http.StatusOK},
		{token: "good-admin", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)

			rec := serve(handler, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}

	t.Run("without auth", func(t *testing.T) {
		rec := serve(RoleMiddleware(models.RoleStudent)(identityEcho), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAPIKeyMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	tests := []struct {
		name           string
		configured     string
		provided       string
		expectedStatus int
	}{
		{name: "valid", configured: "key", provided: "key", expectedStatus: http.StatusNoContent},
		{name: "wrong", configured: "key", provided: "nope", expectedStatus: http.StatusUnauthorized},
		{name: "missing", configured: "key", expectedStatus: http.StatusUnauthorized},
		{name: "not configured", configured: "", provided: "", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.provided != "" {
				req.Header.Set(APIKeyHeader, tt.provided)
			}

			rec := serve(APIKeyMiddleware(tt.configured)(ok), req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-id")
	rec = serve(handler, req)
	assert.Equal(t, "client-id", seen)
	assert.Equal(t, "client-id", rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 500))
	serve(handler, req)
	assert.Len(t, seen, 36)
}

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := RecoveryMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := serve(handler, httptest.NewRequest(http.MethodGet, "/courses", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example")

		rec := serve(CORSMiddleware([]string{"https://APP.example"})(next), req)

		assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})

	t.Run("disallowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example")

		rec := serve(CORSMiddleware([]string{"https://app.example"})(next), req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://any.example")

		rec := serve(CORSMiddleware([]string{"*"})(next), req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	handler := RequestSizeLimitMiddleware(8)(next)

	rec := serve(handler, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = serve(handler, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123")))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoggerMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := RequestIDMiddleware(LoggerMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("missing"))
	})))

	serve(handler, httptest.NewRequest(http.MethodGet, "/courses/x?a=1", nil))

	entries := logs.FilterMessage("HTTP request").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, zap.WarnLevel, entries[0].Level)
		assert.Equal(t, int64(http.StatusNotFound), fields["status"])
		assert.Equal(t, int64(7), fields["bytes"])
		assert.Equal(t, "/courses/x", fields["path"])
		assert.NotEmpty(t, fields["request_id"])
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	writeError(rec, http.StatusBadRequest, `field "title" is required`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, `field "title" is required`, body["error"])
}
