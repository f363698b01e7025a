package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/society/backend/internal/infrastructure/auth"
	"github.com/society/backend/internal/infrastructure/config"
	"github.com/society/backend/internal/interfaces/http/dto"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret: "test-secret-key-at-least-32-characters",
		Issuer: "test-issuer",
	})
}

func newTestToken(t *testing.T, s *auth.JWTService, ttl time.Duration) string {
	t.Helper()
	token, err := s.GenerateSessionToken(auth.SessionInput{UserID: "user-1", SocietyID: "soc-1", TTL: ttl})
	require.NoError(t, err)
	return token
}

func sessionRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), mw)
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, GetSession(c))
	}
	router.GET("/api/v1/test", handler)
	router.GET("/health", handler)
	return router
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	s := newTestJWTService()
	router := sessionRouter(JWTAuthMiddleware(s))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
	req.Header.Set(AuthHeaderKey, "Bearer "+newTestToken(t, s, time.Hour))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"CurrentUserID":"user-1","CurrentSocietyID":"soc-1"}`, w.Body.String())
}

func TestJWTAuthMiddleware_Rejects(t *testing.T) {
	s := newTestJWTService()
	router := sessionRouter(JWTAuthMiddleware(s))

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", dto.ErrCodeUnauthorized},
		{"wrong scheme", "Basic abc", dto.ErrCodeTokenInvalid},
		{"garbage token", "Bearer abc", dto.ErrCodeTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.RequestID)
		})
	}
}

func TestJWTAuthMiddleware_SkipsHealthAndPreflight(t *testing.T) {
	router := sessionRouter(JWTAuthMiddleware(newTestJWTService()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	s := newTestJWTService()
	router := sessionRouter(OptionalJWTAuthMiddleware(s))

	t.Run("no token passes with empty session", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"CurrentUserID":"","CurrentSocietyID":""}`, w.Body.String())
	})

	t.Run("invalid token passes with empty session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
		req.Header.Set(AuthHeaderKey, "Bearer platform-anon-key")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"CurrentUserID":""`)
	})

	t.Run("valid token sets session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
		req.Header.Set(AuthHeaderKey, "Bearer "+newTestToken(t, s, time.Hour))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), `"CurrentSocietyID":"soc-1"`)
	})

	t.Run("disabled service is a pass-through", func(t *testing.T) {
		disabled := sessionRouter(OptionalJWTAuthMiddleware(auth.NewJWTService(config.JWTConfig{})))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/test", nil)
		req.Header.Set(AuthHeaderKey, "Bearer whatever")
		w := httptest.NewRecorder()
		disabled.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
