package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jansunwai/middleware"
	"jansunwai/models"
	"jansunwai/utils"
)

const testSecret = "test-secret"

func protectedHandler(t *testing.T, gotActor *models.Actor) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFromContext(r.Context())
		require.True(t, ok)
		*gotActor = actor
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthResolvesActor(t *testing.T) {
	token, err := utils.GenerateJWT(42, string(models.RoleCollectorTeam), []byte(testSecret), 1)
	require.NoError(t, err)

	var actor models.Actor
	handler := middleware.NewAuthMiddleware(testSecret).RequireAuth(protectedHandler(t, &actor))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/complaints", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), actor.ID)
	assert.Equal(t, models.RoleCollectorTeam, actor.Role)
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	handler := middleware.NewAuthMiddleware(testSecret).RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/complaints", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	token, err := utils.GenerateJWT(42, string(models.RoleUser), []byte("other-secret"), 1)
	require.NoError(t, err)

	handler := middleware.NewAuthMiddleware(testSecret).RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/complaints", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}
