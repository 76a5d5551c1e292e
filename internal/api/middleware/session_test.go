package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/lucky-ticket-api/internal/domain"
	"github.com/vietanh2810/lucky-ticket-api/internal/pkg/sessiontoken"
)

const testSigningKey = "test-signing-key"

func sessionCookie(t *testing.T, userID uint, username, role string) *http.Cookie {
	t.Helper()

	token, err := sessiontoken.Generate([]byte(testSigningKey), userID, username, role)
	require.NoError(t, err)

	return &http.Cookie{Name: SessionCookieName, Value: token}
}

func newAPIRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authenticator := NewAuthenticator(testSigningKey)
	router.GET("/whoami", authenticator.SessionRequired(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"user_id":  SessionUserID(ctx),
			"username": SessionUsername(ctx),
			"role":     SessionRole(ctx),
		})
	})
	router.GET("/admin-only", authenticator.SessionRequired(), AdminRequired(), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	return router
}

func TestSessionRequired_NoCookie(t *testing.T) {
	router := newAPIRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionRequired_BadCookie(t *testing.T) {
	router := newAPIRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tampered"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionRequired_ValidCookie(t *testing.T) {
	router := newAPIRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(sessionCookie(t, 42, "alice", domain.RoleUser))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id": 42, "username": "alice", "role": "USER"}`, w.Body.String())
}

func TestAdminRequired(t *testing.T) {
	router := newAPIRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(sessionCookie(t, 42, "alice", domain.RoleUser))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(sessionCookie(t, 1, "admin", domain.RoleAdmin))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
