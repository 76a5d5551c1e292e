package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/lucky-ticket-api/internal/domain"
	"github.com/vietanh2810/lucky-ticket-api/internal/pkg/sessiontoken"
)

// SessionCookieName is the cookie the session token travels in.
const SessionCookieName = "session"

const (
	ctxUserIDKey   = "userID"
	ctxUsernameKey = "username"
	ctxRoleKey     = "userRole"
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// SessionRequired guards JSON API routes: a missing or bad session cookie is
// a 401, a good one puts the claims into the gin context.
func (a *Authenticator) SessionRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := a.sessionClaims(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx.Set(ctxUserIDKey, claims.UserID)
		ctx.Set(ctxUsernameKey, claims.Username)
		ctx.Set(ctxRoleKey, claims.Role)
		ctx.Next()
	}
}

// AdminRequired must run after SessionRequired.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if SessionRole(ctx) != domain.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}

		ctx.Next()
	}
}

func (a *Authenticator) sessionClaims(ctx *gin.Context) (sessiontoken.Claims, bool) {
	cookie, err := ctx.Cookie(SessionCookieName)
	if err != nil || cookie == "" {
		return sessiontoken.Claims{}, false
	}

	claims, err := sessiontoken.Parse(a.signingKey, cookie)
	if err != nil {
		return sessiontoken.Claims{}, false
	}

	return claims, true
}

func SessionUserID(ctx *gin.Context) uint {
	id, _ := ctx.Value(ctxUserIDKey).(uint)
	return id
}

func SessionUsername(ctx *gin.Context) string {
	username, _ := ctx.Value(ctxUsernameKey).(string)
	return username
}

func SessionRole(ctx *gin.Context) string {
	role, _ := ctx.Value(ctxRoleKey).(string)
	return role
}
