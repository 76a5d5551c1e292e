package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/lucky-ticket-api/internal/domain"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
	AdminPath     = "/admin"
)

// PageGate routes browsers between the login and protected areas:
//
//   - a protected page without a valid session redirects to the login page
//   - the admin page with a non-admin session redirects to the dashboard
//   - the login page with a valid session redirects to the caller's area
//
// It never touches storage; everything it needs is in the cookie.
func (a *Authenticator) PageGate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		isProtected := strings.HasPrefix(path, DashboardPath) || strings.HasPrefix(path, AdminPath)
		isAdminOnly := strings.HasPrefix(path, AdminPath)
		isLogin := strings.HasPrefix(path, LoginPath)

		claims, valid := a.sessionClaims(ctx)

		if isProtected {
			if !valid {
				ctx.Redirect(http.StatusFound, LoginPath)
				ctx.Abort()
				return
			}
			if isAdminOnly && claims.Role != domain.RoleAdmin {
				ctx.Redirect(http.StatusFound, DashboardPath)
				ctx.Abort()
				return
			}

			ctx.Set(ctxUserIDKey, claims.UserID)
			ctx.Set(ctxUsernameKey, claims.Username)
			ctx.Set(ctxRoleKey, claims.Role)
		}

		if isLogin && valid {
			target := DashboardPath
			if claims.Role == domain.RoleAdmin {
				target = AdminPath
			}
			ctx.Redirect(http.StatusFound, target)
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
