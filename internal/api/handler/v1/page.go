package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/lucky-ticket-api/internal/api/middleware"
)

// PageHandler serves the minimal payloads behind the page gate. The real
// pages are rendered by the frontend; these endpoints exist so the gate's
// redirect rules have concrete targets.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) HandleLoginPage(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"page": "login"})
}

func (h *PageHandler) HandleDashboardPage(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"page":     "dashboard",
		"username": middleware.SessionUsername(ctx),
	})
}

func (h *PageHandler) HandleAdminPage(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"page":     "admin",
		"username": middleware.SessionUsername(ctx),
	})
}
