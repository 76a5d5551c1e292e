package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/lucky-ticket-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/lucky-ticket-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/lucky-ticket-api/internal/api/middleware"
	"github.com/vietanh2810/lucky-ticket-api/internal/config"
	"github.com/vietanh2810/lucky-ticket-api/internal/domain"
	"github.com/vietanh2810/lucky-ticket-api/internal/pkg/sessiontoken"
	"github.com/vietanh2810/lucky-ticket-api/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.User, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleLogin godoc
// @Summary      Login with a username and the shared promotion password
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := sessiontoken.Generate([]byte(h.conf.SessionSigningKey), user.ID, user.Username, user.Role)
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> sessiontoken.Generate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	h.setSessionCookie(ctx, token, int(sessiontoken.Lifetime.Seconds()))

	ctx.JSON(http.StatusOK, response.LoginResponse{
		User: user,
	})
}

// HandleLogout godoc
// @Summary      Clear the session cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /auth/logout [post]
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	h.setSessionCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	secure := h.conf.Environment == "production"
	ctx.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", secure, true)
}
