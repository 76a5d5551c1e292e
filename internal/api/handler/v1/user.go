package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/lucky-ticket-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/lucky-ticket-api/internal/api/middleware"
	"github.com/vietanh2810/lucky-ticket-api/internal/domain"
	"github.com/vietanh2810/lucky-ticket-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

type UserHandler struct {
	svc     UserService
	spinSvc SpinService
}

func NewUserHandler(svc UserService, spinSvc SpinService) *UserHandler {
	return &UserHandler{
		svc:     svc,
		spinSvc: spinSvc,
	}
}

// HandleGetMe godoc
// @Summary      Get the logged-in user and their allocation, if any
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.MeResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /me [get]
func (h *UserHandler) HandleGetMe(ctx *gin.Context) {
	userID := middleware.SessionUserID(ctx)

	user, err := h.svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMe -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	resp := response.MeResponse{User: user}

	allocation, err := h.spinSvc.Current(ctx.Request.Context(), userID)
	if err == nil {
		resp.Allocation = &allocation
	} else if !errors.Is(err, service.ErrAllocationNotFound) {
		err = fmt.Errorf("v1.HandleGetMe -> h.spinSvc.Current -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, resp)
}
