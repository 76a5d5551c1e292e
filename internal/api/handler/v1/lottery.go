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
	"github.com/vietanh2810/lucky-ticket-api/internal/domain"
	"github.com/vietanh2810/lucky-ticket-api/internal/service"
)

type SpinService interface {
	Spin(ctx context.Context, userID uint) (domain.SpinAllocation, bool, error)
	Current(ctx context.Context, userID uint) (domain.SpinAllocation, error)
}

type SubmissionService interface {
	Submit(ctx context.Context, userID, allocationID uint, tickets []domain.Ticket) (domain.Submission, error)
	ListSubmissions(ctx context.Context, callerRole string) ([]domain.Submission, error)
}

type SuggestionService interface {
	Suggest(ctx context.Context) domain.Suggestion
}

type LotteryHandler struct {
	spinSvc       SpinService
	submissionSvc SubmissionService
	suggestionSvc SuggestionService
}

func NewLotteryHandler(spinSvc SpinService, submissionSvc SubmissionService, suggestionSvc SuggestionService) *LotteryHandler {
	return &LotteryHandler{
		spinSvc:       spinSvc,
		submissionSvc: submissionSvc,
		suggestionSvc: suggestionSvc,
	}
}

// HandleSpin godoc
// @Summary      Spin for the one-time ticket allotment
// @Tags         lottery
// @Produce      json
// @Success      200  {object}  response.SpinResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /spin [post]
func (h *LotteryHandler) HandleSpin(ctx *gin.Context) {
	allocation, alreadySpun, err := h.spinSvc.Spin(ctx.Request.Context(), middleware.SessionUserID(ctx))
	if err != nil {
		err = fmt.Errorf("v1.HandleSpin -> h.spinSvc.Spin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.SpinResponse{
		AllocationID: allocation.ID,
		TicketCount:  allocation.TicketCount,
		AlreadySpun:  alreadySpun,
	})
}

// HandleSubmit godoc
// @Summary      Submit the final tickets for an allocation
// @Tags         lottery
// @Produce      json
// @Param        request   body      request.SubmitRequest true "request body"
// @Success      200      {object}   response.SubmitResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /submissions [post]
func (h *LotteryHandler) HandleSubmit(ctx *gin.Context) {
	req := request.SubmitRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	tickets := make([]domain.Ticket, 0, len(req.Tickets))
	for _, t := range req.Tickets {
		tickets = append(tickets, domain.Ticket(t))
	}

	submission, err := h.submissionSvc.Submit(ctx.Request.Context(), middleware.SessionUserID(ctx), req.AllocationID, tickets)
	if err != nil {
		if isSubmitRejection(err) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleSubmit -> h.submissionSvc.Submit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.SubmitResponse{
		SubmissionID: submission.ID,
	})
}

// HandleListSubmissions godoc
// @Summary      List all submissions, newest first (admin only)
// @Tags         lottery
// @Produce      json
// @Success      200  {object}  response.SubmissionsResponse
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /submissions [get]
func (h *LotteryHandler) HandleListSubmissions(ctx *gin.Context) {
	submissions, err := h.submissionSvc.ListSubmissions(ctx.Request.Context(), middleware.SessionRole(ctx))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrForbidden(err))

			return
		}

		err = fmt.Errorf("v1.HandleListSubmissions -> h.submissionSvc.ListSubmissions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	if submissions == nil {
		submissions = []domain.Submission{}
	}

	ctx.JSON(http.StatusOK, response.SubmissionsResponse{
		Submissions: submissions,
	})
}

// HandleGetSuggestion godoc
// @Summary      Get AI-suggested lucky numbers
// @Tags         lottery
// @Produce      json
// @Success      200  {object}  domain.Suggestion
// @Failure      401  {object}  response.Err
// @Router       /suggestion [get]
func (h *LotteryHandler) HandleGetSuggestion(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.suggestionSvc.Suggest(ctx.Request.Context()))
}

func isSubmitRejection(err error) bool {
	for _, rejection := range []error{
		service.ErrInvalidPayload,
		service.ErrDuplicateNumbers,
		service.ErrInvalidAllocation,
		service.ErrAllocationUsed,
		service.ErrTicketCountMismatch,
	} {
		if errors.Is(err, rejection) {
			return true
		}
	}

	return false
}
