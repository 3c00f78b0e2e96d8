package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/outabout/outabout-api/internal/api/handler/v1/request"
	"github.com/outabout/outabout-api/internal/api/handler/v1/response"
	"github.com/outabout/outabout-api/internal/domain"
	"github.com/outabout/outabout-api/internal/service"
)

type ActivityRequestService interface {
	CreateRequest(ctx context.Context, userID, activityID uint) (domain.ActivityRequest, error)
	DecideRequest(ctx context.Context, deciderID uint, id string, state domain.ActivityRequestState, reason string) (bool, error)
	GetRequests(ctx context.Context, hostID, activityID uint) ([]domain.ActivityRequest, error)
	WithdrawRequest(ctx context.Context, activityID, userID uint) error
	LeaveActivity(ctx context.Context, activityID, userID uint) (bool, error)
}

type ActivityRequestHandler struct {
	svc ActivityRequestService
}

func NewActivityRequestHandler(svc ActivityRequestService) *ActivityRequestHandler {
	return &ActivityRequestHandler{
		svc: svc,
	}
}

// HandleCreateRequest godoc
// @Summary      Request to join an activity
// @Description  Opens a pending join request for the authenticated user
// @Tags         requests
// @Produce      json
// @Param        activityID  path      int  true  "activity ID"
// @Success      201  {object}  domain.ActivityRequest
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /activities/{activityID}/requests [post]
// @Security     BearerAuth
func (h *ActivityRequestHandler) HandleCreateRequest(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	activityID, respErr := parseActivityID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	created, err := h.svc.CreateRequest(ctx.Request.Context(), userID, activityID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActivityNotFound):
			response.RenderErr(ctx, response.ErrNotFound("activity", "ID", activityID))
		case errors.Is(err, service.ErrDuplicateRequest):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrHostCannotJoin):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateRequest -> h.svc.CreateRequest -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetRequests godoc
// @Summary      List join requests for an activity
// @Description  Lists the activity's request ledger. Host only.
// @Tags         requests
// @Produce      json
// @Param        activityID  path      int  true  "activity ID"
// @Success      200  {array}   domain.ActivityRequest
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /activities/{activityID}/requests [get]
// @Security     BearerAuth
func (h *ActivityRequestHandler) HandleGetRequests(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	activityID, respErr := parseActivityID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	requests, err := h.svc.GetRequests(ctx.Request.Context(), userID, activityID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActivityNotFound):
			response.RenderErr(ctx, response.ErrNotFound("activity", "ID", activityID))
		case errors.Is(err, service.ErrNotActivityHost):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleGetRequests -> h.svc.GetRequests -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, requests)
}

// HandleDecideRequest godoc
// @Summary      Accept or reject a join request
// @Description  Accepting atomically adds the requester to the roster and bumps the participant count. Host only.
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        requestID  path      string                 true  "request ID"
// @Param        input      body      request.DecideRequest  true  "decision"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /requests/{requestID} [patch]
// @Security     BearerAuth
func (h *ActivityRequestHandler) HandleDecideRequest(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	requestID := ctx.Param("requestID")

	var input request.DecideRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	found, err := h.svc.DecideRequest(ctx.Request.Context(), userID, requestID,
		domain.ActivityRequestState(input.State), input.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequestState):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrNotActivityHost):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDecideRequest -> h.svc.DecideRequest -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	if !found {
		response.RenderErr(ctx, response.ErrNotFound("request", "ID", requestID))

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"state": input.State})
}

// HandleWithdrawRequest godoc
// @Summary      Withdraw a join request
// @Description  Removes the authenticated user's join request for the activity (cancel before decision)
// @Tags         requests
// @Produce      json
// @Param        activityID  path      int  true  "activity ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /activities/{activityID}/requests [delete]
// @Security     BearerAuth
func (h *ActivityRequestHandler) HandleWithdrawRequest(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	activityID, respErr := parseActivityID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.WithdrawRequest(ctx.Request.Context(), activityID, userID); err != nil {
		err = fmt.Errorf("v1.HandleWithdrawRequest -> h.svc.WithdrawRequest -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleLeaveActivity godoc
// @Summary      Leave an activity
// @Description  Removes the authenticated user from the roster, decrementing the participant count when they had been accepted
// @Tags         requests
// @Produce      json
// @Param        activityID  path      int  true  "activity ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /activities/{activityID}/participation [delete]
// @Security     BearerAuth
func (h *ActivityRequestHandler) HandleLeaveActivity(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	activityID, respErr := parseActivityID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	removed, err := h.svc.LeaveActivity(ctx.Request.Context(), activityID, userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleLeaveActivity -> h.svc.LeaveActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	if !removed {
		response.RenderErr(ctx, response.ErrNotFound("participation", "activityID", activityID))

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "left the activity"})
}
