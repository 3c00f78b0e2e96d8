package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/outabout/outabout-api/internal/api/handler/v1/request"
	"github.com/outabout/outabout-api/internal/api/handler/v1/response"
	"github.com/outabout/outabout-api/internal/domain"
	"github.com/outabout/outabout-api/internal/service"
)

type ActivityService interface {
	CreateActivity(ctx context.Context, activity domain.Activity, hostID uint) (domain.Activity, error)
	GetActivity(ctx context.Context, id, callerID uint) (domain.Activity, error)
	GetActivities(ctx context.Context, callerID uint) ([]domain.Activity, error)
	GetParticipants(ctx context.Context, activityID, callerID uint) ([]domain.Participation, error)
}

type ActivityHandler struct {
	svc ActivityService
}

func NewActivityHandler(svc ActivityService) *ActivityHandler {
	return &ActivityHandler{
		svc: svc,
	}
}

// HandleGetActivities godoc
// @Summary      List activities
// @Description  Lists all activities with an is_participant flag for the caller
// @Tags         activities
// @Produce      json
// @Success      200  {array}   domain.Activity
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /activities [get]
// @Security     BearerAuth
func (h *ActivityHandler) HandleGetActivities(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	activities, err := h.svc.GetActivities(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetActivities -> h.svc.GetActivities -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, activities)
}

// HandleCreateActivity godoc
// @Summary      Create a new activity
// @Description  Creates an activity hosted by the authenticated user
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateActivityRequest  true  "activity details"
// @Success      201    {object}  domain.Activity
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /activities [post]
// @Security     BearerAuth
func (h *ActivityHandler) HandleCreateActivity(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var input request.CreateActivityRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	parsedDate, err := time.Parse("02/01/2006", input.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date format: %v", err)))

		return
	}

	activity := domain.Activity{
		Name:        input.Name,
		Date:        parsedDate,
		Location:    input.Location,
		Description: input.Description,
	}

	created, err := h.svc.CreateActivity(ctx.Request.Context(), activity, userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateActivity -> h.svc.CreateActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetActivity godoc
// @Summary      Get an activity by ID
// @Tags         activities
// @Produce      json
// @Param        activityID  path      int  true  "activity ID"
// @Success      200  {object}  domain.Activity
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /activities/{activityID} [get]
// @Security     BearerAuth
func (h *ActivityHandler) HandleGetActivity(ctx *gin.Context) {
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

	activity, err := h.svc.GetActivity(ctx.Request.Context(), activityID, userID)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("activity", "ID", activityID))

			return
		}

		err = fmt.Errorf("v1.HandleGetActivity -> h.svc.GetActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, activity)
}

// HandleGetParticipants godoc
// @Summary      List participants of an activity
// @Description  Lists confirmed participants. Only participants may view the roster.
// @Tags         activities
// @Produce      json
// @Param        activityID  path      int  true  "activity ID"
// @Success      200  {array}   domain.Participation
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /activities/{activityID}/participants [get]
// @Security     BearerAuth
func (h *ActivityHandler) HandleGetParticipants(ctx *gin.Context) {
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

	participants, err := h.svc.GetParticipants(ctx.Request.Context(), activityID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotParticipant) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleGetParticipants -> h.svc.GetParticipants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, participants)
}
