package v1

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/outabout/outabout-api/internal/api/handler/v1/response"
	"github.com/outabout/outabout-api/internal/api/middleware"
)

// getUserIDFromContext returns the user ID stored by the JWT middleware.
func getUserIDFromContext(ctx *gin.Context) (uint, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return 0, response.ErrUnauthorized()
	}

	userID, ok := value.(uint)
	if !ok || userID == 0 {
		return 0, response.ErrUnauthorized()
	}

	return userID, nil
}

func parseActivityID(ctx *gin.Context) (uint, *response.Err) {
	activityID, err := strconv.ParseUint(ctx.Param("activityID"), 10, 64)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid activity ID: %w", err))
	}

	return uint(activityID), nil
}
