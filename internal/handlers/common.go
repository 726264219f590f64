package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"amazecare-server/internal/middleware"
	"amazecare-server/internal/services"
	"amazecare-server/internal/utils"
)

// respondServiceError maps a service error kind onto the response envelope.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalid):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}

// parseUintParam parses a numeric path parameter, sending a 400 on failure.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(value), true
}

// callerID pulls the authenticated user id from the request context,
// sending a 401 when it is missing.
func callerID(c *gin.Context) (uint, bool) {
	id, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return 0, false
	}
	return id, true
}
