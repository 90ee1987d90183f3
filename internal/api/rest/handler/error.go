package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepmate/interview-server/internal/logger"
	"github.com/prepmate/interview-server/internal/model"
)

// respondError translates domain errors into HTTP status codes. Unknown
// errors are logged with detail and answered with a generic 500 so
// internals never leak to clients.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, model.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, model.ErrInvalidState):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, model.ErrConflict):
		status, message = http.StatusConflict, "concurrent modification, retry"
	case errors.Is(err, model.ErrRemoteRejected):
		status, message = http.StatusUnprocessableEntity, "question service rejected the request"
	case errors.Is(err, model.ErrRemoteSessionExpired):
		status, message = http.StatusGone, "remote session expired, start a new interview"
	case errors.Is(err, model.ErrRemoteUnavailable):
		status, message = http.StatusBadGateway, "question service unavailable"
	default:
		log.Error("unhandled error", "path", c.FullPath(), "error", err)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
