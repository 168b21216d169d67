package handlers

import (
	"errors"
	"net/http"

	"chat-app/session-service/internal/domain"
	"chat-app/session-service/internal/logging"
	"github.com/gin-gonic/gin"
)

// respondError aborts the request with the stable status and message for
// err. failure is the 500 message; forbidden overrides the 403 ownership
// message. Only unexpected errors are logged, and never echoed.
func respondError(c *gin.Context, log logging.Logger, err error, failure, forbidden string) {
	status, msg := http.StatusInternalServerError, failure

	switch {
	case errors.Is(err, domain.ErrMissingToken):
		status, msg = http.StatusBadRequest, "Refresh token is required"
	case errors.Is(err, domain.ErrUnknownToken), errors.Is(err, domain.ErrInvalidToken):
		status, msg = http.StatusForbidden, "Invalid refresh token"
	case errors.Is(err, domain.ErrUnauthenticated):
		status, msg = http.StatusUnauthorized, "Access token required"
	case errors.Is(err, domain.ErrUnauthorized):
		status, msg = http.StatusForbidden, "Invalid or expired token"
	case errors.Is(err, domain.ErrForbidden):
		status, msg = http.StatusForbidden, forbidden
		if msg == "" {
			msg = "Forbidden"
		}
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, "User not found"
	default:
		if msg == "" {
			msg = "Internal server error"
		}
		log.Error(c.Request.Context(), msg, "err", err, "method", c.Request.Method, "path", c.FullPath())
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
