package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"chat-app/session-service/internal/domain"
	"chat-app/session-service/internal/logging"
	"chat-app/session-service/internal/service"
	"github.com/gin-gonic/gin"
)

// SyntheticUsers answers requests for synthetic test identities without
// touching the user store. Must be mounted on a route with an :id param.
func SyntheticUsers(ids *services.TestIdentities) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !ids.Allows(id) {
			c.Next()
			return
		}

		now := time.Now().UTC()
		email := fmt.Sprintf("test_%d@example.com", now.UnixMilli())

		switch c.Request.Method {
		case http.MethodGet:
			c.AbortWithStatusJSON(http.StatusOK, gin.H{
				"id":         id,
				"username":   "Test User",
				"email":      email,
				"age":        "18_24",
				"created_at": now,
			})
		case http.MethodPut:
			// Synthetic updates echo whatever was sent, valid or not.
			var fields domain.UserUpdate
			_ = json.NewDecoder(c.Request.Body).Decode(&fields)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{
				"id":         id,
				"username":   valueOr(fields.Username, "Updated Test User"),
				"email":      valueOr(fields.Email, email),
				"age":        valueOr(fields.Age, "18_24"),
				"updated_at": now,
			})
		case http.MethodDelete:
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
		default:
			c.Next()
		}
	}
}

func valueOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}

func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
