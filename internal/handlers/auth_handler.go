package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"chat-app/session-service/internal/domain"
	"chat-app/session-service/internal/logging"
	"chat-app/session-service/internal/service"
	"github.com/gin-gonic/gin"
)

const accessDetailsKey = "access_details"

type AuthHandler struct {
	authService services.AuthService
	log         logging.Logger
}

func NewAuthHandler(authService services.AuthService, log logging.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	// An unreadable body counts as a missing token.
	_ = c.ShouldBindJSON(&req)

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, h.log, err, "Failed to refresh token", "")
		return
	}

	c.JSON(http.StatusOK, result)
}

// AuthMiddleware verifies the bearer access token and stores the caller's
// access details on the context for downstream handlers.
func (h *AuthHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			respondError(c, h.log, domain.ErrUnauthenticated, "", "")
			return
		}

		accessDetails, err := h.authService.VerifyAccessToken(tokenString)
		if err != nil {
			h.log.Debug(c.Request.Context(), "access token rejected", "err", err)
			respondError(c, h.log, err, "", "")
			return
		}

		c.Set(accessDetailsKey, accessDetails)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, tokenString, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tokenString = strings.TrimSpace(tokenString)
	return tokenString, tokenString != ""
}

// GetIdentity returns the caller authenticated by AuthMiddleware.
func GetIdentity(c *gin.Context) (domain.Identity, error) {
	accessDetails, exists := c.Get(accessDetailsKey)
	if !exists {
		return domain.Identity{}, fmt.Errorf("access details not found in context")
	}

	accessDetailsPtr, ok := accessDetails.(*domain.AccessDetails)
	if !ok {
		return domain.Identity{}, fmt.Errorf("invalid access details format")
	}

	return accessDetailsPtr.Identity, nil
}
