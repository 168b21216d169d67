package handlers

import (
	"errors"
	"io"
	"net/http"

	"chat-app/session-service/internal/domain"
	"chat-app/session-service/internal/logging"
	"chat-app/session-service/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
	log         logging.Logger
}

func NewUserHandler(userService services.UserService, log logging.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch users", "")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch user", "")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	caller, err := GetIdentity(c)
	if err != nil {
		respondError(c, h.log, err, "Failed to update user", "")
		return
	}
	// Refuse other users' resources before looking at the body.
	if err := services.CheckOwnership(caller, c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to update user", "Forbidden: Cannot update other users")
		return
	}

	fields, ok := bindUserUpdate(c)
	if !ok {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), caller, c.Param("id"), fields)
	if err != nil {
		respondError(c, h.log, err, "Failed to update user", "Forbidden: Cannot update other users")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	caller, err := GetIdentity(c)
	if err != nil {
		respondError(c, h.log, err, "Failed to delete user", "")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to delete user", "Forbidden: Cannot delete other users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// bindUserUpdate accepts an empty body as "no changes".
func bindUserUpdate(c *gin.Context) (domain.UserUpdate, bool) {
	var fields domain.UserUpdate
	if err := c.ShouldBindJSON(&fields); err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid user fields"})
		return fields, false
	}
	return fields, true
}
