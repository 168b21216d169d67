package handlers

import (
	"net/http"

	"chat-app/session-service/internal/logging"
	"chat-app/session-service/internal/service"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Auth           services.AuthService
	Users          services.UserService
	TestIdentities *services.TestIdentities
}

func NewRouter(svc Services, log logging.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log))
	SetupRoutes(router, svc, log)
	return router
}

func SetupRoutes(router *gin.Engine, svc Services, log logging.Logger) {
	authHandler := NewAuthHandler(svc.Auth, log)
	userHandler := NewUserHandler(svc.Users, log)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/refresh", authHandler.Refresh)

	// Protected routes
	users := router.Group("/users")
	users.Use(authHandler.AuthMiddleware())
	{
		users.GET("", userHandler.List)

		byID := users.Group("/:id")
		byID.Use(SyntheticUsers(svc.TestIdentities))
		byID.GET("", userHandler.Get)
		byID.PUT("", userHandler.Update)
		byID.DELETE("", userHandler.Delete)
	}
}
