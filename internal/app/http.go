package app

import (
	"github.com/gin-gonic/gin"

	"github.com/CETEN-BDE/bot-discord/internal/auth/handler"
	"github.com/CETEN-BDE/bot-discord/internal/middleware"
	"github.com/CETEN-BDE/bot-discord/internal/verify"
)

func setupHTTP(flow *verify.Controller) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	handler.NewHandler(flow).RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}
