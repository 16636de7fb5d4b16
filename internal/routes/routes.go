package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grantboard/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, foundationHandler *handlers.FoundationHandler) {
	api := router.Group("/api/v1")

	foundationRoutes := NewFoundationRoutes(foundationHandler)
	foundationRoutes.RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
