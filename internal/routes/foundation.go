package routes

import (
	"grantboard/internal/handlers"

	"github.com/gin-gonic/gin"
)

type FoundationRoutes struct {
	handler *handlers.FoundationHandler
}

func NewFoundationRoutes(handler *handlers.FoundationHandler) *FoundationRoutes {
	return &FoundationRoutes{handler: handler}
}

func (r *FoundationRoutes) RegisterRoutes(router *gin.RouterGroup) {
	foundations := router.Group("/foundations")
	{
		foundations.GET("", r.handler.ListFoundations)
		foundations.GET("/stats", r.handler.GetStats)
		foundations.GET("/deadlines", r.handler.GetUpcomingDeadlines)
		foundations.GET("/:id", r.handler.GetFoundation)
		foundations.PATCH("/:id", r.handler.UpdateFoundation)
		foundations.POST("/:id/outreach", r.handler.GenerateOutreach)
	}
}
