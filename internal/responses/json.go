package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func JSON(c *gin.Context, statusCode int, payload any) {
	c.JSON(statusCode, payload)
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Not found")
}
