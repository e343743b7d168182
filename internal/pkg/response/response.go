package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func Error(c *gin.Context, status int, kind, message string) {
	c.JSON(status, gin.H{"error": APIError{Kind: kind, Message: message}})
}
