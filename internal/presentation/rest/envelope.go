package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prestamos/loan-service/internal/presentation"
)

// envelope is the body of every /api response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func reject(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Message: message})
}

// fail maps err onto a status code and a client-safe message. Server-side
// failures are logged with the full error chain.
func fail(c *gin.Context, logger *zap.Logger, op string, err error) {
	status := presentation.HTTPStatus(err)
	if status >= 500 {
		logger.Error("request failed",
			zap.String("op", op),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	reject(c, status, presentation.PublicMessage(err))
}
