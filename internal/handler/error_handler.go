package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"comment-service/internal/response"
)

// handleServiceError maps service layer errors to the comment API's response bodies
func handleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == response.ErrCodeNotFound {
			response.SendMessage(c, http.StatusNotFound, appErr.Message)
			return
		}
		logger.Error("Service error",
			zap.String("code", appErr.Code),
			zap.String("message", appErr.Message),
			zap.String("details", appErr.Details),
			zap.String("path", c.Request.URL.Path),
		)
		response.SendServerError(c)
		return
	}

	logger.Error("Unhandled error",
		zap.String("type", fmt.Sprintf("%T", err)),
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)
	response.SendServerError(c)
}

