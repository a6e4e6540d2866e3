package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/aigateway/errors"
	"github.com/kbukum/aigateway/logger"
	"github.com/kbukum/aigateway/server/middleware"
)

// SuccessResponse is the envelope used by the upload endpoints.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// RespondSuccess sends a 200 success envelope.
func RespondSuccess(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data, Message: message})
}

// RespondOK sends data as the whole 200 body.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// RespondWithError renders err as the error envelope. AppErrors carry their
// own status; an exceeded body limit becomes 413; anything else is a 500.
// Server-side failures are logged with the request ID.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			appErr = middleware.TooLarge(maxErr.Limit)
		} else {
			appErr = apperrors.Internal(err)
		}
	}

	resp := appErr.ToResponse()
	if resp.Status >= http.StatusInternalServerError {
		logger.WithComponent(componentName).WithContext(c.Request.Context()).Error("Request failed", map[string]interface{}{
			"path":  c.Request.URL.Path,
			"code":  string(resp.Code),
			"error": appErr.Error(),
		})
	}
	c.AbortWithStatusJSON(resp.Status, resp)
}
