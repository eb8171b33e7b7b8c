package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes shared by the service and handler layers
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ServerErrorText is the only body a client sees for an internal failure
const ServerErrorText = "Server error"

// AppError is the error type returned by the service layer
type AppError struct {
	Code    string
	Message string
	Details string
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return e.Code + ": " + e.Message + " (" + e.Details + ")"
	}
	return e.Code + ": " + e.Message
}

// MessageResponse is the body of a 404 from the comment API
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ValidationErrorResponse is the body of a 400 from the comment API
type ValidationErrorResponse struct {
	Errors interface{} `json:"errors"`
}

// ErrorResponse is the body used by the auth gate
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
	Msg   string      `json:"msg"`
}

// ErrorDetail contains error details
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendJSON writes data as the raw response body, no envelope
func SendJSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendMessage writes {"msg": message}
func SendMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageResponse{Msg: message})
}

// SendValidationErrors writes 400 {"errors": errs}
func SendValidationErrors(c *gin.Context, errs interface{}) {
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: errs})
}

// SendServerError writes the plain-text 500 body
func SendServerError(c *gin.Context) {
	c.String(http.StatusInternalServerError, ServerErrorText)
}

// AbortUnauthorized writes a 401 and stops the handler chain
func AbortUnauthorized(c *gin.Context, message, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Error: ErrorDetail{
			Code:    ErrCodeUnauthorized,
			Message: message,
		},
		Msg: msg,
	})
}
