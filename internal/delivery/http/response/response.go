// Package response builds the JSON envelope shared by every endpoint.
package response

import (
	"net/http"
	"time"

	"userhub/internal/util"

	"github.com/labstack/echo/v4"
)

// Response unified API response structure
type Response struct {
	Success    bool        `json:"success"`
	Code       int         `json:"code"`    // HTTP status code
	Message    string      `json:"message"` // User-friendly message
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *ErrorInfo  `json:"error,omitempty"`
	Timestamp  int64       `json:"timestamp"` // Unix millis
}

// ErrorInfo detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "USER_NOT_FOUND"
	Details string `json:"details,omitempty"` // Never set for 5xx responses
}

// Pagination describes one page of a listing
type Pagination struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination computes totalPages as ceil(total/size)
func NewPagination(page, size int, total int64) *Pagination {
	return &Pagination{
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: util.TotalPages(total, size),
	}
}

func now() int64 {
	return time.Now().UnixMilli()
}

// Success successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Response{
		Success:   true,
		Code:      statusCode,
		Message:   message,
		Data:      data,
		Timestamp: now(),
	})
}

// Paged successful response carrying a pagination block
func Paged(c echo.Context, data any, pagination *Pagination, message string) error {
	return c.JSON(http.StatusOK, Response{
		Success:    true,
		Code:       http.StatusOK,
		Message:    message,
		Data:       data,
		Pagination: pagination,
		Timestamp:  now(),
	})
}

// Failure is a 200 response with success:false, used when a lookup finds nothing
func Failure(c echo.Context, errorCode string, message string) error {
	return c.JSON(http.StatusOK, Response{
		Success: false,
		Code:    http.StatusOK,
		Message: message,
		Error: &ErrorInfo{
			Code: errorCode,
		},
		Timestamp: now(),
	})
}

// Error error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	if statusCode >= http.StatusInternalServerError {
		details = ""
	}

	return c.JSON(statusCode, Response{
		Success: false,
		Code:    statusCode,
		Message: message,
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
		Timestamp: now(),
	})
}

// BadRequest 400 error
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, "")
}

// BindingError binding error response
func BindingError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, "")
}

// InternalServerError 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, "")
}
