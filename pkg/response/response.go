package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Error     string    `json:"error,omitempty"` // taxonomy label on failures
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func SendAPIResponse(c *gin.Context, code int, success bool, message string, data any) {
	c.JSON(code, APIResponse{
		Success:   success,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// SendAPIError reports a failed operation with its error-taxonomy label
// (authentication, authorization, not_found, validation, invalid_state,
// internal).
func SendAPIError(c *gin.Context, code int, label, message string) {
	c.JSON(code, APIResponse{
		Success:   false,
		Message:   message,
		Error:     label,
		Timestamp: time.Now(),
	})
}
