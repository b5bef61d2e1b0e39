package response

import (
	"github.com/gin-gonic/gin"
)

// Every endpoint answers with a uniform envelope: {"success": bool, ...}.
// Success payload keys vary per endpoint (data, pagination, stats,
// submissionId); errors always carry a single "error" string.

// OK sends a success envelope merged with the given payload fields.
func OK(c *gin.Context, code int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(code, body)
}

// Error sends a failure envelope with a human-readable message.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   message,
	})
}
