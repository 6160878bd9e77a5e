package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "ledger/internal/errors"
)

// APIKeyHeader carries the admin key on maintenance requests.
const APIKeyHeader = "X-API-Key"

// AdminKey returns a Gin middleware that only lets requests through when
// the X-API-Key header matches apiKey. An empty apiKey rejects everything.
// Rejections are rendered by ErrorHandler.
func AdminKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			_ = c.Error(apperrors.ErrInvalidAPIKey)
			c.Abort()
			return
		}
		c.Next()
	}
}
