package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionTokenHeader carries the anonymous cart session token. The token is
// just a partition key for cart rows, not a managed resource.
const SessionTokenHeader = "X-Session-Token"

const sessionIDKey = "session_id"

// Session reads the session token from the request and issues a fresh UUID
// when the client does not have one yet. The token is always echoed back so
// the client can persist it.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionTokenHeader)
		if token == "" || len(token) > 64 {
			token = uuid.New().String()
		}

		c.Set(sessionIDKey, token)
		c.Header(SessionTokenHeader, token)

		c.Next()
	}
}

// GetSessionID extracts the cart session token from context.
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
