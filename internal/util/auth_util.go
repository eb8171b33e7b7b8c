package util

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the auth middleware
const (
	ContextKeyUserID = "user_id"
	ContextKeyToken  = "jwtToken"
)

// AuthData holds the caller identity extracted by the auth middleware
type AuthData struct {
	UserID uuid.UUID
	Token  string
}

// ExtractAuthData reads the user id and raw token from the gin context.
// ok is false when the middleware did not run or stored an unexpected type.
func ExtractAuthData(c *gin.Context) (AuthData, bool) {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		return AuthData{}, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return AuthData{}, false
	}

	token, _ := c.Get(ContextKeyToken)
	tokenStr, _ := token.(string)

	return AuthData{UserID: userID, Token: tokenStr}, true
}

// SetAuthData stores the caller identity on the gin context
func SetAuthData(c *gin.Context, data AuthData) {
	c.Set(ContextKeyUserID, data.UserID)
	c.Set(ContextKeyToken, data.Token)
}
