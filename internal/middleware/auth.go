package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"comment-service/internal/response"
	"comment-service/internal/util"
)

// HeaderAuthToken is the legacy token header, read when Authorization is absent
const HeaderAuthToken = "x-auth-token"

const validateTimeout = 5 * time.Second

// TokenValidator interface for auth-service token validation
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error)
}

// extractToken reads "Authorization: Bearer <t>", falling back to x-auth-token
func extractToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return "", false
		}
		return strings.TrimSpace(parts[1]), true
	}
	token := strings.TrimSpace(c.GetHeader(HeaderAuthToken))
	return token, token != ""
}

// AuthWithValidator returns a middleware that validates tokens via the auth service
// so revoked tokens are rejected
func AuthWithValidator(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			response.AbortUnauthorized(c, "Authorization token is required", "No token, authorization denied")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), validateTimeout)
		defer cancel()

		userID, err := validator.ValidateToken(ctx, tokenString)
		if err != nil || userID == uuid.Nil {
			response.AbortUnauthorized(c, "Invalid or expired token", "Token is not valid")
			return
		}

		util.SetAuthData(c, util.AuthData{UserID: userID, Token: tokenString})
		c.Next()
	}
}

// Auth returns a middleware that validates HS256 tokens locally. Used when no
// auth service is configured.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			response.AbortUnauthorized(c, "Authorization token is required", "No token, authorization denied")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			response.AbortUnauthorized(c, "Invalid or expired token", "Token is not valid")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.AbortUnauthorized(c, "Invalid token claims", "Token is not valid")
			return
		}

		userID, err := uuid.Parse(userIDFromClaims(claims))
		if err != nil {
			response.AbortUnauthorized(c, "User ID not found in token", "Token is not valid")
			return
		}

		util.SetAuthData(c, util.AuthData{UserID: userID, Token: tokenString})
		c.Next()
	}
}

// userIDFromClaims supports "user_id", "sub", "uid" and a nested {"user":{"id":...}}
func userIDFromClaims(claims jwt.MapClaims) string {
	for _, key := range []string{"user_id", "sub", "uid"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	if user, ok := claims["user"].(map[string]interface{}); ok {
		if id, ok := user["id"].(string); ok {
			return id
		}
	}
	return ""
}
