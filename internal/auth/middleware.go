package auth

import (
	"github.com/gin-gonic/gin"
)

// FailureFunc writes the response for a rejected request.
type FailureFunc func(c *gin.Context, err error)

// RequireAuth rejects requests without a valid bearer token and stores the
// user of valid ones in the request context.
func RequireAuth(m *JWTManager, fail FailureFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			fail(c, err)
			c.Abort()
			return
		}
		claims, err := m.Validate(token)
		if err != nil {
			fail(c, err)
			c.Abort()
			return
		}
		setUser(c, claims.UserID)
		c.Next()
	}
}

// OptionalAuth stores the user when a valid token is present and lets every
// request through.
func OptionalAuth(m *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m != nil {
			if token, err := BearerToken(c.GetHeader("Authorization")); err == nil {
				if claims, err := m.Validate(token); err == nil {
					setUser(c, claims.UserID)
				}
			}
		}
		c.Next()
	}
}

func setUser(c *gin.Context, userID string) {
	c.Set(string(userIDKey), userID)
	c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), userID))
}
