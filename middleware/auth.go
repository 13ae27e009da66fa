package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"smartbite/models"
	"smartbite/utils"
)

// AuthMiddleware validates the bearer token and exposes the caller's
// identity (user_id, user_email, user_role) to the handlers downstream.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Sign in to continue",
			})
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Session expired, please sign in again",
				Error:   err.Error(),
			})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// AdminMiddleware runs after AuthMiddleware and rejects non-admin callers.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_role") != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Message: "This action requires an admin account",
			})
			return
		}
		c.Next()
	}
}
