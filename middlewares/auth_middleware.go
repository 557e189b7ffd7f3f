package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
)

// Context keys set by the auth middlewares.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxClaims = "claims"
)

// AuthMiddleware accepts "Authorization: Bearer <token>" and rejects revoked tokens.
func AuthMiddleware(blacklist utils.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Authorization header missing"))
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid token format"))
			c.Abort()
			return
		}

		if !authenticate(c, blacklist, strings.TrimPrefix(authHeader, "Bearer ")) {
			c.Abort()
			return
		}
		c.Next()
	}
}

// WebSocketAuthMiddleware reads the token from ?token= since browsers cannot set headers on upgrade.
func WebSocketAuthMiddleware(blacklist utils.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token missing"))
			c.Abort()
			return
		}
		if !authenticate(c, blacklist, token) {
			c.Abort()
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, blacklist utils.TokenBlacklist, tokenString string) bool {
	claims, err := utils.ParseToken(tokenString)
	if err != nil || claims == nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid or expired token"))
		return false
	}
	if claims.UserID == 0 {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid user ID in token"))
		return false
	}

	if blacklist != nil && claims.ID != "" {
		revoked, err := blacklist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			utils.ErrorLogger.Printf("Token blacklist lookup failed: %v", err)
			utils.RespondError(c, http.StatusServiceUnavailable, errors.New("unable to verify token"))
			return false
		}
		if revoked {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Token has been revoked"))
			return false
		}
	}

	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxRole, claims.Role)
	c.Set(CtxClaims, claims)
	return true
}
