package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// AuthMiddleware authenticates the Bearer access token and its session.
// The user id is stored as a string under "user_id".
func AuthMiddleware(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, domain.CodeUnauthorized)
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
			abort(c, http.StatusUnauthorized, domain.CodeUnauthorized)
			return
		}

		claims, err := tokenSvc.ValidateAccessToken(tokenParts[1])
		if err != nil {
			_ = c.Error(err)
			abort(c, http.StatusUnauthorized, domain.CodeUnauthorized)
			return
		}

		// Logout deletes the session, so a still valid token stops working.
		session, err := sessionRepo.FindByID(c.Request.Context(), claims.SessionID)
		if err != nil || session == nil || session.UserID != claims.UserID {
			abort(c, http.StatusUnauthorized, domain.CodeUnauthorized)
			return
		}

		c.Set("user_id", strconv.FormatUint(uint64(claims.UserID), 10))
		c.Set("session_id", claims.SessionID)

		c.Next()
	})
}
