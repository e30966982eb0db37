package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hardik-python-lr/our-gate-backend/domain"
)

// CasbinMW authorizes routes against the casbin policies of every role the
// caller holds.
type CasbinMW struct {
	policies domain.PolicyService
	perms    domain.PermissionEvaluator
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policies domain.PolicyService, perms domain.PermissionEvaluator) *CasbinMW {
	return &CasbinMW{policies: policies, perms: perms}
}

// Enforce returns the casbin authorization middleware
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		tokenUserID := c.GetString("user_id")
		userID, err := strconv.ParseUint(tokenUserID, 10, 64)
		if err != nil {
			abort(c, http.StatusUnauthorized, domain.CodeUnauthorized)
			return
		}

		if headerUserID := c.GetHeader("x-user-id"); headerUserID != "" && headerUserID != tokenUserID {
			abort(c, http.StatusForbidden, domain.CodeForbidden)
			return
		}

		roles, err := mw.perms.RolesOf(c.Request.Context(), uint(userID))
		if err != nil {
			_ = c.Error(err)
			abort(c, http.StatusInternalServerError, domain.CodeSomethingWentWrong)
			return
		}

		path := c.Request.URL.Path
		method := c.Request.Method
		for _, role := range roles {
			allowed, err := mw.policies.CheckPermission(role.Subject(), path, method)
			if err != nil {
				_ = c.Error(err)
				abort(c, http.StatusInternalServerError, domain.CodeSomethingWentWrong)
				return
			}
			if allowed {
				c.Set("user_role", role.Slug())
				c.Next()
				return
			}
		}

		abort(c, http.StatusForbidden, domain.CodeForbidden)
	})
}
