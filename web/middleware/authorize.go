package middleware

import (
	"net/http"

	"inkpress/web/entity"
	"inkpress/web/policy"
	"inkpress/web/session"

	"github.com/gin-gonic/gin"
)

// Authorize guards a route group with a policy operation that needs no
// per-entity target. Self-scoped operations are evaluated in handlers
// where the target is known.
func Authorize(op policy.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := session.GetLoginUser(c)
		decision := policy.Evaluate(user, op, policy.Target{})
		if decision.Allowed {
			c.Next()
			return
		}

		isAjax := c.GetHeader("X-Requested-With") == "XMLHttpRequest"

		switch decision.Reason {
		case policy.NotAuthenticated:
			if isAjax {
				c.JSON(http.StatusUnauthorized, entity.Msg{Msg: "sign in required"})
			} else {
				c.Redirect(http.StatusSeeOther, "/signin")
			}
		default:
			if isAjax {
				c.JSON(http.StatusForbidden, entity.Msg{Msg: "forbidden"})
			} else {
				c.AbortWithStatus(http.StatusForbidden)
			}
		}
		c.Abort()
	}
}
