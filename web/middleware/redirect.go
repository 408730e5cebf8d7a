package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RedirectMiddleware rewrites legacy paths kept for old bookmarks and
// crawlers ("/delete/5" predates "/delete-post/5").
func RedirectMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		redirects := map[string]string{
			"/delete/":  "/delete-post/",
			"/login":    "/signin",
			"/register": "/signup",
		}

		path := c.Request.URL.Path
		for from, to := range redirects {
			if strings.HasPrefix(path, from) {
				newPath := to + path[len(from):]

				c.Redirect(http.StatusMovedPermanently, newPath)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
