// Package controller provides the HTTP request handlers for the inkpress
// blog: public pages, authentication, posts, comments and user profiles.
package controller

import (
	"inkpress/logger"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers.
// Route guarding is composed from the policy package via
// middleware.Authorize or per-handler Evaluate calls.
type BaseController struct{}

// I18nWeb retrieves a localized message for the current request.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	anyfunc, funcExists := c.Get("I18n")
	if !funcExists {
		logger.Warning("I18n function not exists in gin context!")
		return name
	}
	i18nFunc, _ := anyfunc.(func(key string, params ...string) string)
	return i18nFunc(name, params...)
}
