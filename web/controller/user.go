package controller

import (
	"errors"
	"net/http"

	"inkpress/logger"
	"inkpress/web/policy"
	"inkpress/web/service"
	"inkpress/web/session"

	"github.com/gin-gonic/gin"
)

// UserController handles the profile page and account deletion.
type UserController struct {
	BaseController

	userService service.UserService
	postService service.PostService
}

func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g.GET("/user/:username", a.profile)
	g.GET("/delete-user/:username", a.deleteUser)
}

// profile shows a user's own page. Other identities, signed in or not,
// get 403.
func (a *UserController) profile(c *gin.Context) {
	username := c.Param("username")

	user := session.GetLoginUser(c)
	if decision := policy.Evaluate(user, policy.ViewProfile, policy.Target{Username: username}); !decision.Allowed {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	profile, err := a.userService.GetUserByUsername(username)
	if errors.Is(err, service.ErrNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	} else if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	posts, err := a.postService.GetPostsByAuthor(profile.Id)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	html(c, "user.html", "pages.profile.title", gin.H{"profile": profile, "posts": posts})
}

// deleteUser removes the caller's own account. The session is cleared
// first: the identity it references is about to disappear.
func (a *UserController) deleteUser(c *gin.Context) {
	username := c.Param("username")

	user := session.GetLoginUser(c)
	if decision := policy.Evaluate(user, policy.DeleteAccount, policy.Target{Username: username}); !decision.Allowed {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}

	err := a.userService.DeleteUser(username)
	if errors.Is(err, service.ErrNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	} else if err != nil {
		logger.Warning("delete user failed:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}
