package controller

import (
	"errors"
	"net/http"

	"inkpress/config"
	"inkpress/database/model"
	"inkpress/logger"
	"inkpress/web/service"
	"inkpress/web/session"

	"github.com/gin-gonic/gin"
)

// SignupForm represents the sign-up request structure.
type SignupForm struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
}

// SigninForm represents the sign-in request structure.
type SigninForm struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// AuthController handles sign-up, sign-in and sign-out.
type AuthController struct {
	BaseController

	userService service.UserService
}

func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.GET("/signup", a.signupPage)
	g.POST("/signup", a.signup)
	g.GET("/signin", a.signinPage)
	g.POST("/signin", a.signin)
	g.GET("/signout", a.signout)
}

func (a *AuthController) signupPage(c *gin.Context) {
	// Already-authenticated callers are sent home instead of creating a
	// second session.
	if session.IsLogin(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	html(c, "signup.html", "pages.signup.title", nil)
}

func (a *AuthController) signup(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		flash(c, "flash.invalidFormData")
		c.Redirect(http.StatusSeeOther, "/signup")
		return
	}

	user, err := a.userService.SignUp(form.Email, form.Username, form.Password)
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		flash(c, "flash.emailExists")
		c.Redirect(http.StatusSeeOther, "/signin")
		return
	case errors.Is(err, service.ErrDuplicateUsername):
		flash(c, "flash.usernameExists")
		c.Redirect(http.StatusSeeOther, "/signup")
		return
	case err != nil:
		logger.Warning("sign up failed:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	a.establishSession(c, user)
	c.Redirect(http.StatusSeeOther, "/")
}

func (a *AuthController) signinPage(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	html(c, "signin.html", "pages.signin.title", nil)
}

func (a *AuthController) signin(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	var form SigninForm
	if err := c.ShouldBind(&form); err != nil {
		flash(c, "flash.invalidFormData")
		c.Redirect(http.StatusSeeOther, "/signin")
		return
	}

	user, err := a.userService.CheckUser(form.Email, form.Password)
	switch {
	case errors.Is(err, service.ErrUnknownEmail):
		flash(c, "flash.unknownEmail")
		c.Redirect(http.StatusSeeOther, "/signin")
		return
	case errors.Is(err, service.ErrInvalidPassword):
		logger.Warningf("wrong password for %q, IP: %q", form.Email, getRemoteIp(c))
		flash(c, "flash.invalidPassword")
		c.Redirect(http.StatusSeeOther, "/signin")
		return
	case err != nil:
		logger.Warning("sign in failed:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	a.establishSession(c, user)
	logger.Infof("%s signed in, IP: %s", user.Username, getRemoteIp(c))
	c.Redirect(http.StatusSeeOther, "/")
}

func (a *AuthController) establishSession(c *gin.Context, user *model.User) {
	if err := session.SetMaxAge(c, config.GetSessionMaxAge()*60); err != nil {
		logger.Warning("unable to set session max age:", err)
	}
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("unable to save session:", err)
	}
}

// signout clears the session unconditionally; repeating it is harmless.
func (a *AuthController) signout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s signed out", user.Username)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}
