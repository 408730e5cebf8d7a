package controller

import (
	"net/http"

	"inkpress/logger"
	"inkpress/web/service"

	"github.com/gin-gonic/gin"
)

// ContactForm represents the contact page request structure.
type ContactForm struct {
	Name    string `json:"name" form:"name" binding:"required"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Message string `json:"message" form:"message" binding:"required"`
}

// IndexController handles the home page and the static informational
// pages.
type IndexController struct {
	BaseController

	postService service.PostService
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/about", a.about)
	g.GET("/contact", a.contactPage)
	g.POST("/contact", a.contact)
}

// index lists all posts, most recent first.
func (a *IndexController) index(c *gin.Context) {
	posts, err := a.postService.GetAllPosts()
	if err != nil {
		logger.Warning("list posts failed:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	html(c, "index.html", "pages.index.title", gin.H{"posts": posts})
}

func (a *IndexController) about(c *gin.Context) {
	html(c, "about.html", "pages.about.title", nil)
}

func (a *IndexController) contactPage(c *gin.Context) {
	html(c, "contact.html", "pages.contact.title", nil)
}

func (a *IndexController) contact(c *gin.Context) {
	var form ContactForm
	if err := c.ShouldBind(&form); err != nil {
		flash(c, "flash.invalidFormData")
		c.Redirect(http.StatusSeeOther, "/contact")
		return
	}

	logger.Infof("contact message from %s <%s>", form.Name, form.Email)
	flash(c, "flash.messageSent")
	c.Redirect(http.StatusSeeOther, "/contact")
}
