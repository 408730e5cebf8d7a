package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"inkpress/logger"
	"inkpress/web/middleware"
	"inkpress/web/policy"
	"inkpress/web/service"
	"inkpress/web/session"

	"github.com/gin-gonic/gin"
)

// PostForm represents the post creation and edit request structure.
type PostForm struct {
	Title    string `json:"title" form:"title" binding:"required"`
	Subtitle string `json:"subtitle" form:"subtitle" binding:"required"`
	ImgURL   string `json:"imgUrl" form:"imgUrl" binding:"required,url"`
	Body     string `json:"body" form:"body" binding:"required"`
}

// CommentForm represents the comment request structure.
type CommentForm struct {
	Text string `json:"text" form:"text" binding:"required"`
}

// PostController handles post pages, post administration and comments.
type PostController struct {
	BaseController

	postService    service.PostService
	commentService service.CommentService
}

func NewPostController(g *gin.RouterGroup) *PostController {
	a := &PostController{}
	a.initRouter(g)
	return a
}

func (a *PostController) initRouter(g *gin.RouterGroup) {
	g.GET("/post/:id", a.showPost)
	g.POST("/post/:id", a.addComment)
	g.GET("/delete-comment/:id", a.deleteComment)

	admin := g.Group("/")
	admin.Use(middleware.Authorize(policy.ManagePost))
	{
		admin.GET("/new-post", a.newPostPage)
		admin.POST("/new-post", a.createPost)
		admin.GET("/edit-post/:id", a.editPostPage)
		admin.POST("/edit-post/:id", a.editPost)
		admin.GET("/delete-post/:id", a.deletePost)
	}
}

func (a *PostController) showPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	post, err := a.postService.GetPost(id)
	if errors.Is(err, service.ErrNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	} else if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	html(c, "post.html", "pages.post.title", gin.H{"post": post})
}

func (a *PostController) addComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	user := session.GetLoginUser(c)
	if decision := policy.Evaluate(user, policy.CreateComment, policy.Target{}); !decision.Allowed {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "flash.signInToComment"))
			return
		}
		flash(c, "flash.signInToComment")
		c.Redirect(http.StatusSeeOther, "/signin")
		return
	}

	var form CommentForm
	if err := c.ShouldBind(&form); err != nil {
		flash(c, "flash.invalidFormData")
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
		return
	}

	comment, err := a.commentService.AddComment(user, id, form.Text)
	if errors.Is(err, service.ErrNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	} else if err != nil {
		logger.Warning("add comment failed:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if isAjax(c) {
		jsonObj(c, comment, nil)
		return
	}
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

func (a *PostController) deleteComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	user := session.GetLoginUser(c)
	if decision := policy.Evaluate(user, policy.DeleteComment, policy.Target{}); !decision.Allowed {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	postId, err := a.commentService.DeleteComment(id)
	if errors.Is(err, service.ErrNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	} else if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", postId))
}

func (a *PostController) newPostPage(c *gin.Context) {
	html(c, "make-post.html", "pages.makePost.title", gin.H{"isEdit": false})
}

func (a *PostController) createPost(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		flash(c, "flash.invalidFormData")
		c.Redirect(http.StatusSeeOther, "/new-post")
		return
	}

	user := session.GetLoginUser(c)
	post, err := a.postService.CreatePost(user, form.Title, form.Subtitle, form.Body, form.ImgURL)
	if errors.Is(err, service.ErrDuplicateTitle) {
		flash(c, "flash.duplicateTitle")
		c.Redirect(http.StatusSeeOther, "/new-post")
		return
	} else if err != nil {
		logger.Warning("create post failed:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	logger.Infof("%s published post %d", user.Username, post.Id)
	c.Redirect(http.StatusSeeOther, "/")
}

func (a *PostController) editPostPage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	post, err := a.postService.GetPost(id)
	if errors.Is(err, service.ErrNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	} else if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	html(c, "make-post.html", "pages.makePost.editTitle", gin.H{"isEdit": true, "post": post})
}

func (a *PostController) editPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		flash(c, "flash.invalidFormData")
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/edit-post/%d", id))
		return
	}

	user := session.GetLoginUser(c)
	err = a.postService.UpdatePost(user, id, form.Title, form.Subtitle, form.Body, form.ImgURL)
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.AbortWithStatus(http.StatusNotFound)
		return
	case errors.Is(err, service.ErrDuplicateTitle):
		flash(c, "flash.duplicateTitle")
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/edit-post/%d", id))
		return
	case err != nil:
		logger.Warning("edit post failed:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

func (a *PostController) deletePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	err = a.postService.DeletePost(id)
	if errors.Is(err, service.ErrNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	} else if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}
