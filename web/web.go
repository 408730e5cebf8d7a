// Package web provides the web server for the inkpress blog: HTTP
// serving, routing, templates and scheduled maintenance.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net"
	"net/http"

	"inkpress/config"
	"inkpress/logger"
	"inkpress/util/common"
	"inkpress/util/random"
	"inkpress/web/controller"
	"inkpress/web/job"
	"inkpress/web/locale"
	"inkpress/web/middleware"
	"inkpress/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

// Server represents the blog web server with its controllers and
// scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index *controller.IndexController
	auth  *controller.AuthController
	post  *controller.PostController
	user  *controller.UserController

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// getHtmlTemplate parses the embedded HTML templates.
func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(htmlFS, "html/*.html")
}

// initRouter initializes Gin, registers middleware, templates and
// controllers and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}

	secret := config.GetSessionSecret()
	if secret == "" {
		// Sessions won't survive a restart without a configured secret,
		// which is acceptable for a fresh install.
		secret = random.Seq(32)
	}

	store := cookie.NewStore([]byte(secret))
	engine.Use(sessions.Sessions(session.CookieName, store))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(locale.LocalizerMiddleware())
	engine.Use(middleware.RedirectMiddleware())

	funcMap := template.FuncMap{
		"i18n": locale.I18n,
		// safe marks pre-escaped or author-provided markup as renderable.
		"safe": func(s string) template.HTML { return template.HTML(s) },
	}
	engine.SetFuncMap(funcMap)

	tpl, err := s.getHtmlTemplate(funcMap)
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	g := engine.Group("/")
	s.index = controller.NewIndexController(g)
	s.auth = controller.NewAuthController(g)
	s.post = controller.NewPostController(g)
	s.user = controller.NewUserController(g)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules background maintenance jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewDBCheckpointJob())
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), config.GetPort())
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its cron jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
