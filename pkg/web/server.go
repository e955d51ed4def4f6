// Package web serves the input, result and history screens.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vidsum/pkg/gateway"
	"vidsum/pkg/history"
	"vidsum/pkg/languages"
	"vidsum/pkg/notify"
	"vidsum/pkg/summary"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server is the HTTP server for the web UI.
type Server struct {
	store    history.Store
	gateway  gateway.Summarizer
	catalog  *languages.Catalog
	notices  *notify.Queue
	logger   *zap.Logger
	location *time.Location
	now      func() time.Time

	engine *gin.Engine
	server *http.Server
}

// NewServer builds the router. notices should be the queue the store reports
// into so load failures show up on the next page.
func NewServer(store history.Store, gw gateway.Summarizer, catalog *languages.Catalog, notices *notify.Queue, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notices == nil {
		notices = notify.NewQueue()
	}
	if catalog == nil {
		catalog = languages.Default()
	}

	s := &Server{
		store:    store,
		gateway:  gw,
		catalog:  catalog,
		notices:  notices,
		logger:   logger,
		location: time.Local,
		now:      time.Now,
	}

	tmpl, err := template.New("").Funcs(s.funcs()).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.engine.Use(s.loggingMiddleware())
	s.engine.SetHTMLTemplate(tmpl)

	s.engine.GET("/", s.handleIndex)
	s.engine.POST("/summarize", s.handleSummarize)
	s.engine.GET("/summary", s.handleSummary)
	s.engine.GET("/summary/download", s.handleDownload)
	s.engine.GET("/healthz", s.handleHealth)

	hist := s.engine.Group("/history")
	hist.GET("", s.handleHistory)
	hist.POST("/:index/view", s.handleView)
	hist.POST("/:index/delete", s.handleDelete)

	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens on addr until Stop is called.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // summaries can take a while
		IdleTimeout:  120 * time.Second,
	}

	s.logger.Info("starting web server", zap.String("addr", addr))
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func (s *Server) funcs() template.FuncMap {
	return template.FuncMap{
		"formatTime": func(t time.Time) string {
			return summary.FormatTimestamp(t, s.location)
		},
		"videoKind": func(ref string) string {
			return string(summary.ClassifyVideo(ref))
		},
		"thumbnail": summary.YouTubeThumbnail,
	}
}

// render drains pending notices into the page data.
func (s *Server) render(c *gin.Context, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Notices"] = s.notices.Drain()
	c.HTML(http.StatusOK, name, data)
}
