// Package httpserver serves the browser front-end and a small JSON API
// over the catalog.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/tinytelemetry/mbtilens/internal/model"
	"github.com/tinytelemetry/mbtilens/internal/route"
	"github.com/tinytelemetry/mbtilens/internal/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shellTitle = "MBTI"

// Server provides the page shell, server-side page rendering and the API.
type Server struct {
	addr      string
	catalog   model.Catalog
	opts      view.Options
	logger    *zap.Logger
	shell     []byte
	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
	served    chan error
}

// NewServer creates a new HTTP server. opts is applied to every page render.
func NewServer(addr string, catalog model.Catalog, opts view.Options, logger *zap.Logger) *Server {
	if addr == "" {
		addr = "127.0.0.1:3000"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts.Strings = opts.Strings.WithDefaults()
	opts.Logger = logger
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:      addr,
		catalog:   catalog,
		opts:      opts,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() (http.Handler, error) {
	if s.shell == nil {
		shell, err := renderShell(shellTitle)
		if err != nil {
			return nil, err
		}
		s.shell = shell
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/", s.handleShell)
	r.GET("/view", s.handleView)
	r.POST("/api/submit", s.handleSubmit)
	r.GET("/api/types", s.handleTypes)
	r.GET("/api/types/:code", s.handleType)
	r.GET("/api/health", s.handleHealth)

	return r, nil
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	s.server = &http.Server{
		Handler:           handler,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.startTime = time.Now()
	s.served = make(chan error, 1)

	go func() {
		defer close(s.served)
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http: serve failed", zap.Error(err))
			s.served <- err
		}
	}()
	s.logger.Info("http: listening", zap.String("addr", listener.Addr().String()))
	return nil
}

// Wait blocks until the server stops serving or ctx is done. It returns
// the error that ended Serve, or nil after Stop or cancellation.
func (s *Server) Wait(ctx context.Context) error {
	if s.served == nil {
		return errors.New("http: server not started")
	}
	select {
	case err := <-s.served:
		return err
	case <-ctx.Done():
		return nil
	}
}

// Addr returns the bound address once started, the configured one before.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleShell(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", s.shell)
}

// handleView renders the content region for a fragment the way the
// browser would after a hash change.
func (s *Server) handleView(c *gin.Context) {
	fragment := strings.TrimPrefix(c.Query("fragment"), "#")

	doc := view.NewDocument(shellTitle)
	nav := view.NewMemoryNavigator(fragment)
	app := view.NewApp(doc, s.catalog, nav, s.opts)
	app.Start()

	content, err := doc.ContentHTML()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render view"})
		return
	}
	current, _ := app.Current()

	c.JSON(http.StatusOK, gin.H{
		"html":       content,
		"background": doc.Background(),
		"route":      current.Kind.String(),
		"fragment":   nav.Fragment(),
	})
}

func (s *Server) handleSubmit(c *gin.Context) {
	var req struct {
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	r, err := route.FromInput(req.Value)
	if errors.Is(err, route.ErrEmptyCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": s.opts.Strings.EmptyInputError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fragment": r.Fragment()})
}

func (s *Server) handleTypes(c *gin.Context) {
	codes := s.catalog.Codes()
	c.JSON(http.StatusOK, gin.H{
		"types": codes,
		"count": len(codes),
	})
}

func (s *Server) handleType(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.Resolve(c.Param("code")))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
		"types":  len(s.catalog.Codes()),
	})
}

// requestLogger logs one line per request at debug level, errors at warn.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("http: request", fields...)
			return
		}
		logger.Debug("http: request", fields...)
	}
}
