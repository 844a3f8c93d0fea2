// Package httpapi exposes the execution service over HTTP.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lessonlab/code-runner/internal/repository/dto"
	"github.com/lessonlab/code-runner/internal/runner"
)

type Server struct {
	engine *gin.Engine
	addr   string
}

func NewServer(addr string, r runner.Runner) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(recovery(), cors())

	h := &executeHandler{runner: r}
	engine.POST("/execute", h.Execute)
	engine.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return &Server{engine: engine, addr: addr}
}

func (s *Server) Start() error {
	slog.Info("http server listening", "addr", s.addr)
	return s.engine.Run(s.addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// recovery is the outermost safety net: whatever a runner does, the HTTP
// layer never sees an unhandled panic, only a structured 500 body.
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic during request", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ExecutionOutcome{
			Success: false,
			Error:   "Internal server error",
		})
	})
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
