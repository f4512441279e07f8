// Package server exposes the dump inspector over HTTP for the browser
// UI: stateless segment/parse/context endpoints, saved-dump storage,
// optional AI explanations, and a websocket session with debounced
// reparse.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"irview/internal/config"
	"irview/internal/explain"
	"irview/internal/session"
	"irview/internal/store"
)

// Server wires the router to its collaborators and owns the listener
// lifecycle.
type Server struct {
	cfg       *config.Config
	store     *store.Store
	explainer explain.Explainer
	cache     *session.Cache
	http      *http.Server
}

// New assembles a server. store may be nil (saved-dump endpoints then
// answer 503) and explainer defaults to explain.Disabled.
func New(cfg *config.Config, st *store.Store, exp explain.Explainer) (*Server, error) {
	if exp == nil {
		exp = explain.Disabled{}
	}
	cache, err := session.NewCache(session.DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, store: st, explainer: exp, cache: cache}
	s.http = &http.Server{
		Addr:              cfg.Port,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Router builds the gin engine with all routes registered. Exposed
// separately so tests can drive it through httptest.
func (s *Server) Router() *gin.Engine {
	if s.cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), corsMiddleware())

	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/v1")
	{
		v1.POST("/segment", s.handleSegment)
		v1.POST("/parse", s.handleParse)
		v1.POST("/context", s.handleContext)

		v1.POST("/dumps", s.handleSaveDump)
		v1.GET("/dumps", s.handleListDumps)
		v1.GET("/dumps/:id", s.handleGetDump)
		v1.DELETE("/dumps/:id", s.handleDeleteDump)

		v1.POST("/explain/node", s.handleExplainNode)
		v1.POST("/explain/pass", s.handleExplainPass)
	}

	r.GET("/ws/session", s.handleSession)

	return r
}

// Run serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", s.cfg.Port, "env", s.cfg.Env)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
