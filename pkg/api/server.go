// Package api is the daemon's thin HTTP shell: gin handlers that marshal
// requests into pkg/anna calls and marshal results back to JSON. It owns no
// domain logic — every handler is a few lines of binding plus one Agent
// call, the same division cmd/tarsy/main.go draws between its gin router
// and the services package it calls into.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jjgarcianorway/anna/pkg/anna"
)

// Server binds an *anna.Agent to gin routes and an *http.Server lifecycle.
type Server struct {
	agent      *anna.Agent
	router     *gin.Engine
	httpServer *http.Server
}

// NewServer builds a Server wrapping agent with every route registered.
func NewServer(agent *anna.Agent) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{agent: agent, router: router}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.health)

	v1 := s.router.Group("/v1")
	v1.POST("/ask", s.ask)
	v1.POST("/plans/evaluate", s.evaluate)
	v1.POST("/plans/execute", s.execute)
	v1.GET("/changes", s.recentChanges)
}

// Start runs the HTTP server on addr, blocking until it stops.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.router}
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server, waiting for in-flight requests
// up to ctx's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
