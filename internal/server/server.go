// Package server exposes the planner as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aleksanderbl29/meal-planner/internal/auth"
	"github.com/aleksanderbl29/meal-planner/internal/logger"
	"github.com/aleksanderbl29/meal-planner/internal/metrics"
	"github.com/aleksanderbl29/meal-planner/internal/planner"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	Planner *planner.Service
	// JWT validates bearer tokens. Without it requests carry no session.
	JWT *auth.JWTManager
	// RequireAuth rejects meal routes without a valid token before they
	// reach the planner.
	RequireAuth bool
	StoreName   string
}

type Server struct {
	planner     *planner.Service
	jwt         *auth.JWTManager
	requireAuth bool
	storeName   string
	started     time.Time
	router      *gin.Engine
}

func New(opts Options) *Server {
	s := &Server{
		planner:     opts.Planner,
		jwt:         opts.JWT,
		requireAuth: opts.RequireAuth,
		storeName:   opts.StoreName,
		started:     time.Now(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestIDMiddleware(), loggingMiddleware(), recoveryMiddleware())
	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "route not found")
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	api.GET("/health", s.health)

	protected := api.Group("")
	protected.Use(s.authMiddleware())
	{
		protected.GET("/meals", s.listMeals)
		protected.POST("/meals", s.createMeal)
		protected.PUT("/meals/:id", s.updateMeal)
		protected.DELETE("/meals/:id", s.deleteMeal)
		protected.POST("/meals/:id/eaten", s.markEaten)
		protected.POST("/meals/:id/promote", s.promote)
		protected.GET("/calendar", s.calendar)
		protected.GET("/weeks/:year/:week", s.week)
	}
	return r
}

func (s *Server) authMiddleware() gin.HandlerFunc {
	if s.requireAuth && s.jwt != nil {
		return auth.RequireAuth(s.jwt, func(c *gin.Context, err error) {
			respondError(c, http.StatusUnauthorized, err.Error())
		})
	}
	return auth.OptionalAuth(s.jwt)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
