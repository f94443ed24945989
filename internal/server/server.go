// Package server exposes profiles, industry insights, quizzes and
// assessments over a JSON HTTP API authenticated with bearer tokens.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/prepcoach/internal/assessment"
	"github.com/abhisek/prepcoach/internal/identity"
	"github.com/abhisek/prepcoach/internal/logger"
	"github.com/abhisek/prepcoach/internal/metrics"
	"github.com/abhisek/prepcoach/internal/profile"
	"github.com/abhisek/prepcoach/internal/quizgen"
)

const shutdownTimeout = 10 * time.Second

// RouterConfig carries the services the API is built on.
type RouterConfig struct {
	Log         *logger.Logger
	Tokens      *identity.TokenVerifier
	Profiles    *profile.Service
	Quizzes     *quizgen.Service
	Assessments *assessment.Service
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	h := &handlers{
		log:         log.With("component", "http"),
		profiles:    cfg.Profiles,
		quizzes:     cfg.Quizzes,
		assessments: cfg.Assessments,
	}
	auth := NewAuthMiddleware(log, cfg.Tokens, cfg.Profiles)

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(log))

	// Public
	router.GET("/healthz", healthz)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Protected
	v1 := router.Group("/api/v1")
	v1.Use(auth.RequireAuth())
	{
		v1.GET("/profile", h.getProfile)
		v1.PUT("/profile", h.updateProfile)
		v1.GET("/insights", h.getInsight)
		v1.POST("/quizzes", h.generateQuiz)
		v1.POST("/assessments", h.submitAssessment)
		v1.GET("/assessments", h.listAssessments)
	}

	return router
}

// Serve runs handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, log *logger.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Quiz generation waits on the model.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("http server shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
