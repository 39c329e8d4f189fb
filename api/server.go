package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mdsajjadhossain25/portfolio-backend/config"
	"github.com/mdsajjadhossain25/portfolio-backend/storage"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.Config, deps Dependencies) (Server, error) {
	if cfg.AdminJWTSecret == "" {
		log.Warn().Msg("ADMIN_JWT_SECRET is empty, admin login is disabled")
	}

	// Bind to 0.0.0.0 for external access
	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port)

	// Capture startup time
	startupTime := time.Now()

	router := newRouter(deps, withConfig(cfg), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeoutSeconds) * time.Second,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      config.Config
	startupTime time.Time
}

func withConfig(c config.Config) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	cfg := router.config

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(HTTPLoggingMiddleware(log.With().Str("component", "http").Logger()))

	chiRouter.Use(CORSCheckMiddleware(cfg.AcceptedOrigins))
	chiRouter.Use(corsMiddleware(cfg.AcceptedOrigins))

	tokens := newTokenManager(cfg.AdminJWTSecret, cfg.AdminTokenTTL)
	handlers := initializeHandlers(deps, cfg.SiteBaseURL, cfg.AdminPasswordHash, tokens)
	limiter := newRateLimiter(deps.Redis, cfg.PublicRateLimit, cfg.PublicRateWindow)

	chiRouter.Get("/health", router.health(deps))
	mountLocalFiles(chiRouter, deps.Files, cfg.Storage.PublicURL)

	setupPublicRoutes(chiRouter, handlers, limiter)
	setupAdminRoutes(chiRouter, handlers, deps.Database, newAuthMiddleware(tokens), limiter)

	return chiRouter
}

func (rt router) health(deps Dependencies) http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "health").Logger())
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		response := healthResponse{
			Status:      "ok",
			Database:    "ok",
			StartupTime: rt.startupTime.UTC().Format(time.RFC3339),
			Uptime:      time.Since(rt.startupTime).Round(time.Second).String(),
		}
		status := http.StatusOK
		if err := deps.Database.Ping(ctx); err != nil {
			log.Error().Err(err).Msg("Health check database ping failed")
			response.Status = "degraded"
			response.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}
		responder.WriteJSONStatus(w, status, response)
	}
}

// mountLocalFiles serves disk storage at the path of its public URL
func mountLocalFiles(r chi.Router, files storage.FileStorage, publicURL string) {
	local, ok := files.(*storage.LocalStorage)
	if !ok {
		return
	}
	prefix := "/storage"
	if u, err := url.Parse(publicURL); err == nil && u.Path != "" && u.Path != "/" {
		prefix = "/" + strings.Trim(u.Path, "/")
	}
	fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(local.Root())))
	r.Get(prefix+"/*", fileServer.ServeHTTP)
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
