package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/fastlabor/internal/config"
	"github.com/jonathan/fastlabor/internal/records"
	"github.com/jonathan/fastlabor/internal/rendering"
	"github.com/jonathan/fastlabor/internal/server/middleware"
	"github.com/jonathan/fastlabor/internal/server/ratelimit"
)

// MyJobsService loads per-user views. Implemented by *myjobs.Service.
type MyJobsService interface {
	Load(ctx context.Context, email string) (*records.View, error)
	SelectPosting(ctx context.Context, email string, index int) (records.Selection, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	myJobs      MyJobsService
	page        *rendering.Page
	sessions    *SessionStore
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	logger      zerolog.Logger
	loginURL    string
	homeURL     string
	matchingURL string
}

// Config holds server configuration
type Config struct {
	Port        int
	LoginURL    string
	HomeURL     string
	MatchingURL string
	RateLimit   ratelimit.Config
	JWT         *config.JWTConfig
	Session     *config.SessionConfig
}

// New creates a new server instance
func New(cfg Config, svc MyJobsService, logger zerolog.Logger) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("my jobs service is required")
	}
	if cfg.JWT == nil {
		return nil, fmt.Errorf("JWT config is required")
	}
	if cfg.Session == nil {
		return nil, fmt.Errorf("session config is required")
	}

	page, err := rendering.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to load page template: %w", err)
	}

	s := &Server{
		myJobs:      svc,
		page:        page,
		sessions:    NewSessionStore(cfg.Session),
		jwtService:  NewJWTService(cfg.JWT),
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		logger:      logger.With().Str("component", "server").Logger(),
		loginURL:    cfg.LoginURL,
		homeURL:     cfg.HomeURL,
		matchingURL: cfg.MatchingURL,
	}

	validator := s.jwtService.AsTokenValidator()
	apiAuth := middleware.AuthMiddleware(validator, s.unauthorizedResponse)
	pageAuth := middleware.AuthMiddleware(validator, middleware.RedirectUnauthorized(cfg.LoginURL))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// API
	mux.Handle("GET /v1/my-jobs", apiAuth(http.HandlerFunc(s.handleMyJobsJSON)))
	mux.Handle("GET /v1/my-jobs.md", apiAuth(http.HandlerFunc(s.handleMyJobsMarkdown)))

	// Pages
	mux.Handle("GET /my-jobs", pageAuth(http.HandlerFunc(s.handleMyJobsPage)))
	mux.Handle("POST /my-jobs/postings/{index}/match", middleware.SameOrigin(pageAuth(http.HandlerFunc(s.handleSelectPosting))))

	s.handler = middleware.RequestID(
		middleware.Logging(s.logger)(
			s.withRateLimit(s.withCORS(mux)),
		),
	)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	s.logger.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := s.rateLimiter.Allow(s.extractClientID(r))
		s.setRateLimitHeaders(w, info)

		if !info.Allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := max(1, int(info.RetryAfter.Seconds()))
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// unauthorizedResponse answers API requests without a valid identity.
func (s *Server) unauthorizedResponse(w http.ResponseWriter, _ *http.Request) {
	s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to a status and writes it as JSON.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("request_id", middleware.GetRequestID(r)).Msg("request failed")
	}
	s.errorResponse(w, status, publicMessage(err))
}
