package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/advert-generator/internal/config"
	"github.com/jonathan/advert-generator/internal/db"
	"github.com/jonathan/advert-generator/internal/pipeline"
	"github.com/jonathan/advert-generator/internal/server/middleware"
	"github.com/jonathan/advert-generator/internal/server/ratelimit"
)

// DefaultMaxUploadBytes caps multipart request bodies.
const DefaultMaxUploadBytes = 32 << 20

// Store is the advert history read by the API.
type Store interface {
	ListAdverts(ctx context.Context, filters db.AdvertFilters) ([]db.Advert, error)
	GetAdvert(ctx context.Context, id uuid.UUID) (*db.Advert, error)
}

// Config holds server configuration
type Config struct {
	Addr           string
	CORSOrigins    []string
	MaxUploadBytes int64
	// JWT enables bearer token auth when set.
	JWT       *config.JWTConfig
	RateLimit *ratelimit.Config
}

// Deps are the collaborators the handlers call.
type Deps struct {
	Pipeline  *pipeline.Pipeline
	Extractor pipeline.Extractor
	// Store enables the history endpoints when set.
	Store Store
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	pipeline    *pipeline.Pipeline
	extractor   pipeline.Extractor
	store       Store
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	corsOrigins map[string]bool
	maxUpload   int64
	validate    *validator.Validate
}

// New creates a new server instance
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Pipeline == nil {
		return nil, fmt.Errorf("server requires a pipeline")
	}
	if deps.Extractor == nil {
		return nil, fmt.Errorf("server requires an extractor")
	}

	s := &Server{
		pipeline:    deps.Pipeline,
		extractor:   deps.Extractor,
		store:       deps.Store,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		corsOrigins: make(map[string]bool),
		maxUpload:   cfg.MaxUploadBytes,
		validate:    validator.New(),
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUploadBytes
	}
	for _, origin := range cfg.CORSOrigins {
		s.corsOrigins[strings.TrimSpace(origin)] = true
	}
	if len(s.corsOrigins) == 0 {
		s.corsOrigins["*"] = true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /adverts", s.handleCreateAdvert)
	mux.HandleFunc("POST /adverts/batch", s.handleBatch)
	mux.HandleFunc("GET /adverts", s.handleListAdverts)
	mux.HandleFunc("GET /adverts/{id}/document", s.handleGetDocument)

	var handler http.Handler = mux
	if cfg.JWT != nil {
		s.jwtService = NewJWTService(cfg.JWT)
		handler = middleware.AuthMiddleware(s.jwtService.AsTokenValidator(), "/health")(handler)
	}
	s.handler = s.withLogging(s.withRateLimit(s.withCORS(handler)))

	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for batch runs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.httpServer.Addr).Bool("auth", s.jwtService != nil).
			Bool("history", s.store != nil).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	log.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case s.corsOrigins["*"]:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && s.corsOrigins[origin]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Advert-ID, X-Batch-ID, X-Batch-Summary, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientIP(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

func (sr *statusRecorder) Write(p []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(p)
	sr.bytes += n
	return n, err
}

// withLogging attaches a request-scoped logger and logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		logger := log.With().Str("request_id", requestID).Logger()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r.WithContext(logger.WithContext(r.Context())))

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		var event *zerolog.Event
		switch {
		case rec.status >= 500:
			event = logger.Error()
		case rec.status >= 400:
			event = logger.Warn()
		default:
			event = logger.Info()
		}
		event.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Str("remote", clientIP(r)).
			Msg("request")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"history": s.store != nil,
		"auth":    s.jwtService != nil,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFrom writes err with the status HTTPStatus assigns it. Server errors
// are logged and their details withheld.
func (s *Server) errorFrom(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		message = "internal server error"
	}
	s.errorResponse(w, status, message)
}

// clientIP extracts the client IP from RemoteAddr.
// X-Forwarded-For is ignored because proxies are not trusted.
func clientIP(r *http.Request) string {
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
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":   "rate_limit_exceeded",
		"message": "Rate limit exceeded. Please try again later.",
		"limit":   info.Limit,
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	log.Ctx(r.Context()).Warn().
		Str("client", clientIP(r)).
		Str("path", r.URL.Path).
		Int("limit", info.Limit).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
