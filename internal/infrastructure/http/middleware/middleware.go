// Package middleware provides HTTP middleware components
// following the Chain of Responsibility pattern
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pantrywise/v1/internal/infrastructure/config"
	"github.com/pantrywise/v1/internal/ports/outbound"
	"github.com/pantrywise/v1/pkg/errors"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Middleware provides all middleware functions
type Middleware struct {
	config  *config.Config
	logger  *zap.Logger
	limiter *rate.Limiter
	tokens  outbound.TokenService
	metrics *Metrics
}

// New creates a new middleware instance
func New(cfg *config.Config, logger *zap.Logger, tokens outbound.TokenService) *Middleware {
	return &Middleware{
		config:  cfg,
		logger:  logger.Named("http"),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst),
		tokens:  tokens,
		metrics: NewMetrics(),
	}
}

// Logger provides structured request logging
func (m *Middleware) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		if r.URL.Path == "/api/v1/health" || r.URL.Path == "/metrics" {
			return
		}

		fields := []zap.Field{
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", r.RemoteAddr),
		}
		if userID, ok := UserID(r.Context()); ok {
			fields = append(fields, zap.String("user_id", userID.String()))
		}

		switch {
		case ww.Status() >= 500:
			m.logger.Error("Server error", fields...)
		case ww.Status() >= 400:
			m.logger.Warn("Client error", fields...)
		default:
			m.logger.Info("Request", fields...)
		}
	})
}

// RateLimit applies a global token-bucket rate limit
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.config.RateLimit.Enabled && !m.limiter.Allow() {
			writeError(w, r, errors.NewAppError(errors.CodeTooManyRequests, "Too many requests", ""))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Authenticate validates the bearer token and stores the user id in
// the request context. Requests without a valid token are rejected.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeError(w, r, errors.NewUnauthorizedError(""))
			return
		}

		userID, err := m.tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, r, errors.NewUnauthorizedError("Invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Instrument records prometheus request metrics
func (m *Middleware) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := strconv.Itoa(ww.Status())
		m.metrics.RequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		m.metrics.RequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// UserID extracts the authenticated user id from the request context.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}

// WithUserID returns a context carrying the user id; exposed for tests.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func writeError(w http.ResponseWriter, r *http.Request, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	_ = json.NewEncoder(w).Encode(errors.ToErrorResponse(appErr, chimiddleware.GetReqID(r.Context())))
}

// Metrics holds the prometheus collectors for HTTP traffic
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics registers and returns the HTTP metrics
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pantrywise_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pantrywise_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
