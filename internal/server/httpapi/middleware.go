package httpapi

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/nutriscan/internal/common"
	"github.com/dmitrijs2005/nutriscan/internal/logging"
	"github.com/dmitrijs2005/nutriscan/internal/server/auth"
	"github.com/dmitrijs2005/nutriscan/internal/server/metrics"
	"github.com/dmitrijs2005/nutriscan/internal/server/ratelimit"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Logging writes one structured line per request.
func Logging(logger logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", chimiddleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// Metrics records request count and latency, labelled by route pattern to
// keep cardinality bounded.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.ObserveHTTPRequest(r.Method, routePattern(r), strconv.Itoa(status), time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return "unmatched"
}

// CORS returns a configured CORS middleware handler.
func CORS() func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// RateLimit caps requests per client IP on one route. A limit of 0 or a nil
// limiter disables it.
func RateLimit(limiter ratelimit.Limiter, route string, limit int, window time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 || limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			d := limiter.Allow(r.Context(), route+":"+clientIP(r), limit, window)

			remaining := limit - d.Count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !d.WindowEnd.IsZero() {
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.WindowEnd.Unix(), 10))
			}

			if !d.Allowed {
				retry := int(time.Until(d.WindowEnd).Seconds()) + 1
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				metrics.IncRateLimitHits(route)
				Error(w, ErrRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the host part of RemoteAddr, which chi's RealIP
// middleware has already rewritten from proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		host = "unknown"
	}
	return "ip:" + host
}

// sessionToken reads "Authorization: Bearer <token>", falling back to the
// session_token header.
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, common.SessionTokenScheme+" "); ok {
			return strings.TrimSpace(tok)
		}
	}
	return r.Header.Get(common.SessionTokenHeaderName)
}

// RequireSessionToken rejects requests without a valid session token. When
// ownerParam is set, the token must also belong to the account named by that
// URL parameter.
func RequireSessionToken(secret []byte, ownerParam string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := sessionToken(r)
			if tok == "" {
				Error(w, ErrUnauthorized.WithMessage("missing session token"))
				return
			}

			userID, err := auth.GetUserIDFromToken(tok, secret)
			if err != nil {
				Error(w, ErrUnauthorized.WithMessage("invalid session token"))
				return
			}

			if ownerParam != "" && chi.URLParam(r, ownerParam) != userID {
				Error(w, ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
