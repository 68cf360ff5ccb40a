package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/swishlytics/swish-api/internal/ranking"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check all dependencies
	checks := map[string]bool{
		"postgres":   h.pg != nil && h.pg.Ping(ctx) == nil,
		"clickhouse": h.ch != nil && h.ch.Ping(ctx) == nil,
		"redis":      h.redis != nil && h.redis.Ping(ctx).Err() == nil,
	}

	allHealthy := true
	for name, ok := range checks {
		if !ok {
			allHealthy = false
			h.logger.Warnw("Readiness check failed", "dependency", name)
		}
	}

	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}
	h.jsonResponse(w, status, map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	})
}

// RateLimit rejects clients over their request budget with 429. Limiter
// failures are logged and the request goes through.
func (h *Handler) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		client := clientIP(r)
		d, err := h.limiter.Allow(r.Context(), client)
		if err != nil {
			h.logger.Warnw("Rate limiter unavailable, allowing request", "client", client, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		if !d.Allowed {
			rateLimitRejections.Inc()
			retry := d.RetryAfter(time.Now())
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
			h.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from RemoteAddr. chi's RealIP middleware has
// already replaced it with the forwarded address when present.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

var errDirWithoutSort = errors.New("dir requires sort")

// sortDirective turns ?sort=&dir= into a directive. No sort means rank order.
// A sort without dir uses the field's default direction.
func sortDirective(sort, dir string) (*ranking.SortDirective, error) {
	if sort == "" {
		if dir != "" {
			return nil, errDirWithoutSort
		}
		return nil, nil
	}
	key, ok := ranking.ParseStatKey(sort)
	if !ok {
		return nil, errors.New("unknown sort field: " + sort)
	}
	d := &ranking.SortDirective{Field: key, Direction: ranking.DefaultDirection(key)}
	if dir != "" {
		parsed, ok := ranking.ParseDirection(dir)
		if !ok {
			return nil, errors.New("invalid dir: " + dir)
		}
		d.Direction = parsed
	}
	return d, nil
}

// validationMessage flattens validator errors into one line for the client.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return "invalid " + fe.Field() + ": failed " + fe.Tag() + " check"
	}
	return err.Error()
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}
