package http

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/example/resort-backoffice/internal/logging"
)

// tenantHeader carries the tenant identifier on every request. There is no
// ambient tenant; requests without the header are rejected before any
// handler runs.
const tenantHeader = "X-Tenant-ID"

// ModuleChecker reports whether a module is enabled for a tenant.
type ModuleChecker interface {
	ModuleEnabled(tenantID, module string) bool
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger attaches a per-request zap logger to the context and emits
// start/finish entries with the outcome status and duration.
func RequestLogger(base *zap.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = zap.NewNop()
	}
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := counter.Add(1)
			logger := base.With(
				zap.Uint64("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)

			ctx := logging.ContextWithLogger(r.Context(), logger)
			recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

			start := time.Now()
			logger.Info("request started")
			next.ServeHTTP(recorder, r.WithContext(ctx))
			logger.Info("request completed",
				zap.Int("status", recorder.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// RequireTenant extracts the tenant header and stores it on the context,
// rejecting requests that omit it.
func RequireTenant(logger *zap.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID := strings.TrimSpace(r.Header.Get(tenantHeader))
			if tenantID == "" {
				responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingTenant)
				return
			}

			ctx := ContextWithTenant(r.Context(), tenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ModuleGate blocks the request with 403 when the named module is not part of
// the tenant's subscription. It must run after RequireTenant.
func ModuleGate(checker ModuleChecker, module string, logger *zap.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID := TenantFromContext(r.Context())
			if checker != nil && !checker.ModuleEnabled(tenantID, module) {
				responder.writeError(r.Context(), w, http.StatusForbidden, errModuleDisabled)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
