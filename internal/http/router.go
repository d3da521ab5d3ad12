package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// RouterConfig collects the handlers and cross-cutting settings the router
// needs.
type RouterConfig struct {
	Shifts         *ShiftHandler
	Staff          *StaffHandler
	Modules        ModuleChecker
	Logger         *zap.Logger
	RateLimit      int
	AllowedOrigins []string
}

// NewRouter assembles the API router. Tenant extraction and the shifts module
// gate wrap every business route; health stays outside both.
func NewRouter(cfg RouterConfig) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(RequestLogger(cfg.Logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", tenantHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.RateLimit > 0 {
		router.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(api chi.Router) {
		api.Use(RequireTenant(cfg.Logger))
		api.Use(ModuleGate(cfg.Modules, "shifts", cfg.Logger))

		if cfg.Shifts != nil {
			api.Route("/shifts", func(shifts chi.Router) {
				shifts.Get("/", cfg.Shifts.List)
				shifts.Post("/", cfg.Shifts.Create)
				shifts.Post("/bulk/status", cfg.Shifts.BulkStatus)
				shifts.Post("/bulk/delete", cfg.Shifts.BulkDelete)
				shifts.Delete("/date/{date}", cfg.Shifts.DeleteForDate)
				shifts.Put("/{shiftID}", cfg.Shifts.Update)
				shifts.Delete("/{shiftID}", cfg.Shifts.Delete)
				shifts.Post("/{shiftID}/reschedule", cfg.Shifts.Reschedule)
			})
			api.Get("/calendar/{year}/{month}", cfg.Shifts.Calendar)
		}

		if cfg.Staff != nil {
			api.Get("/staff", cfg.Staff.List)
			api.Get("/staff/{staffID}", cfg.Staff.Get)
		}
	})

	return router
}
