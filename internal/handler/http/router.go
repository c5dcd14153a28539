package http

import (
	"log/slog"
	"os"

	"github.com/clockwise-hq/timekeep-backend-go/internal/handler/http/middleware"
	"github.com/clockwise-hq/timekeep-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Env              string
	AllowedOrigins   []string
	DeviceAPIKeyHash string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	timesheetHandler TimesheetHandler,
	overrideHandler OverrideHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timekeep"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Device-Key"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Device punch surface, authenticated by shared device key.
		r.Route("/punches", func(r chi.Router) {
			r.Use(middleware.DeviceKeyRequired(cfg.DeviceAPIKeyHash))
			r.Post("/clock-in", attendanceHandler.ClockIn)
			r.Post("/clock-out", attendanceHandler.ClockOut)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/timesheets", func(r chi.Router) {
				r.Get("/employees/{employeeID}", timesheetHandler.GetEmployeeMonth)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/departments/summary", timesheetHandler.GetDepartmentSummary)
				})
			})

			// Admin corrections
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/attendance-events", func(r chi.Router) {
					r.Post("/", attendanceHandler.CreateManualEvent)
					r.Delete("/{id}", attendanceHandler.Delete)
				})

				r.Route("/overrides", func(r chi.Router) {
					r.Post("/", overrideHandler.Create)
					r.Patch("/{id}", overrideHandler.Patch)
					r.Delete("/{id}", overrideHandler.Delete)
				})
			})
		})
	})
	return r
}
