package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kantorhq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kantorhq/hrms-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)

				r.Route("/my", func(r chi.Router) {
					r.Get("/", attendanceHandler.GetMyAttendance)
					r.Get("/summary", attendanceHandler.Summary)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", attendanceHandler.List)
					r.Post("/", attendanceHandler.Create)
					r.Get("/{id}", attendanceHandler.Get)
					r.Put("/{id}", attendanceHandler.Update)
					r.Delete("/{id}", attendanceHandler.Delete)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Route("/requests", func(r chi.Router) {
					r.Post("/", leaveHandler.CreateRequest)
					r.Get("/my", leaveHandler.ListMyRequests)
					r.Get("/{id}", leaveHandler.GetRequest)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Get("/", leaveHandler.ListRequests)
						r.Post("/{id}/approve", leaveHandler.Approve)
						r.Post("/{id}/reject", leaveHandler.Reject)
					})
				})

				r.Route("/balance", func(r chi.Router) {
					r.Get("/my", leaveHandler.MyBalance)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Get("/{employeeID}", leaveHandler.EmployeeBalance)
					})
				})
				r.Get("/calendar/my", leaveHandler.MyCalendar)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/my", dashboardHandler.GetDashboard)
			})
		})
	})
	return r
}
