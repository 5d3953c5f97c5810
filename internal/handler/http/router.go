package http

import (
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/mymbrcm/hr-portal-go/internal/config"
	"github.com/mymbrcm/hr-portal-go/internal/handler/http/middleware"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/jwt"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	policies *policy.Store,
	authHandler AuthHandler,
	requestHandler RequestHandler,
	leaveHandler LeaveHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	notificationHandler NotificationHandler,
	announcementHandler AnnouncementHandler,
	employeeHandler EmployeeHandler,
	policyHandler PolicyHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-portal"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  logLevel(cfg.App.LogLevel),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.GoogleLogin)
				r.Get("/google/callback", authHandler.GoogleCallback)
			})
		})

		// Authenticates via a short-lived token in the query string because
		// EventSource cannot set headers.
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/auth/sse-token", authHandler.SSEToken)

			r.Route("/requests", func(r chi.Router) {
				r.Post("/", requestHandler.Submit)
				r.Get("/queue", requestHandler.Queue)
				r.Get("/mine", requestHandler.Mine)
				r.Get("/{id}", requestHandler.Get)
				r.Post("/{id}/approve", requestHandler.Approve)
				r.Post("/{id}/reject", requestHandler.Reject)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Submit)
				r.Get("/balances", leaveHandler.Balances)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/history", attendanceHandler.History)
				r.Get("/summary", attendanceHandler.Summary)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/mine", payrollHandler.Mine)
				r.Get("/mine/{period}/download", payrollHandler.DownloadMine)

				// Executive only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ExecutiveOnly(policies))
					r.Post("/generate", payrollHandler.Generate)
					r.Get("/period/{period}", payrollHandler.ListByPeriod)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Patch("/{id}/read", notificationHandler.MarkRead)
				r.Patch("/read-all", notificationHandler.MarkAllRead)
			})

			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", announcementHandler.List)

				// Executive only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ExecutiveOnly(policies))
					r.Post("/", announcementHandler.Create)
					r.Delete("/{id}", announcementHandler.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", employeeHandler.Me)
				r.Put("/me/profile", employeeHandler.UpdateMyProfile)
				r.Post("/me/bank", employeeHandler.RequestBankUpdate)

				// Team leads and above
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireMinLevel(policies, 2))
					r.Get("/", employeeHandler.List)
					r.Get("/{id}", employeeHandler.Get)
				})

				// Executive only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ExecutiveOnly(policies))
					r.Put("/{id}/assignment", employeeHandler.UpdateAssignment)
				})
			})

			r.Route("/policy", func(r chi.Router) {
				r.Get("/", policyHandler.Get)

				// Executive only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ExecutiveOnly(policies))
					r.Put("/quotas", policyHandler.UpdateQuotas)
					r.Put("/shifts", policyHandler.UpdateShifts)
					r.Post("/departments", policyHandler.AddDepartment)
					r.Delete("/departments/{name}", policyHandler.RemoveDepartment)
				})
			})
		})
	})
	return r
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
