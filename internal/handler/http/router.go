package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/hemloeth/attendance/internal/config"
	"github.com/hemloeth/attendance/internal/domain/user"
	"github.com/hemloeth/attendance/internal/handler/http/middleware"
	"github.com/hemloeth/attendance/internal/pkg/jwt"
)

type RouterDeps struct {
	Config         *config.Config
	JWTService     jwt.Service
	UserRepository user.UserRepository
	AuthHandler    AuthHandler
	WorkLogHandler WorkLogHandler
	ReportHandler  ReportHandler
	MetricsHandler http.Handler
	RateLimiter    *middleware.RateLimiter
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", deps.Config.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.Config.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Get("/login/google", deps.AuthHandler.LoginWithGoogle)
			r.Get("/callback/google", deps.AuthHandler.OAuthCallbackGoogle)
			r.Post("/refresh", deps.AuthHandler.RefreshToken)
			r.Post("/logout", deps.AuthHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))
			r.Use(deps.RateLimiter.Middleware())

			r.Route("/work", func(r chi.Router) {
				r.Post("/start", deps.WorkLogHandler.Start)
				r.Post("/end", deps.WorkLogHandler.End)
				r.Post("/week-off", deps.WorkLogHandler.WeekOff)
				r.Get("/logs", deps.WorkLogHandler.MyLogs)
			})

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminRequired(deps.UserRepository))

				r.Get("/daily-logs", deps.ReportHandler.DailyLogs)
				r.Route("/monthly-reports", func(r chi.Router) {
					r.Get("/", deps.ReportHandler.MonthlyReports)
					r.Get("/export", deps.ReportHandler.ExportMonthlyReports)
				})
			})
		})
	})

	return r
}
