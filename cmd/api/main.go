package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hemloeth/attendance/internal/config"
	appHTTP "github.com/hemloeth/attendance/internal/handler/http"
	"github.com/hemloeth/attendance/internal/handler/http/middleware"
	"github.com/hemloeth/attendance/internal/pkg/database"
	"github.com/hemloeth/attendance/internal/pkg/jwt"
	"github.com/hemloeth/attendance/internal/pkg/metrics"
	"github.com/hemloeth/attendance/internal/pkg/oauth"
	"github.com/hemloeth/attendance/internal/repository/postgresql"
	authService "github.com/hemloeth/attendance/internal/service/auth"
	reportService "github.com/hemloeth/attendance/internal/service/report"
	worklogService "github.com/hemloeth/attendance/internal/service/worklog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	if err := database.RunMigrations(cfg.MigrateURL()); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	userRepo := postgresql.NewUserRepository(db)
	workLogRepo := postgresql.NewWorkLogRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	authSvc := authService.NewAuthService(db, userRepo, JWTService, refreshTokenRepo, collector)
	worklogSvc := worklogService.NewWorkLogService(db, workLogRepo, userRepo, location, collector)
	reportSvc := reportService.NewReportService(workLogRepo, userRepo, location, collector)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	defer rateLimiter.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		Config:         cfg,
		JWTService:     JWTService,
		UserRepository: userRepo,
		AuthHandler:    appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL),
		WorkLogHandler: appHTTP.NewWorkLogHandler(worklogSvc),
		ReportHandler:  appHTTP.NewReportHandler(reportSvc),
		MetricsHandler: metrics.Handler(registry),
		RateLimiter:    rateLimiter,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
