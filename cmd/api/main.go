package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mymbrcm/hr-portal-go/internal/config"
	appHTTP "github.com/mymbrcm/hr-portal-go/internal/handler/http"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/cron"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/database"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/jwt"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/oauth"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/sse"
	"github.com/mymbrcm/hr-portal-go/internal/pkg/storage"
	"github.com/mymbrcm/hr-portal-go/internal/policy"
	"github.com/mymbrcm/hr-portal-go/internal/repository/postgresql"
	announcementService "github.com/mymbrcm/hr-portal-go/internal/service/announcement"
	approvalService "github.com/mymbrcm/hr-portal-go/internal/service/approval"
	attendanceService "github.com/mymbrcm/hr-portal-go/internal/service/attendance"
	authService "github.com/mymbrcm/hr-portal-go/internal/service/auth"
	employeeService "github.com/mymbrcm/hr-portal-go/internal/service/employee"
	leaveService "github.com/mymbrcm/hr-portal-go/internal/service/leave"
	notificationService "github.com/mymbrcm/hr-portal-go/internal/service/notification"
	payrollService "github.com/mymbrcm/hr-portal-go/internal/service/payroll"
	requestService "github.com/mymbrcm/hr-portal-go/internal/service/request"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "hr-portal"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Pool.Close()

	userRepo := postgresql.NewUserRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	announcementRepo := postgresql.NewAnnouncementRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	hub := sse.NewHub()
	policies := policy.NewStore(policy.Default())

	notificationSvc := notificationService.NewService(logger, notificationRepo, hub)
	routerEvents := notificationService.NewRouterEvents(notificationSvc)

	resolver := approvalService.NewStageResolver(policies, userRepo)
	engine := approvalService.NewEngine(logger, policies, resolver, userRepo, requestRepo, routerEvents)

	requestSvc := requestService.NewService(logger, db, policies, engine, userRepo, requestRepo)
	leaveSvc := leaveService.NewService(logger, policies, userRepo, requestRepo, engine)
	attendanceSvc := attendanceService.NewService(logger, policies, attendanceRepo, userRepo, resolver, notificationSvc)
	payrollSvc := payrollService.NewService(logger, payrollRepo, userRepo, attendanceSvc, fileStorage)
	authSvc := authService.NewService(logger, userRepo, policies, jwtService, googleService, cfg.App.EmailDomain)
	employeeSvc := employeeService.NewService(logger, userRepo, policies, requestSvc)
	announcementSvc := announcementService.NewService(logger, announcementRepo, userRepo, notificationSvc)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	requestHandler := appHTTP.NewRequestHandler(requestSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, jwtService, hub)
	announcementHandler := appHTTP.NewAnnouncementHandler(announcementSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	policyHandler := appHTTP.NewPolicyHandler(policies)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		policies,
		authHandler,
		requestHandler,
		leaveHandler,
		attendanceHandler,
		payrollHandler,
		notificationHandler,
		announcementHandler,
		employeeHandler,
		policyHandler,
	)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("attendance-auto-checkout", time.Hour, func(ctx context.Context) error {
		// 28 hours back lands on a date whose shifts have all ended,
		// including the evening shift that crosses midnight.
		date := time.Now().Add(-28 * time.Hour).Format("2006-01-02")
		_, err := attendanceSvc.AutoCheckOut(ctx, date)
		return err
	})
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		logger.Info("server starting", slog.Int("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
	scheduler.Stop()
	notificationSvc.Stop()
}
