package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/ops-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/ops-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/saml"
	"github.com/cmlabs-hris/ops-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/ops-backend-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/ops-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/ops-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/ops-backend-go/internal/service/employee"
	projectService "github.com/cmlabs-hris/ops-backend-go/internal/service/project"
	regularizationService "github.com/cmlabs-hris/ops-backend-go/internal/service/regularization"
	reportService "github.com/cmlabs-hris/ops-backend-go/internal/service/report"
	timesheetService "github.com/cmlabs-hris/ops-backend-go/internal/service/timesheet"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(envFiles()...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := appHTTP.NewLogger(os.Stdout, Version, cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if migrateOnStart {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	router, scheduler, err := buildApp(ctx, cfg, db, logger)
	if err != nil {
		return err
	}

	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	slog.Info("Server exited")
	return nil
}

// buildApp wires repositories, services and handlers into the router.
func buildApp(ctx context.Context, cfg *config.Config, db *database.DB, logger *slog.Logger) (http.Handler, *cron.Scheduler, error) {
	loc := cfg.Location()

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	regularizationRepo := postgresql.NewRegularizationRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	referenceRepo := postgresql.NewReferenceRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(jwt.Options{
		Secret:            cfg.JWT.Secret,
		AccessExpiration:  cfg.JWT.AccessExpiration,
		RefreshExpiration: cfg.JWT.RefreshExpiration,
		SecureCookies:     cfg.IsProduction(),
	})

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize email service: %w", err)
	}

	// Left as a nil interface when disabled; the handler checks for nil.
	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	var samlProvider appHTTP.SAMLProvider
	if cfg.SAML.Enabled {
		provider, err := saml.New(ctx, cfg.SAML)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize SAML provider: %w", err)
		}
		samlProvider = provider
	}

	authSvc := authService.NewAuthService(tx, userRepo, refreshTokenRepo, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, userRepo, loc)
	regularizationSvc := regularizationService.NewRegularizationService(tx, regularizationRepo, attendanceRepo, loc)
	timesheetSvc := timesheetService.NewTimesheetService(tx, timesheetRepo, referenceRepo)
	projectSvc := projectService.NewProjectService(tx, projectRepo, taskRepo)
	employeeSvc := employeeService.NewEmployeeService(tx, userRepo, emailService, cfg.App.FrontendURL+"/login")
	reportSvc := reportService.NewReportService(reportRepo, loc)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, loc)

	handlers := appHTTP.Handlers{
		Auth:           appHTTP.NewAuthHandler(JWTService, authSvc, googleService, cfg.App.FrontendURL, cfg.IsProduction()),
		Attendance:     appHTTP.NewAttendanceHandler(attendanceSvc),
		Regularization: appHTTP.NewRegularizationHandler(regularizationSvc),
		Timesheet:      appHTTP.NewTimesheetHandler(timesheetSvc),
		Project:        appHTTP.NewProjectHandler(projectSvc),
		Employee:       appHTTP.NewEmployeeHandler(employeeSvc),
		Report:         appHTTP.NewReportHandler(reportSvc),
		Dashboard:      appHTTP.NewDashboardHandler(dashboardSvc),
	}

	router := appHTTP.NewRouter(JWTService, handlers, appHTTP.RouterOptions{
		Logger:         logger,
		CORSOrigins:    cfg.App.CORSOrigins,
		MetricsEnabled: cfg.Metrics.Enabled,
		Debug:          !cfg.IsProduction(),
		SAML:           samlProvider,
		Ping:           db.Ping,
	})

	scheduler := cron.NewScheduler()
	cron.NewTokenJobs(refreshTokenRepo, cfg.JWT.TokenRetention).RegisterJobs(scheduler)

	return router, scheduler, nil
}
