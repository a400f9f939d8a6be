package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/ops-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ops-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/ops-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ops-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type Handlers struct {
	Auth           AuthHandler
	Attendance     AttendanceHandler
	Regularization RegularizationHandler
	Timesheet      TimesheetHandler
	Project        ProjectHandler
	Employee       EmployeeHandler
	Report         ReportHandler
	Dashboard      DashboardHandler
}

// SAMLProvider serves SP endpoints and guards the SAML login route.
type SAMLProvider interface {
	http.Handler
	RequireAccount(next http.Handler) http.Handler
}

type RouterOptions struct {
	Logger         *slog.Logger
	CORSOrigins    []string
	MetricsEnabled bool
	// Debug adds error chains to error responses.
	Debug bool
	// SAML is nil when SAML sign-in is disabled.
	SAML SAMLProvider
	// Ping reports database health for /healthz.
	Ping func(ctx context.Context) error
}

// NewLogger builds the JSON slog logger shared by the app and the access log.
func NewLogger(w io.Writer, version, env, level string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       parseLevel(level),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ops-backend"),
		slog.String("version", version),
		slog.String("env", env),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	response.SetDebug(opts.Debug)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}
	if opts.MetricsEnabled {
		r.Use(metrics.Middleware)
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", healthz(opts.Ping))
		if opts.MetricsEnabled {
			r.Handle("/metrics", metrics.Handler())
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/google/callback", h.Auth.OAuthCallbackGoogle)
			if opts.SAML != nil {
				r.Method(http.MethodGet, "/saml/login", opts.SAML.RequireAccount(http.HandlerFunc(h.Auth.LoginWithSAML)))
			}
		})
		if opts.SAML != nil {
			r.Handle("/saml/*", opts.SAML)
		}

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(middleware.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/auth/me", h.Auth.Me)
			r.Get("/dashboard", h.Dashboard.GetDashboard)

			r.Route("/attendance", func(r chi.Router) {
				r.Route("/me", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceSelf))
					r.Get("/today", h.Attendance.GetToday)
					r.Post("/clock-in", h.Attendance.ClockIn)
					r.Post("/clock-out", h.Attendance.ClockOut)
					r.Get("/history", h.Attendance.History)
					r.Post("/regularization", h.Regularization.Create)
					r.Get("/regularizations", h.Regularization.ListMine)
				})
				r.With(middleware.RequirePermission(user.PermissionAttendanceTeam)).Get("/team", h.Attendance.Team)
				r.With(middleware.RequirePermission(user.PermissionAttendanceWrite)).Put("/team/{userId}", h.Attendance.Upsert)
			})

			r.Route("/regularizations", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionApprovalReview))
				r.Get("/", h.Regularization.List)
				r.Post("/{id}/decision", h.Regularization.Decide)
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Route("/me", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTimesheetSelf))
					r.Get("/", h.Timesheet.GetWeek)
					r.Post("/save", h.Timesheet.SaveWeek)
					r.Post("/submit", h.Timesheet.SubmitWeek)
					r.Delete("/entries/{id}", h.Timesheet.DeleteEntry)
				})
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionApprovalReview))
					r.Get("/", h.Timesheet.List)
					r.Post("/{id}/decision", h.Timesheet.Review)
				})
			})

			r.Route("/projects", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionProjectView)).Get("/", h.Project.ListProjects)
				r.With(middleware.RequirePermission(user.PermissionProjectManage)).Post("/", h.Project.CreateProject)
				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionProjectView)).Get("/", h.Project.GetProject)
					r.With(middleware.RequirePermission(user.PermissionProjectManage)).Put("/", h.Project.UpdateProject)
					r.With(middleware.RequirePermission(user.PermissionProjectView)).Get("/tasks", h.Project.ListTasks)
					r.With(middleware.RequirePermission(user.PermissionProjectManage)).Post("/tasks", h.Project.CreateTask)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionProjectView)).Get("/me", h.Project.ListMyTasks)
				r.With(middleware.RequirePermission(user.PermissionTaskMoveOwn)).Patch("/{id}/status", h.Project.MoveTask)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionProjectManage))
					r.Put("/{id}", h.Project.UpdateTask)
					r.Delete("/{id}", h.Project.DeleteTask)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeView)).Get("/", h.Employee.ListEmployees)
				r.With(middleware.RequirePermission(user.PermissionEmployeeView)).Get("/{id}", h.Employee.GetEmployee)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Patch("/{id}/active", h.Employee.SetActive)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/attendance", h.Report.Attendance)
				r.Get("/timesheets", h.Report.Timesheets)
				r.Get("/overview", h.Report.Overview)
				r.Get("/{kind}/export", h.Report.Export)
			})
		})
	})
	return r
}

func healthz(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				slog.Error("health check failed", "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		response.Success(w, map[string]string{"status": "ok"})
	}
}
