package http

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
	"github.com/samriddhi-018/infosys-LGD/internal/handler/http/middleware"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/jwt"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/metrics"
)

const apiVersion = "v1.0.0"

// RouterDeps carries everything NewRouter mounts.
type RouterDeps struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	JWTService     jwt.Service
	Metrics        *metrics.Metrics

	Auth         AuthHandler
	User         UserHandler
	Course       CourseHandler
	Request      RequestHandler
	Feedback     FeedbackHandler
	Notification NotificationHandler
	Dashboard    DashboardHandler
}

// NewLogger builds the JSON logger shared by the request logger and slog's default.
func NewLogger(env, level string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLevel(level),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "lgd-portal"),
		slog.String("version", apiVersion),
		slog.String("env", env),
	)
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func NewRouter(d RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(d.Metrics.Middleware)

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.Auth.Register)
			r.Post("/login", d.Auth.Login)
			r.Post("/refresh", d.Auth.RefreshToken)
			r.Post("/logout", d.Auth.Logout)
			r.Get("/login/oauth/google", d.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", d.Auth.OAuthCallbackGoogle)
		})

		r.Route("/notifications", func(r chi.Router) {
			// EventSource cannot send headers, so the stream also accepts ?jwt=
			r.With(
				jwtauth.Verify(d.JWTService.JWTAuth(), jwtauth.TokenFromHeader, jwtauth.TokenFromQuery),
				middleware.AuthRequired,
			).Get("/stream", d.Notification.Stream)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(d.JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired)
				r.Get("/", d.Notification.List)
				r.Get("/unread-count", d.Notification.UnreadCount)
				r.Post("/{course_id}/read", d.Notification.MarkAsRead)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(d.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", d.User.Me)
				r.With(middleware.RequireAction(user.ActionGenerateCredentials)).Post("/credentials", d.User.GenerateCredentials)
			})

			r.Route("/courses", func(r chi.Router) {
				r.Get("/", d.Course.List)
				r.With(middleware.RequireAction(user.ActionCreateCourse)).Post("/", d.Course.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", d.Course.GetByID)
					r.Get("/progress", d.Course.GetProgress)
					// admin or the creator, decided by the service
					r.Post("/emails", d.Course.AddEmployeeEmails)
					r.With(middleware.RequireAction(user.ActionDeleteCourse)).Delete("/", d.Course.Delete)
				})
			})

			r.Post("/modules/{id}/completion", d.Course.ToggleModuleCompletion)

			r.Route("/progress", func(r chi.Router) {
				r.Get("/me", d.Course.MyProgress)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAction(user.ActionTrackProgress))
					r.Get("/tracking", d.Course.TrackProgress)
					r.Get("/summary", d.Course.ProgressSummary)
				})
			})

			r.Route("/requests", func(r chi.Router) {
				r.With(middleware.RequireAction(user.ActionViewAllRequests)).Get("/", d.Request.List)
				r.Get("/my", d.Request.ListMine)
				r.Post("/", d.Request.Submit)
				r.With(middleware.RequireAction(user.ActionHandleRequest)).Post("/{id}/handle", d.Request.Handle)
				r.With(middleware.RequireAction(user.ActionDeleteRequest)).Delete("/{id}", d.Request.Delete)
			})

			r.Route("/feedback", func(r chi.Router) {
				r.With(middleware.RequireAction(user.ActionSubmitFeedback)).Post("/", d.Feedback.Submit)
				r.With(middleware.RequireAction(user.ActionViewFeedback)).Get("/", d.Feedback.Report)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.With(middleware.RequireAction(user.ActionViewAdminDashboard)).Get("/admin", d.Dashboard.Admin)
				r.With(middleware.RequireAction(user.ActionViewManagerDashboard)).Get("/manager", d.Dashboard.Manager)
				r.With(middleware.RequireAction(user.ActionViewEmployeeDashboard)).Get("/employee", d.Dashboard.Employee)
			})
		})
	})
	return r
}
