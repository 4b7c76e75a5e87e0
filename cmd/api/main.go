package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samriddhi-018/infosys-LGD/internal/config"
	appHTTP "github.com/samriddhi-018/infosys-LGD/internal/handler/http"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/database"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/email"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/jwt"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/metrics"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/oauth"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/sse"
	"github.com/samriddhi-018/infosys-LGD/internal/repository/postgresql"
	serviceAuth "github.com/samriddhi-018/infosys-LGD/internal/service/auth"
	courseService "github.com/samriddhi-018/infosys-LGD/internal/service/course"
	dashboardService "github.com/samriddhi-018/infosys-LGD/internal/service/dashboard"
	feedbackService "github.com/samriddhi-018/infosys-LGD/internal/service/feedback"
	notificationService "github.com/samriddhi-018/infosys-LGD/internal/service/notification"
	requestService "github.com/samriddhi-018/infosys-LGD/internal/service/request"
	userService "github.com/samriddhi-018/infosys-LGD/internal/service/user"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := appHTTP.NewLogger(cfg.App.Env, cfg.App.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, "up"); err != nil {
			return err
		}
		slog.Info("database migrated")
	}

	// Repositories
	txManager := postgresql.NewTxManager(db)
	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	courseRepo := postgresql.NewCourseRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	feedbackRepo := postgresql.NewFeedbackRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	// Infrastructure
	m := metrics.New()
	hub := sse.NewHub()
	jwtSvc, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.App.Env == "production")
	if err != nil {
		return fmt.Errorf("invalid JWT configuration: %w", err)
	}
	var googleSvc oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleSvc = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}
	mailer, err := email.NewEmailService(cfg.Mail)
	if err != nil {
		return fmt.Errorf("error creating email service: %w", err)
	}

	// Services
	authSvc := serviceAuth.NewAuthService(txManager, userRepo, jwtSvc, jwtRepo, cfg.App.AdminRegistrationCode)
	userSvc := userService.NewUserService(userRepo)
	courseSvc := courseService.NewCourseService(txManager, courseRepo, mailer, hub, m)
	requestSvc := requestService.NewRequestService(requestRepo, m)
	notificationSvc := notificationService.NewNotificationService(notificationRepo, courseRepo)
	feedbackSvc := feedbackService.NewFeedbackService(feedbackRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, courseRepo, notificationRepo)

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		Logger:         logger,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		JWTService:     jwtSvc,
		Metrics:        m,
		Auth:           appHTTP.NewAuthHandler(jwtSvc, authSvc, googleSvc, cfg.App.FrontendURL),
		User:           appHTTP.NewUserHandler(userSvc),
		Course:         appHTTP.NewCourseHandler(courseSvc),
		Request:        appHTTP.NewRequestHandler(requestSvc),
		Feedback:       appHTTP.NewFeedbackHandler(feedbackSvc),
		Notification:   appHTTP.NewNotificationHandler(notificationSvc, hub),
		Dashboard:      appHTTP.NewDashboardHandler(dashboardSvc),
	})

	srv := newServer(ctx, fmt.Sprintf(":%d", cfg.App.Port), router)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newServer ties request contexts to ctx so open streams end when shutdown starts.
func newServer(ctx context.Context, addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}
