package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lms/internal/domain/calendar"
	"lms/internal/domain/identity"
	"lms/internal/domain/notify"
	"lms/internal/domain/reports"
	"lms/internal/domain/visibility"
	"lms/internal/domain/workflow"
	"lms/internal/platform/config"
	"lms/internal/platform/db"
	authhandler "lms/internal/transport/http/handlers/auth"
	eventshandler "lms/internal/transport/http/handlers/events"
	leavehandler "lms/internal/transport/http/handlers/leave"
	noticeshandler "lms/internal/transport/http/handlers/notices"
	"lms/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Pool    *pgxpool.Pool
	Router  http.Handler
	Notices *notify.Bus
}

// New wires stores, services and the router. With an empty
// DATABASE_URL everything runs on in-memory stores, which is how the
// journey tests exercise the full stack.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Notices: notify.New(cfg.NoticeTTL),
	}

	var (
		identityStore identity.StoreAPI
		calendarStore calendar.StoreAPI
		workflowStore workflow.StoreAPI
	)

	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.Pool = pool

		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				pool.Close()
				return nil, err
			}
		}
		if cfg.RunSeed {
			if err := db.Seed(ctx, pool, cfg); err != nil {
				pool.Close()
				return nil, err
			}
		}

		identityStore = identity.NewPGStore(pool)
		calendarStore = calendar.NewPGStore(pool)
		workflowStore = workflow.NewPGStore(pool)
	} else {
		identityStore = identity.NewMemStore()
		calendarStore = calendar.NewMemStore()
		workflowStore = workflow.NewMemStore()
	}

	identitySvc := identity.NewService(identityStore, app.Notices)
	calendarSvc := calendar.NewService(calendarStore, app.Notices)
	workflowSvc := workflow.NewService(workflowStore, calendarStore, app.Notices)
	visibilitySvc := visibility.NewService(workflowStore)
	reportsSvc := reports.NewService(workflowStore)

	isProd := cfg.Environment == "production"

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(isProd))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if app.Pool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := app.Pool.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(identitySvc, cfg.JWTSecret)
		r.Post("/auth/signup", authHandler.HandleSignup)
		r.Post("/auth/login", authHandler.HandleLogin)

		leavehandler.NewHandler(workflowSvc, visibilitySvc, reportsSvc).RegisterRoutes(r)
		eventshandler.NewHandler(calendarSvc).RegisterRoutes(r)
		noticeshandler.NewHandler(app.Notices).RegisterRoutes(r)
	})

	app.Router = router
	return app, nil
}

func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

func Run() {
	cfg := config.Load()

	ctx := context.Background()
	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	if cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL not set, using in-memory stores")
	}

	log.Printf("leave management server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
