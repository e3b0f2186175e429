package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/Strob0t/Workboard/internal/adapter/bcrypt"
	wbhttp "github.com/Strob0t/Workboard/internal/adapter/http"
	"github.com/Strob0t/Workboard/internal/adapter/jwt"
	wbnats "github.com/Strob0t/Workboard/internal/adapter/nats"
	"github.com/Strob0t/Workboard/internal/adapter/natskv"
	wbotel "github.com/Strob0t/Workboard/internal/adapter/otel"
	"github.com/Strob0t/Workboard/internal/adapter/postgres"
	"github.com/Strob0t/Workboard/internal/adapter/ristretto"
	"github.com/Strob0t/Workboard/internal/adapter/tiered"
	"github.com/Strob0t/Workboard/internal/config"
	"github.com/Strob0t/Workboard/internal/logger"
	"github.com/Strob0t/Workboard/internal/middleware"
	"github.com/Strob0t/Workboard/internal/port/cache"
	"github.com/Strob0t/Workboard/internal/resilience"
	"github.com/Strob0t/Workboard/internal/secrets"
	"github.com/Strob0t/Workboard/internal/service"
)

const (
	shutdownTimeout = 10 * time.Second

	envJWTSecret         = "JWT_SECRET"
	envJWTSecretPrevious = "JWT_SECRET_PREVIOUS"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "admin" {
		if err := runAdmin(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	appLogger, closeLog := logger.New(cfg.Logging)
	defer closeLog.Close()
	slog.SetDefault(appLogger)

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
		"cache_mb", cfg.Cache.L1MaxSizeMB,
		"nats", cfg.NATS.URL != "",
		"otel", cfg.OTEL.Endpoint != "",
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Observability ---

	shutdownOTEL, err := wbotel.Setup(ctx, cfg.OTEL, cfg.Logging.Service)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTEL(sctx); err != nil {
			slog.Warn("otel shutdown", "error", err)
		}
	}()
	metrics, err := wbotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("otel metrics: %w", err)
	}

	// --- Infrastructure ---

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	store := postgres.NewStore(pool)
	hasher := bcrypt.New(cfg.Auth.BcryptCost)

	// Signing keys are reloaded from the environment on SIGHUP.
	keys, err := secrets.NewVault(secrets.WithDefaults(
		map[string]string{envJWTSecret: cfg.Auth.JWTSecret},
		secrets.EnvLoader(envJWTSecret, envJWTSecretPrevious),
	), envJWTSecret)
	if err != nil {
		return fmt.Errorf("secrets: %w", err)
	}
	tokens := jwt.NewRotating(func() ([]byte, []byte) {
		return keys.Bytes(envJWTSecret), keys.Bytes(envJWTSecretPrevious)
	}, cfg.Auth.Issuer)

	// --- Services ---

	auditSvc := service.NewAuditService(store)
	authSvc := service.NewAuthService(store, hasher, tokens, cfg.Auth.TokenExpiry)
	tenantSvc := service.NewTenantService(store, hasher, auditSvc)
	userSvc := service.NewUserService(store, hasher, auditSvc)
	projectSvc := service.NewProjectService(store, auditSvc)
	taskSvc := service.NewTaskService(store, auditSvc)

	auditSvc.SetMetrics(metrics)
	authSvc.SetMetrics(metrics)
	tenantSvc.SetMetrics(metrics)
	userSvc.SetMetrics(metrics)
	projectSvc.SetMetrics(metrics)

	routeOpts := wbhttp.RouteOptions{
		AuthLimiter: middleware.NewRateLimiter(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst),
	}
	stopCleanup := routeOpts.AuthLimiter.StartCleanup(cfg.Rate.CleanupInterval, cfg.Rate.MaxIdleTime)
	defer stopCleanup()

	var queue *wbnats.Queue
	if cfg.NATS.URL != "" {
		queue, err = wbnats.Connect(ctx, cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("nats: %w", err)
		}
		defer func() {
			if err := queue.Drain(); err != nil {
				slog.Warn("nats drain", "error", err)
			}
		}()
		breaker := resilience.NewBreaker("audit-mirror", cfg.Breaker.MaxFailures, cfg.Breaker.Timeout,
			resilience.WithStateChange(func(name string, from, to resilience.State) {
				slog.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			}))
		auditSvc.SetQueue(queue, breaker)
	}

	if cfg.Cache.L1MaxSizeMB > 0 {
		l1, err := ristretto.New(cfg.Cache.L1MaxSizeMB << 20)
		if err != nil {
			return fmt.Errorf("cache: %w", err)
		}
		defer l1.Close()

		var c cache.Cache = l1
		if queue != nil && cfg.Cache.SharedBucket != "" {
			kv, err := queue.KeyValue(ctx, cfg.Cache.SharedBucket, max(cfg.Cache.TTL, cfg.Cache.IdempotencyTTL))
			if err != nil {
				return fmt.Errorf("shared cache: %w", err)
			}
			c = tiered.New(l1, natskv.New(kv), cfg.Cache.TTL)
			slog.Info("shared cache enabled", "bucket", cfg.Cache.SharedBucket)
		}
		authSvc.SetCache(c, cfg.Cache.TTL)
		routeOpts.Idempotency = middleware.Idempotency(c, cfg.Cache.IdempotencyTTL)
		slog.Info("cache enabled", "max_mb", cfg.Cache.L1MaxSizeMB)
	}

	if cfg.Auth.SuperAdminEmail != "" && cfg.Auth.SuperAdminPassword != "" {
		created, err := authSvc.SeedSuperAdmin(ctx, cfg.Auth.SuperAdminEmail, cfg.Auth.SuperAdminPassword, "")
		if err != nil {
			return fmt.Errorf("seed super admin: %w", err)
		}
		if created {
			slog.Info("super admin created", "email", cfg.Auth.SuperAdminEmail)
		}
	}

	// --- HTTP ---

	handlers := &wbhttp.Handlers{
		Auth:         authSvc,
		Tenants:      tenantSvc,
		Users:        userSvc,
		Projects:     projectSvc,
		Tasks:        taskSvc,
		Audit:        auditSvc,
		DB:           store,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.Server.RequestTimeout))
	r.Use(wbhttp.Logger)
	r.Use(wbhttp.SecurityHeaders)
	r.Use(wbhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(wbotel.HTTPMiddleware(cfg.Logging.Service))

	wbhttp.MountRoutes(r, handlers, routeOpts)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Server.RequestTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-hup:
				if err := keys.Reload(); err != nil {
					slog.Error("signing key reload failed", "error", err)
					continue
				}
				slog.Info("signing keys reloaded", "previous_key", keys.Get(envJWTSecretPrevious) != "")
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
