package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/hospiflow/internal/config"
	"github.com/jwalitptl/hospiflow/internal/handler"
	authhandler "github.com/jwalitptl/hospiflow/internal/handler/auth"
	chathandler "github.com/jwalitptl/hospiflow/internal/handler/chat"
	"github.com/jwalitptl/hospiflow/internal/handler/dashboard"
	hospitalhandler "github.com/jwalitptl/hospiflow/internal/handler/hospital"
	inpatienthandler "github.com/jwalitptl/hospiflow/internal/handler/inpatient"
	labhandler "github.com/jwalitptl/hospiflow/internal/handler/laboratory"
	"github.com/jwalitptl/hospiflow/internal/handler/outpatient"
	overviewhandler "github.com/jwalitptl/hospiflow/internal/handler/overview"
	pharmacyhandler "github.com/jwalitptl/hospiflow/internal/handler/pharmacy"
	staffhandler "github.com/jwalitptl/hospiflow/internal/handler/staff"
	"github.com/jwalitptl/hospiflow/internal/jobs"
	"github.com/jwalitptl/hospiflow/internal/middleware"
	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/repository"
	"github.com/jwalitptl/hospiflow/internal/repository/memory"
	"github.com/jwalitptl/hospiflow/internal/repository/postgres"
	redisrepo "github.com/jwalitptl/hospiflow/internal/repository/redis"
	"github.com/jwalitptl/hospiflow/internal/router"
	authService "github.com/jwalitptl/hospiflow/internal/service/auth"
	chatService "github.com/jwalitptl/hospiflow/internal/service/chat"
	eventService "github.com/jwalitptl/hospiflow/internal/service/event"
	hospitalService "github.com/jwalitptl/hospiflow/internal/service/hospital"
	inpatientService "github.com/jwalitptl/hospiflow/internal/service/inpatient"
	laboratoryService "github.com/jwalitptl/hospiflow/internal/service/laboratory"
	overviewService "github.com/jwalitptl/hospiflow/internal/service/overview"
	patientService "github.com/jwalitptl/hospiflow/internal/service/patient"
	pharmacyService "github.com/jwalitptl/hospiflow/internal/service/pharmacy"
	rbacService "github.com/jwalitptl/hospiflow/internal/service/rbac"
	staffService "github.com/jwalitptl/hospiflow/internal/service/staff"
	"github.com/jwalitptl/hospiflow/pkg/logger"
	"github.com/jwalitptl/hospiflow/pkg/messaging"
	memorybroker "github.com/jwalitptl/hospiflow/pkg/messaging/memory"
	redisbroker "github.com/jwalitptl/hospiflow/pkg/messaging/redis"
	"github.com/jwalitptl/hospiflow/pkg/metrics"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	return cmd
}

func runServe(cfg *config.Config) error {
	appLog := logger.NewLogger(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
	})
	log.Logger = appLog.Zerolog()
	zl := appLog.Zerolog()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg, "hospiflow")

	sessions, err := newSessionRepository(ctx, cfg)
	if err != nil {
		return err
	}

	broker, err := newBroker(ctx, cfg, &zl)
	if err != nil {
		_ = sessions.Close()
		return err
	}
	defer broker.Close()

	events := eventService.NewService(broker, m, appLog)
	go func() {
		if err := events.Listen(ctx); err != nil && !errors.Is(err, context.Canceled) {
			appLog.Error(err, "event listener stopped")
		}
	}()

	store := memory.NewSeededStore(time.Now())

	authSvc, err := authService.NewService(authService.Config{
		JWTSecret:  cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		SessionTTL: cfg.Session.TTL,
		BcryptCost: cfg.Auth.BcryptCost,
	}, sessions, events, m, appLog)
	if err != nil {
		_ = sessions.Close()
		return fmt.Errorf("failed to initialise session store: %w", err)
	}
	defer authSvc.Close()

	rbacSvc := rbacService.NewService(m)
	patientSvc := patientService.NewService(store, store, store)
	staffSvc := staffService.NewService(store, events, m, appLog)
	pharmacySvc := pharmacyService.NewService(store, store, patientSvc, staffSvc, events)

	scheduler := jobs.NewScheduler(appLog)
	if cfg.Jobs.LowStockEnabled {
		job := jobs.NewLowStockJob(pharmacySvc, events, m, appLog)
		if err := scheduler.Add(cfg.Jobs.LowStockSchedule, job); err != nil {
			return err
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	modules := router.ModuleHandlers{
		model.ModuleOverview:   overviewhandler.NewHandler(overviewService.NewService(store)),
		model.ModuleHospital:   hospitalhandler.NewHandler(hospitalService.NewService(store, events)),
		model.ModuleStaff:      staffhandler.NewHandler(staffSvc),
		model.ModuleOutpatient: outpatient.NewHandler(patientSvc),
		model.ModuleInpatient:  inpatienthandler.NewHandler(inpatientService.NewService(store, patientSvc, events)),
		model.ModulePharmacy:   pharmacyhandler.NewHandler(pharmacySvc),
		model.ModuleLaboratory: labhandler.NewHandler(laboratoryService.NewService(store, patientSvc, events)),
		model.ModuleChat:       chathandler.NewHandler(chatService.NewService(store, events)),
	}

	mode := cfg.Server.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	r := router.NewRouter(
		middleware.NewAuthMiddleware(rbacSvc, authSvc),
		authhandler.NewHandler(authSvc),
		dashboard.NewHandler(rbacSvc),
		modules,
		handler.NewHandler(authSvc, rbacSvc, reg),
		router.RouterConfig{
			Mode:          mode,
			LoginRate:     middleware.PerMinute(cfg.RateLimit.LoginPerMinute),
			LoginBurst:    cfg.RateLimit.LoginBurst,
			CORSOrigins:   cfg.CORS.AllowedOrigins,
			MetricsPrefix: "hospiflow_http",
			Registerer:    reg,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLog.Info("server listening", "addr", srv.Addr, "session_backend", cfg.Session.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}

	appLog.Info("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	appLog.Info("server exited")
	return nil
}

func newSessionRepository(ctx context.Context, cfg *config.Config) (repository.SessionRepository, error) {
	switch strings.ToLower(cfg.Session.Backend) {
	case "redis":
		client, err := redisrepo.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return redisrepo.NewSessionRepository(client), nil
	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		repo, err := postgres.NewSessionRepository(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return repo, nil
	default:
		return memory.NewSessionRepository(cfg.Session.TTL), nil
	}
}

// newBroker uses Redis pub/sub when enabled so several instances share one
// event stream. Otherwise events stay in process.
func newBroker(ctx context.Context, cfg *config.Config, zl *zerolog.Logger) (messaging.Broker, error) {
	if !cfg.Redis.Enabled {
		return memorybroker.NewBroker(zl), nil
	}
	client, err := redisrepo.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	return redisbroker.NewRedisBroker(client, zl), nil
}
