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

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/usecase"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/port"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/service"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/infrastructure/cache"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/infrastructure/config"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/infrastructure/kafka"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/infrastructure/notify"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/infrastructure/panel"
	pgRepo "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/infrastructure/persistence/postgres"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/infrastructure/telemetry"
	grpcPresentation "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/presentation/grpc"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/presentation/rest"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/auth"
	pkgkafka "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/kafka"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/money"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/observability"
	pkgpostgres "github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/postgres"
)

const memoryCacheRows = 1 << 16

func main() {
	if err := run(); err != nil {
		slog.Error("loanmatchd exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	logger.Info("starting loanmatchd",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"panel_source", cfg.Panel.Source,
	)

	// Tracing is optional.
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			SampleRatio: 1,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck
	recorder, err := telemetry.NewRecorder(meterProvider)
	if err != nil {
		return fmt.Errorf("init recorder: %w", err)
	}

	currency, err := money.NewCurrency(cfg.Currency)
	if err != nil {
		return fmt.Errorf("currency: %w", err)
	}

	// Panel source.
	var readiness []rest.ReadinessCheck
	var source port.PanelSource
	switch cfg.Panel.Source {
	case config.PanelSourceFile:
		source = panel.FileSource{Path: cfg.Panel.File}
	case config.PanelSourcePostgres:
		pgCfg := pkgpostgres.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Name,
			SSLMode:  cfg.DB.SSLMode,
			MaxConns: int32(cfg.DB.MaxConns),
		}
		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
		dbCancel()
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		logger.Info("connected to database")

		if err := pkgpostgres.RunMigrations(pgCfg.DSN(), pgRepo.Migrations, pgRepo.MigrationsDir); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		source = pgRepo.NewLenderPanelRepo(pool)
		readiness = append(readiness, rest.ReadinessCheck{
			Name:  "postgres",
			Check: func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
		})
	default:
		source = panel.BuiltinSource{}
	}

	store := panel.NewStore(nil)
	readiness = append(readiness, rest.ReadinessCheck{
		Name: "panel",
		Check: func(context.Context) error {
			_, err := store.Current()
			return err
		},
	})

	// Advisory delivery and domain events.
	notifiers := notify.Fanout{notify.NewLogNotifier(logger)}
	var publisher port.EventPublisher
	if cfg.Kafka.Enabled() {
		producer, err := pkgkafka.NewProducer(pkgkafka.Config{
			ClientID:      cfg.ServiceName,
			Brokers:       cfg.Kafka.Brokers,
			TLS:           cfg.Kafka.TLS,
			SASLEnabled:   cfg.Kafka.SASLMechanism != "",
			SASLMechanism: cfg.Kafka.SASLMechanism,
			SASLUsername:  cfg.Kafka.SASLUsername,
			SASLPassword:  cfg.Kafka.SASLPassword,
		})
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		defer func() { _ = producer.Close() }() //nolint:errcheck
		publisher = kafka.NewEventPublisher(producer, cfg.Kafka.EventsTopic, logger)
		notifiers = append(notifiers, kafka.NewAdvisoryNotifier(producer, cfg.Kafka.AdvisoryTopic, logger))
	}

	engine := service.NewEngine(store, notifiers)

	reloadUC := usecase.NewReloadPanelUseCase(source, store, publisher, recorder, logger)
	if _, err := reloadUC.Execute(ctx); err != nil {
		return fmt.Errorf("initial panel load: %w", err)
	}

	// Schedule cache.
	var scheduleCache port.ScheduleCache
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer func() { _ = client.Close() }() //nolint:errcheck
		scheduleCache = cache.NewRedisScheduleCache(client, cfg.ScheduleCacheTTL)
		readiness = append(readiness, rest.ReadinessCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
	} else {
		mem, err := cache.NewMemoryScheduleCache(memoryCacheRows, cfg.ScheduleCacheTTL)
		if err != nil {
			return fmt.Errorf("schedule cache: %w", err)
		}
		defer mem.Close()
		scheduleCache = mem
	}

	// Use cases.
	schedules := usecase.NewBuildScheduleUseCase(engine, scheduleCache, cache.ScheduleKey, recorder, currency, logger)
	warnings := usecase.NewCheckWarningsUseCase(engine, recorder, logger)
	evaluate := usecase.NewEvaluateApplicantUseCase(engine, schedules, warnings, service.NewFeeCalculator(currency), recorder, logger)
	computeScore := usecase.NewComputeScoreUseCase(engine)
	matchLenders := usecase.NewMatchLendersUseCase(engine)
	listLenders := usecase.NewListLendersUseCase(store)

	// gRPC server.
	grpcHandler := grpcPresentation.NewLoanMatchHandler(grpcPresentation.UseCases{
		ComputeScore:  computeScore,
		MatchLenders:  matchLenders,
		BuildSchedule: schedules,
		CheckWarnings: warnings,
		Evaluate:      evaluate,
		ListLenders:   listLenders,
	}, logger)
	grpcServer, err := grpcPresentation.NewServer(grpcHandler, grpcPresentation.ServerConfig{
		TLSCertFile: cfg.GRPCTLS.CertFile,
		TLSKeyFile:  cfg.GRPCTLS.KeyFile,
		Reflection:  cfg.GRPCReflection,
	}, logger)
	if err != nil {
		return fmt.Errorf("grpc server: %w", err)
	}

	// HTTP server. The admin reload route is only exposed behind operator
	// tokens.
	restUC := rest.UseCases{
		ComputeScore:  computeScore,
		MatchLenders:  matchLenders,
		BuildSchedule: schedules,
		CheckWarnings: warnings,
		Evaluate:      evaluate,
		ListLenders:   listLenders,
	}
	adminAuth, err := newAdminAuth(cfg.AdminAuth)
	if err != nil {
		return fmt.Errorf("admin auth: %w", err)
	}
	if adminAuth != nil {
		restUC.Reload = reloadUC
	} else {
		logger.Info("admin endpoints disabled: no ADMIN_JWT_SECRET or ADMIN_JWT_PUBLIC_KEY_FILE")
	}
	api := rest.NewLoanMatchHandler(restUC, logger).WithAdminAuth(adminAuth)
	health := rest.NewHealthHandler(cfg.ServiceName, logger, readiness...)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           rest.NewRouter(api, health, metricsHandler, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	if cfg.Panel.ReloadInterval > 0 {
		go reloadEvery(ctx, cfg.Panel.ReloadInterval, reloadUC, logger)
	}

	// Wait for shutdown signal.
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server error", "error", runErr)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("loanmatchd stopped")
	return runErr
}

func newAdminAuth(cfg config.AdminAuthConfig) (*auth.JWTService, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	jwtCfg := auth.JWTConfig{Secret: cfg.Secret, Issuer: cfg.Issuer}
	if cfg.PublicKeyFile != "" {
		pem, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(pem)
	}
	return auth.NewJWTService(jwtCfg)
}

// reloadEvery refreshes the panel until ctx is done. Failures keep the
// current panel and are retried on the next tick.
func reloadEvery(ctx context.Context, interval time.Duration, uc *usecase.ReloadPanelUseCase, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := uc.Execute(ctx); err != nil {
				logger.Warn("scheduled panel reload failed", "error", err)
			}
		}
	}
}
