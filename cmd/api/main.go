package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/api/routes"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/audit"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/auth"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/bookings"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/expenses"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/feedback"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/feedinglogs"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/healthrecords"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/inquiries"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/listings"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/litters"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/otp"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/pigs"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/receipts"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/reports"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/sales"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/sows"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/supplies"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/users"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/config"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/logger"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/mailer"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/metrics"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/migrate"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gdb := dbClient.DB()
	mail := mailer.FromConfig(cfg.Mail, logg)

	userRepo := users.NewRepository(gdb)
	litterRepo := litters.NewRepository(gdb)
	pigRepo := pigs.NewRepository(gdb)
	supplyRepo := supplies.NewRepository(gdb)
	listingRepo := listings.NewRepository(gdb)
	bookingRepo := bookings.NewRepository(gdb)
	receiptRepo := receipts.NewRepository(gdb)

	// Constructor failures are configuration bugs, so collect them all and
	// fail the boot once instead of exiting on the first.
	var buildErr error

	auditService, err := audit.NewService(audit.NewRepository(gdb), userRepo)
	buildErr = multierr.Append(buildErr, err)

	otpService, err := otp.NewService(otp.NewRepository(gdb), dbClient, mail, cfg.OTP, cfg.JWT)
	buildErr = multierr.Append(buildErr, err)

	authService, err := auth.NewService(auth.ServiceParams{
		TxRunner:        dbClient,
		UserRepoFactory: auth.UserRepoProvider(gdb),
		Verifications:   otpService,
		JWTConfig:       cfg.JWT,
		PasswordConfig:  cfg.Password,
		AdminConfig:     cfg.Admin,
	})
	buildErr = multierr.Append(buildErr, err)

	litterService, err := litters.NewService(litterRepo, dbClient, auditService)
	buildErr = multierr.Append(buildErr, err)

	pigService, err := pigs.NewService(pigRepo, litterRepo, dbClient, auditService)
	buildErr = multierr.Append(buildErr, err)

	feedingLogService, err := feedinglogs.NewService(feedinglogs.NewRepository(gdb), litterRepo, dbClient, auditService)
	buildErr = multierr.Append(buildErr, err)

	sowService, err := sows.NewService(sows.NewRepository(gdb), dbClient, auditService)
	buildErr = multierr.Append(buildErr, err)

	supplyService, err := supplies.NewService(supplyRepo, dbClient, auditService)
	buildErr = multierr.Append(buildErr, err)

	expenseService, err := expenses.NewService(expenses.NewRepository(gdb), dbClient, auditService)
	buildErr = multierr.Append(buildErr, err)

	healthRecordService, err := healthrecords.NewService(healthrecords.NewRepository(gdb), pigRepo, supplyRepo, dbClient, auditService)
	buildErr = multierr.Append(buildErr, err)

	listingService, err := listings.NewService(listingRepo, pigRepo, dbClient)
	buildErr = multierr.Append(buildErr, err)

	bookingService, err := bookings.NewService(bookingRepo, pigRepo, listingRepo, receiptRepo, dbClient)
	buildErr = multierr.Append(buildErr, err)

	receiptService, err := receipts.NewService(receiptRepo, bookingRepo)
	buildErr = multierr.Append(buildErr, err)

	saleService, err := sales.NewService(sales.NewRepository(gdb), bookingRepo, listingRepo, dbClient, auditService)
	buildErr = multierr.Append(buildErr, err)

	feedbackService, err := feedback.NewService(feedback.NewRepository(gdb))
	buildErr = multierr.Append(buildErr, err)

	inquiryService, err := inquiries.NewService(inquiries.NewRepository(gdb))
	buildErr = multierr.Append(buildErr, err)

	reportService, err := reports.NewService(reports.NewRepository(gdb), reports.NewStatsSource(gdb))
	buildErr = multierr.Append(buildErr, err)

	if buildErr != nil {
		logg.Error(context.Background(), "failed to build services", buildErr)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	router := routes.NewRouter(
		cfg,
		logg,
		dbClient,
		redisClient,
		httpMetrics,
		metricsHandler,
		authService,
		otpService,
		pigService,
		litterService,
		feedingLogService,
		sowService,
		supplyService,
		expenseService,
		healthRecordService,
		listingService,
		bookingService,
		receiptService,
		saleService,
		feedbackService,
		inquiryService,
		reportService,
		auditService,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(context.Background(), "api server stopped")
}
