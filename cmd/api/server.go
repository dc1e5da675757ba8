package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"sales_insights/internal/api/handlers/auth"
	"sales_insights/internal/api/handlers/transactions"
	mw "sales_insights/internal/api/middlewares"
	"sales_insights/internal/api/routers"
	"sales_insights/internal/config"
	"sales_insights/internal/messaging"
	"sales_insights/internal/repositories/sqlconnect"
	"sales_insights/internal/repositories/transactionstore"
	"sales_insights/internal/services"
	"sales_insights/pkg/cron"
	"sales_insights/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		utils.Logger.WithError(err).Warn("Failed to read .env file")
	}

	cfg := config.Load()
	utils.InitLogger(cfg.AppEnv, cfg.LogLevel, cfg.LogDir)

	if err := cfg.Validate(); err != nil {
		utils.Logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlconnect.ConnectDb(ctx, cfg.DB)
	if err != nil {
		utils.Logger.Fatal("DB connection failed: ", err)
	}
	defer db.Close()

	store := transactionstore.New(transactionstore.NewSQLRepository(db))
	if err := store.Load(ctx); err != nil {
		utils.Logger.Fatal("Loading transactions failed: ", err)
	}
	utils.Logger.WithField("records", store.Len()).Info("Transactions loaded")

	var publisher services.ImportPublisher
	if cfg.AMQPURL != "" {
		p, err := messaging.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
		if err != nil {
			utils.Logger.WithError(err).Warn("AMQP unavailable, import events disabled")
		} else {
			defer p.Close()
			publisher = p
		}
	}

	seeder := services.NewSeeder(services.NewSeedClient(cfg.SeedURL, cfg.SeedTimeout), store, publisher)
	analytics := services.NewAnalyticsService(store, cfg.StoreTimeout)

	if cfg.SeedOnStart {
		seedCtx, cancel := context.WithTimeout(ctx, cfg.SeedTimeout)
		if _, err := seeder.Initialize(seedCtx); err != nil {
			utils.Logger.WithError(err).Error("Initial import failed, serving stored transactions")
		}
		cancel()
	}

	if cfg.SeedCron != "" {
		var notify cron.FailureNotifier
		if cfg.AlertEmail != "" {
			notify = cron.MailNotifier(cfg.SMTP, cfg.AlertEmail)
		}
		c, err := cron.StartCronJob(cfg.SeedCron, seeder, cfg.SeedTimeout, notify)
		if err != nil {
			utils.Logger.Fatal(err)
		}
		defer c.Stop()
	}

	deps := routers.Dependencies{
		Transactions: transactions.NewHandler(analytics, seeder, cfg.SeedTimeout),
		Admin:        auth.NewAdminHandler(cfg.JWTSecret, cfg.AdminPasswordHash, cfg.TokenTTL),
		Store:        store,
	}
	if cfg.AdminAuthEnabled() {
		deps.InitializeGuard = mw.RequireAdmin(cfg.JWTSecret)
	} else {
		utils.Logger.Warn("JWT_SECRET/ADMIN_PASSWORD_HASH not set, /api/initialize is unauthenticated")
	}

	router := routers.MainRouter(deps)
	secureMux := mw.ApplyMiddlewares(router, mw.ResponseTimeMiddleware, mw.SecurityHeaders, mw.Cors)

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           secureMux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.SeedTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	go func() {
		<-ctx.Done()
		utils.Logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			utils.Logger.WithError(err).Error("Server shutdown error")
		}
	}()

	utils.Logger.WithField("port", cfg.Port).Info("Server is running")
	if cfg.CertFile != "" {
		err = server.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		utils.Logger.Fatal("Error starting the server: ", err)
	}
	utils.Logger.Info("Server stopped gracefully")
}
