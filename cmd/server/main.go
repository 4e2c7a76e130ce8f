package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/netip"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"

	grpcapi "impactecho-backend/internal/api/grpc"
	httpapi "impactecho-backend/internal/api/http"
	"impactecho-backend/internal/config"
	"impactecho-backend/internal/logger"
	"impactecho-backend/internal/metrics"
	"impactecho-backend/internal/repository"
	"impactecho-backend/internal/repository/filestore"
	"impactecho-backend/internal/repository/postgres"
	"impactecho-backend/internal/security"
	"impactecho-backend/internal/service"
	"impactecho-backend/internal/session"
	"impactecho-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ImpactEcho backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "store", cfg.Store.Type)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open store", "error", err)
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	// Initialize Storage Service
	docs, err := storage.NewLocalStorageService(storage.Config{
		Dir:               cfg.Storage.UploadDir,
		MaxBytes:          cfg.Storage.MaxFileSize << 20,
		AllowedExtensions: cfg.Storage.AllowedTypes,
	})
	if err != nil {
		logger.Error("Failed to initialize upload storage", "error", err)
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// Initialize Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Initialize Security
	tokenTTL := time.Duration(cfg.JWT.AccessTokenExpiry) * time.Minute
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, tokenTTL)
	cookies, err := session.NewCookieManager(cfg.Session.Secret, session.CookieOptions{
		Name:   cfg.Session.Name,
		Domain: cfg.Session.Domain,
		Secure: cfg.Session.Secure,
		MaxAge: cfg.Session.MaxAgeMinutes * 60,
	})
	if err != nil {
		log.Fatalf("Failed to initialize sessions: %v", err)
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromAddress, cfg.Email.FromName)
	onboardingSvc := service.NewOnboardingService(store.Registrations(), docs, m)
	credentialSvc := service.NewCredentialService(store.Registrations(), store.Credentials(), m)
	authSvc := service.NewAuthService(
		store.Credentials(),
		store.LoginLogs(),
		service.AdminAccount{Username: cfg.Admin.Username, PasswordHash: cfg.Admin.PasswordHash},
		m,
	)
	causeSvc := service.NewCauseService(store.CauseRequests(), store.Causes(), m)
	adminSvc := service.NewAdminService(store, docs, emailSvc, security.NewOrganizationIdentifier, m)

	var trustedProxies []netip.Prefix
	for _, p := range cfg.RateLimit.TrustedProxies {
		prefix, err := config.ParseProxy(p)
		if err != nil {
			log.Fatalf("Invalid rate limit configuration: %v", err)
		}
		trustedProxies = append(trustedProxies, prefix)
	}

	// Initialize HTTP handlers
	router := httpapi.NewRouter(httpapi.Routes{
		Onboarding:   httpapi.NewOnboardingHandler(onboardingSvc, credentialSvc),
		Auth:         httpapi.NewAuthHandler(authSvc, tokenManager, cookies, tokenTTL),
		Causes:       httpapi.NewCauseHandler(causeSvc),
		Admin:        httpapi.NewAdminHandler(adminSvc),
		Health:       httpapi.NewHealthHandler(store),
		Sessions:     httpapi.NewSessionResolver(tokenManager, cookies),
		Limiter:      httpapi.NewLoginLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.Burst, trustedProxies...),
		Metrics:      m,
		MaxBodyBytes: cfg.Server.MaxBodyMB << 20,
	})

	readTimeout := time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second
	httpServer := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http: %w", err)
		}
	}()

	// Set up gRPC health server
	var grpcServer *grpc.Server
	if cfg.GRPC.Port != 0 {
		lis, err := net.Listen("tcp", cfg.GetGRPCAddress())
		if err != nil {
			logger.Error("Failed to listen", "error", err, "address", cfg.GetGRPCAddress())
			log.Fatalf("Failed to listen: %v", err)
		}
		grpcServer, _ = grpcapi.NewServer(store)
		go func() {
			logger.Info("gRPC health server listening", "address", cfg.GetGRPCAddress())
			if err := grpcServer.Serve(lis); err != nil {
				errCh <- fmt.Errorf("grpc: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		logger.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	logger.Info("Server stopped")
}

// openStore selects the ledger backend named in the configuration.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Store.Type {
	case config.StoreTypePostgres:
		// Initialize Database
		logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("Database connection established")
		return postgres.NewStore(db), nil
	default:
		logger.Info("Using file ledgers", "data_dir", cfg.Store.DataDir)
		return filestore.Open(cfg.Store.DataDir)
	}
}
