// cmd/docsign-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/MGTheTrain/docsign/internal/api/rest/v1"
	"github.com/MGTheTrain/docsign/internal/app"
	"github.com/MGTheTrain/docsign/internal/domain/cryptoalg"
	"github.com/MGTheTrain/docsign/internal/domain/keys"
	"github.com/MGTheTrain/docsign/internal/domain/signatures"
	"github.com/MGTheTrain/docsign/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/docsign/internal/infrastructure/metrics"
	"github.com/MGTheTrain/docsign/internal/infrastructure/persistence"
	"github.com/MGTheTrain/docsign/internal/pkg/config"
	"github.com/MGTheTrain/docsign/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	registry := prometheus.NewRegistry()
	deps, err := initializeDependencies(restConfig, registry, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	router := newRouter(restConfig, deps, registry)
	return startServerWithGracefulShutdown(restConfig, router, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	keyGeneration keys.KeyGenerationService
	keyDirectory  keys.KeyDirectoryService
	signature     signatures.SignatureService
	metrics       *metrics.Metrics
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, registry *prometheus.Registry, log logger.Logger) (*appDependencies, error) {
	m, err := metrics.New(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	directory, err := persistence.NewCacheKeyDirectory(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}

	var primeOptions []cryptography.PrimeGeneratorOption
	if cfg.KeyGeneration.MaxPrimeAttempts > 0 {
		primeOptions = append(primeOptions, cryptography.WithMaxAttempts(cfg.KeyGeneration.MaxPrimeAttempts))
	}
	primes, err := cryptography.NewPrimeGenerator(log, primeOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create prime generator: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(primes, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	signatureProcessor, err := cryptography.NewSignatureProcessor(cfg.Signature.HashAlgorithm, rsaProcessor, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create signature processor: %w", err)
	}
	log.Info("Cryptographic processors initialized with hash ", signatureProcessor.HashAlgorithm())

	directoryService, err := app.NewKeyDirectoryService(directory, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key directory service: %w", err)
	}

	generationService, err := app.NewKeyGenerationService(rsaProcessor, directoryService, cfg.KeyGeneration.Timeout, m, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key generation service: %w", err)
	}

	signatureService, err := app.NewSignatureService(signatureProcessor, []cryptoalg.Hasher{
		cryptography.NewMD5Hasher(),
		cryptography.NewSHA256Hasher(),
	}, directoryService, m, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create signature service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appDependencies{
		keyGeneration: generationService,
		keyDirectory:  directoryService,
		signature:     signatureService,
		metrics:       m,
	}, nil
}

// newRouter builds the gin engine with middleware, v1 routes and the metrics endpoint
func newRouter(cfg *config.RestConfig, deps *appDependencies, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), deps.metrics.GinMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "X-Key-ID"},
		AllowCredentials: !allowsAnyOrigin(cfg.CORS.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	v1.SetupRoutes(r,
		deps.keyGeneration,
		deps.keyDirectory,
		deps.signature,
		v1.RouteSettings{
			DefaultKeySize:       cfg.KeyGeneration.DefaultKeySize,
			DefaultHashAlgorithm: cfg.Signature.HashAlgorithm,
		},
	)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return r
}

// allowsAnyOrigin reports a wildcard origin; browsers reject credentialed responses for it
func allowsAnyOrigin(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, handler http.Handler, log logger.Logger) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
