package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"vibedocs/internal/cache"
	"vibedocs/internal/config"
	"vibedocs/internal/features/accounts"
	"vibedocs/internal/features/audit_logs"
	"vibedocs/internal/features/billing"
	"vibedocs/internal/features/credentials"
	"vibedocs/internal/features/gateway"
	system_healthcheck "vibedocs/internal/features/system/healthcheck"
	"vibedocs/internal/features/usage"
	usage_cleanup "vibedocs/internal/features/usage/cleanup"
	"vibedocs/internal/features/users"
	"vibedocs/internal/storage"
	env_utils "vibedocs/internal/util/env"
	"vibedocs/internal/util/logger"
	_ "vibedocs/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/valkey-io/valkey-go"
	"gorm.io/gorm"
)

// @title VibeDocs Backend API
// @version 1.0
// @description Dashboard and API gateway for VibeDocs

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	log := logger.GetLogger()
	config.StartListeningForShutdownSignal()

	env := config.GetEnv()

	db, err := storage.Connect(env.DatabaseDsn)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	runMigrations(log)

	cacheClient, err := cache.Connect(env)
	if err != nil {
		log.Error("Failed to connect to Valkey", "error", err)
		os.Exit(1)
	}

	setUpDependencies(db, cacheClient, env)

	if err := users.GetUserService().EnsureSecretKey(); err != nil {
		log.Error("Failed to ensure JWT secret key", "error", err)
		os.Exit(1)
	}

	go generateSwaggerDocs(log)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.Default()

	ginApp.Use(gzip.Gzip(gzip.DefaultCompression))

	enableCors(ginApp)
	setUpRoutes(ginApp)
	runBackgroundTasks(log)

	startServerWithGracefulShutdown(log, ginApp)
}

func setUpDependencies(db *gorm.DB, cacheClient valkey.Client, env config.EnvVariables) {
	audit_logs.Setup(db)
	users.Setup(db)
	accounts.Setup(db)
	usage.Setup(db)
	credentials.Setup(db, cacheClient)
	gateway.Setup()
	billing.Setup(env.BillingWebhookSecret)
	usage_cleanup.Setup(env.UsageRetentionDays)
	system_healthcheck.Setup(db)
}

func setUpRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Mount Swagger UI
	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	users.GetUserController().RegisterRoutes(v1)
	billing.GetBillingController().RegisterRoutes(v1)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(v1)

	// API-key-gated proxy routes; the key check lives in the gateway middleware
	gateway.GetGatewayController().RegisterRoutes(v1)

	// Session-protected routes
	authMiddleware := users.AuthMiddleware(users.GetUserService())
	protected := v1.Group("")
	protected.Use(authMiddleware)

	users.GetUserController().RegisterProtectedRoutes(protected)
	accounts.GetAccountController().RegisterRoutes(protected)
	usage.GetUsageController().RegisterRoutes(protected)
	credentials.GetCredentialController().RegisterRoutes(protected)
	audit_logs.GetAuditLogController().RegisterRoutes(protected)
	system_healthcheck.GetHealthcheckController().RegisterProtectedRoutes(protected)
}

func runBackgroundTasks(log *slog.Logger) {
	log.Info("Preparing to run background tasks...")

	usage_cleanup.GetUsageCleanupBackgroundService().StartWorkers()

	log.Info("Background tasks started successfully")
}

func startServerWithGracefulShutdown(log *slog.Logger, app *gin.Engine) {
	host := ""
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:    host + ":8080",
		Handler: app,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen:", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	usage_cleanup.GetUsageCleanupBackgroundService().Stop()

	// The context is used to inform the server it has 10 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	log.Info("Server gracefully stopped")
}

func runMigrations(log *slog.Logger) {
	log.Info("Running database migrations...")

	cmd := exec.Command("goose", "up")
	cmd.Env = append(
		os.Environ(),
		"GOOSE_DRIVER=postgres",
		"GOOSE_DBSTRING="+config.GetEnv().DatabaseDsn,
		"GOOSE_MIGRATION_DIR=migrations",
	)

	cmd.Dir = config.GetEnv().BackendRootPath

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to run migrations", "error", err, "output", string(output))
		os.Exit(1)
	}

	log.Info("Database migrations completed successfully", "output", string(output))
}

// Keep in mind: docs appear after second launch, because Swagger
// is generated into Go files. So if we changed files, we generate
// new docs, but still need to restart the server to see them.
func generateSwaggerDocs(log *slog.Logger) {
	if config.GetEnv().EnvMode == env_utils.EnvModeProduction {
		return
	}

	currentDir, err := os.Getwd()
	if err != nil {
		log.Error("Failed to get current directory", "error", err)
		return
	}

	cmd := exec.Command("swag", "init", "-d", currentDir, "-g", "cmd/main.go", "-o", "swagger")

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func enableCors(ginApp *gin.Engine) {
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		ginApp.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"Accept",
				"X-Webhook-Secret",
			},
			AllowCredentials: true,
		}))
	}
}
