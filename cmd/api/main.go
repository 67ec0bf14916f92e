package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-board-backend/config"
	_ "job-board-backend/docs" // Important for Swagger
	v1 "job-board-backend/internal/delivery/http/v1"
	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/domain"
	"job-board-backend/internal/repository/postgres"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/auth"
	"job-board-backend/pkg/database"
	"job-board-backend/pkg/logger"
	"job-board-backend/pkg/redis"
	"job-board-backend/pkg/security"
	"job-board-backend/pkg/storage"
)

// @title           Job Board API
// @version         1.0
// @description     Job board backend for job seekers and companies.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job board backend", "port", cfg.Port)

	if cfg.JWTSecret == "" {
		logger.Log.Error("JWT_SECRET_ACCESS_TOKEN is required")
		os.Exit(1)
	}

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if cfg.AutoMigrate {
		roles := make([]database.RoleSeed, 0, len(domain.Roles()))
		for _, r := range domain.Roles() {
			roles = append(roles, database.RoleSeed{ID: r.ID(), Name: string(r)})
		}
		if err := database.Migrate(context.Background(), dbPool, roles); err != nil {
			logger.Log.Error("Failed to migrate schema", "error", err)
			os.Exit(1)
		}
	}

	// 4. Setup Redis (optional)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, using in-memory fallback", "error", err)
		}
	}
	defer redis.Close()

	// 5. Setup Repositories
	store := postgres.NewStore(dbPool, cfg.DBTimeout)
	accountRepo := postgres.NewAccountRepository(store)
	jobSeekerRepo := postgres.NewJobSeekerRepository(store)
	companyRepo := postgres.NewCompanyRepository(store)
	listingRepo := postgres.NewJobListingRepository(store)
	applicationRepo := postgres.NewJobApplicationRepository(store)
	txManager := postgres.NewTxManager(store)

	// 6. Setup Attachment Store
	healthChecks := map[string]usecase.HealthCheck{
		"database": store.Ping,
		"redis":    redis.HealthCheck,
	}

	var (
		attachmentStore domain.AttachmentStore
		filesHandler    http.Handler
	)
	if cfg.AWSBucketName != "" {
		s3Client, err := storage.NewS3Client(context.Background(), storage.S3Config{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.AWSBucketName,
			AccessKeyID:     cfg.AWSAccessKey,
			SecretAccessKey: cfg.AWSSecretKey,
			Endpoint:        cfg.S3Endpoint,
			SignedURLTTL:    cfg.S3SignedURLTTL,
		})
		if err != nil {
			logger.Log.Error("Failed to create S3 client", "error", err)
			os.Exit(1)
		}
		s3Store := storage.NewS3Store(s3Client, cfg.AWSBucketName, cfg.S3SignedURLTTL)
		attachmentStore = s3Store
		healthChecks["storage"] = s3Store.CheckBucket
	} else {
		logger.Log.Warn("AWS_BUCKET_NAME not set, resumes are kept in memory")
		memStore := storage.NewMemoryStore("http://localhost:"+cfg.Port+v1.FilesPath, cfg.JWTSecret, cfg.S3SignedURLTTL)
		attachmentStore = memStore
		filesHandler = memStore
	}

	// 7. Setup Security
	secLog := security.DefaultLogger()
	defer secLog.Sync()

	loginTracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
	}, secLog)

	// 8. Setup UseCases
	authUC := usecase.NewAuthUsecase(usecase.AuthDeps{
		Accounts:    accountRepo,
		JobSeekers:  jobSeekerRepo,
		Companies:   companyRepo,
		Tokens:      auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry),
		Revocations: auth.NewRevocationStore(),
		LoginGuard:  loginTracker,
		SecurityLog: secLog,
	})
	attachments := usecase.NewAttachmentManager(attachmentStore, security.NewFileValidator(cfg.MaxResumeSizeBytes), cfg.StorageTimeout, secLog)

	jobSeekerUC := usecase.NewJobSeekerUsecase(txManager, accountRepo, jobSeekerRepo, attachments, authUC, secLog)
	companyUC := usecase.NewCompanyUsecase(txManager, accountRepo, companyRepo, authUC, secLog)
	listingUC := usecase.NewJobListingUsecase(listingRepo, applicationRepo, attachments, authUC)
	applicationUC := usecase.NewJobApplicationUsecase(applicationRepo, listingRepo)
	healthUC := usecase.NewHealthUsecase(healthChecks, "redis")

	// 9. Setup Router
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		JobSeekerUC:   jobSeekerUC,
		CompanyUC:     companyUC,
		JobListingUC:  listingUC,
		ApplicationUC: applicationUC,
		HealthUC:      healthUC,
		SecurityLog:   secLog,
		Limits: v1.RouteLimits{
			Global: middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)),
			Login:  middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(cfg.RateLimitLoginThreshold, window)),
			Upload: middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig()),
		},
		Cookies:        v1.CookieOptions{Secure: cfg.CookieSecure},
		FrontendURL:    cfg.FrontendURL,
		MaxResumeBytes: cfg.MaxResumeSizeBytes,
		Files:          filesHandler,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
