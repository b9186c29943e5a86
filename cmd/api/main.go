package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/afkar-io/afkar-api/internal/config"
	"github.com/afkar-io/afkar-api/internal/database"
	"github.com/afkar-io/afkar-api/internal/handler"
	"github.com/afkar-io/afkar-api/internal/middleware"
	"github.com/afkar-io/afkar-api/internal/repository"
	"github.com/afkar-io/afkar-api/internal/router"
	"github.com/afkar-io/afkar-api/internal/service"
	cloud "github.com/afkar-io/afkar-api/pkg/cloudinary"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSUrl)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to nats")
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create cloudinary client")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	profileRepo := repository.NewProfileRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	localizationRepo := repository.NewLocalizationRepository(db)

	auditService := service.NewAuditService(auditRepo, logger)
	notificationService := service.NewNotificationService(notificationRepo, redisClient, cfg.NotificationChannelBase, natsConn, validate, logger)
	authService := service.NewAuthService(profileRepo, cfg.JWTSecret, cfg.JWTTokenTTL, validate, logger)
	profileService := service.NewProfileService(profileRepo, uploader, cfg.UploadMaxSizeMB, validate, logger)
	ideaService := service.NewIdeaService(ideaRepo, commentRepo, auditService, notificationService, validate, logger)
	attachmentService := service.NewAttachmentService(attachmentRepo, ideaRepo, uploader, cfg.UploadMaxSizeMB, logger)
	evaluationService := service.NewEvaluationService(evaluationRepo, ideaRepo, auditService, notificationService, validate, logger)
	dashboardService := service.NewDashboardService(ideaRepo, evaluationRepo, redisClient, cfg.DashboardCacheTTL, logger)
	localizationService := service.NewLocalizationService(localizationRepo, redisClient, cfg.LocalizationCacheTTL, logger)
	seedService := service.NewSeedService(localizationService, profileRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	serviceCtx, stopServices := context.WithCancel(context.Background())
	defer stopServices()
	notificationService.Start(serviceCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		// Headroom above the upload cap so multipart overhead does not trip
		// fiber's transport-level limit before the service can reject with a
		// proper error envelope.
		BodyLimit: (cfg.UploadMaxSizeMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         handler.NewAuthHandler(authService, logger),
		IdeaHandler:         handler.NewIdeaHandler(ideaService, logger),
		AttachmentHandler:   handler.NewAttachmentHandler(attachmentService, logger),
		EvaluationHandler:   handler.NewEvaluationHandler(evaluationService, logger),
		ProfileHandler:      handler.NewProfileHandler(profileService, logger),
		DashboardHandler:    handler.NewDashboardHandler(dashboardService, logger),
		AuditHandler:        handler.NewAuditHandler(auditService, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger),
		LocalizationHandler: handler.NewLocalizationHandler(localizationService, logger),
		SeedHandler:         handler.NewSeedHandler(seedService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger, stopServices)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger, stopServices context.CancelFunc) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()
	stopServices()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
