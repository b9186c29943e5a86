package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/afkar-io/afkar-api/internal/config"
	"github.com/afkar-io/afkar-api/internal/handler"
	"github.com/afkar-io/afkar-api/internal/middleware"
	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/repository"
	"github.com/afkar-io/afkar-api/internal/router"
	"github.com/afkar-io/afkar-api/internal/service"
)

type testUploader struct{}

func (t *testUploader) Upload(_ context.Context, folder, name string, _ io.Reader) (string, error) {
	return "https://cdn.example.com/" + folder + "/" + name, nil
}

type testEnv struct {
	app         *fiber.App
	profiles    repository.ProfileRepository
	ideas       repository.IdeaRepository
	evaluations repository.EvaluationRepository
	userID      uint
}

// newTestEnv wires the full HTTP surface against an in-memory database. The
// JWT middleware is replaced with a stub that authenticates the fixture user
// under the given role.
func newTestEnv(t *testing.T, role string) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Idea{},
		&models.IdeaComment{},
		&models.IdeaAttachment{},
		&models.EvaluatorAssignment{},
		&models.Evaluation{},
		&models.IdeaActionLog{},
		&models.IdeaStatusLog{},
		&models.Notification{},
		&models.Translation{},
		&models.ListOfValue{},
	))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	profileRepo := repository.NewProfileRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	localizationRepo := repository.NewLocalizationRepository(db)

	profile := models.Profile{
		Email:        "fixture@example.com",
		PasswordHash: "irrelevant",
		DisplayName:  "Fixture",
		Role:         role,
		Active:       true,
	}
	require.NoError(t, profileRepo.Create(context.Background(), &profile))

	uploader := &testUploader{}

	auditService := service.NewAuditService(auditRepo, logger)
	notificationService := service.NewNotificationService(notificationRepo, nil, "", nil, validate, logger)
	authService := service.NewAuthService(profileRepo, "test-secret", time.Hour, validate, logger)
	profileService := service.NewProfileService(profileRepo, uploader, 5, validate, logger)
	ideaService := service.NewIdeaService(ideaRepo, commentRepo, auditService, notificationService, validate, logger)
	attachmentService := service.NewAttachmentService(attachmentRepo, ideaRepo, uploader, 5, logger)
	evaluationService := service.NewEvaluationService(evaluationRepo, ideaRepo, auditService, notificationService, validate, logger)
	dashboardService := service.NewDashboardService(ideaRepo, evaluationRepo, nil, time.Minute, logger)
	localizationService := service.NewLocalizationService(localizationRepo, nil, time.Minute, logger)
	seedService := service.NewSeedService(localizationService, profileRepo, true, "seed-token", logger)

	app := fiber.New(fiber.Config{
		BodyLimit: (5 + 1) * 1024 * 1024,
	})
	middleware.Register(app, middleware.Config{})

	userID := profile.ID
	router.Register(app, config.Config{AppName: "Test"}, router.Dependencies{
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
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("user_id", userID)
			c.Locals("user_role", role)
			return c.Next()
		},
	})

	return &testEnv{
		app:         app,
		profiles:    profileRepo,
		ideas:       ideaRepo,
		evaluations: evaluationRepo,
		userID:      userID,
	}
}

func requestPath(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}
