package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testValidator() *validator.Validate {
	return validator.New()
}

func setupServiceDB(t *testing.T) *gorm.DB {
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

	return db
}

func floatPtr(v float64) *float64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}

type recordingAudit struct {
	entries       []AuditEntry
	statusChanges []string
}

func (r *recordingAudit) Append(ctx context.Context, entry AuditEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *recordingAudit) RecordStatusChange(ctx context.Context, ideaID uint, from, to string, changedBy uint) error {
	r.statusChanges = append(r.statusChanges, from+"->"+to)
	return nil
}

type recordingNotifier struct {
	published []dto.NotificationCreateRequest
}

func (r *recordingNotifier) Publish(ctx context.Context, payload dto.NotificationCreateRequest) (dto.NotificationResponse, error) {
	r.published = append(r.published, payload)
	return dto.NotificationResponse{UserID: payload.UserID, Type: payload.Type, Message: payload.Message}, nil
}
