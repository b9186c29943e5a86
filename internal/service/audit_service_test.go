package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/repository"
)

func newAuditServiceForTest(t *testing.T) AuditService {
	t.Helper()

	db := setupServiceDB(t)
	return NewAuditService(repository.NewAuditRepository(db), testLogger())
}

func TestAuditAppendNormalizesAndMasksMetadata(t *testing.T) {
	svc := newAuditServiceForTest(t)
	ctx := context.Background()

	err := svc.Append(ctx, AuditEntry{
		IdeaID:  3,
		ActorID: 7,
		Action:  "  Idea.Submitted  ",
		Metadata: map[string]interface{}{
			"reference_code": "IDEA-2026-00001",
			"actor_email":    "nora@example.com",
			"reset_token":    "abc123",
		},
	})
	require.NoError(t, err)

	listed, err := svc.List(ctx, dto.ActionLogListRequest{IdeaID: 3, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)

	entry := listed.Items[0]
	require.Equal(t, "idea.submitted", entry.Action)
	require.Equal(t, models.RoleSubmitter, entry.ActorRole)
	require.Equal(t, "IDEA-2026-00001", entry.Metadata["reference_code"])
	require.Equal(t, "***", entry.Metadata["actor_email"])
	require.Equal(t, "***", entry.Metadata["reset_token"])
}

func TestAuditAppendRequiresAction(t *testing.T) {
	svc := newAuditServiceForTest(t)

	err := svc.Append(context.Background(), AuditEntry{IdeaID: 3, Action: "   "})
	require.Error(t, err)
}

func TestAuditListFilters(t *testing.T) {
	svc := newAuditServiceForTest(t)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, AuditEntry{IdeaID: 1, ActorID: 7, Action: "idea.submitted"}))
	require.NoError(t, svc.Append(ctx, AuditEntry{IdeaID: 1, ActorID: 8, Action: "idea.discarded"}))
	require.NoError(t, svc.Append(ctx, AuditEntry{IdeaID: 2, ActorID: 7, Action: "idea.submitted"}))

	byIdea, err := svc.List(ctx, dto.ActionLogListRequest{IdeaID: 1, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, byIdea.Items, 2)

	byAction, err := svc.List(ctx, dto.ActionLogListRequest{Action: "idea.submitted", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, byAction.Items, 2)

	byActor, err := svc.List(ctx, dto.ActionLogListRequest{ActorID: 8, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, byActor.Items, 1)
	require.Equal(t, "idea.discarded", byActor.Items[0].Action)
}

func TestRecordStatusChangePersists(t *testing.T) {
	db := setupServiceDB(t)
	repo := repository.NewAuditRepository(db)
	svc := NewAuditService(repo, testLogger())
	ctx := context.Background()

	require.NoError(t, svc.RecordStatusChange(ctx, 5, models.IdeaStatusDraft, models.IdeaStatusSubmitted, 7))

	changes, err := repo.ListStatusChanges(ctx, 5)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	require.Equal(t, models.IdeaStatusDraft, changes[0].FromStatus)
	require.Equal(t, models.IdeaStatusSubmitted, changes[0].ToStatus)
}
