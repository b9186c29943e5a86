package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/repository"
)

func newIdeaServiceForTest(t *testing.T) (IdeaService, *recordingAudit, *recordingNotifier, repository.IdeaRepository) {
	t.Helper()

	db := setupServiceDB(t)
	ideas := repository.NewIdeaRepository(db)
	comments := repository.NewCommentRepository(db)
	audit := &recordingAudit{}
	notifier := &recordingNotifier{}

	svc := NewIdeaService(ideas, comments, audit, notifier, testValidator(), testLogger())
	return svc, audit, notifier, ideas
}

func TestCreateDraftStartsInDraftState(t *testing.T) {
	svc, _, _, _ := newIdeaServiceForTest(t)

	draft, err := svc.CreateDraft(context.Background(), 7, dto.IdeaCreateRequest{
		Title:       "Paperless onboarding",
		Description: "Digitize the onboarding paperwork end to end.",
		Category:    "process",
	})
	require.NoError(t, err)
	require.True(t, draft.IsDraft)
	require.Equal(t, models.IdeaStatusDraft, draft.Status)
	require.Empty(t, draft.ReferenceCode)
	require.Nil(t, draft.SubmittedAt)
}

func TestSubmitTransitionsDraft(t *testing.T) {
	svc, audit, notifier, _ := newIdeaServiceForTest(t)
	ctx := context.Background()

	draft, err := svc.CreateDraft(ctx, 7, dto.IdeaCreateRequest{
		Title:       "Paperless onboarding",
		Description: "Digitize the onboarding paperwork end to end.",
		Category:    "process",
	})
	require.NoError(t, err)

	submitted, err := svc.Submit(ctx, draft.ID, 7)
	require.NoError(t, err)
	require.False(t, submitted.IsDraft)
	require.Equal(t, models.IdeaStatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)
	require.Equal(t, fmt.Sprintf("IDEA-%d-00001", time.Now().Year()), submitted.ReferenceCode)

	require.Len(t, audit.entries, 1)
	require.Equal(t, "idea.submitted", audit.entries[0].Action)
	require.Equal(t, []string{"draft->submitted"}, audit.statusChanges)
	require.Len(t, notifier.published, 1)
	require.Equal(t, uint(7), notifier.published[0].UserID)
}

func TestSubmitRejectsNonOwnerAndNonDraft(t *testing.T) {
	svc, _, _, _ := newIdeaServiceForTest(t)
	ctx := context.Background()

	draft, err := svc.CreateDraft(ctx, 7, dto.IdeaCreateRequest{
		Title:       "Paperless onboarding",
		Description: "Digitize the onboarding paperwork end to end.",
		Category:    "process",
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, draft.ID, 99)
	require.ErrorIs(t, err, ErrNotIdeaOwner)

	_, err = svc.Submit(ctx, draft.ID, 7)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, draft.ID, 7)
	require.ErrorIs(t, err, ErrNotDraft)
}

func TestDiscardSoftDeletesOnly(t *testing.T) {
	svc, _, _, ideas := newIdeaServiceForTest(t)
	ctx := context.Background()

	draft, err := svc.CreateDraft(ctx, 7, dto.IdeaCreateRequest{
		Title:       "Paperless onboarding",
		Description: "Digitize the onboarding paperwork end to end.",
		Category:    "process",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Discard(ctx, draft.ID, 7))

	// The record survives with its draft fields intact; only is_active flips.
	stored, err := ideas.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	require.False(t, stored.IsActive)
	require.True(t, stored.IsDraft)
	require.Equal(t, models.IdeaStatusDraft, stored.Status)

	_, err = svc.Get(ctx, draft.ID)
	require.ErrorIs(t, err, ErrIdeaNotFound)
}

func TestListDraftsReturnsOnlyActiveDrafts(t *testing.T) {
	svc, _, _, _ := newIdeaServiceForTest(t)
	ctx := context.Background()

	keep, err := svc.CreateDraft(ctx, 7, dto.IdeaCreateRequest{
		Title:       "Keep this draft",
		Description: "This draft stays in the drafts list.",
		Category:    "process",
	})
	require.NoError(t, err)

	submitted, err := svc.CreateDraft(ctx, 7, dto.IdeaCreateRequest{
		Title:       "Submit this one",
		Description: "This one leaves the drafts list on submit.",
		Category:    "process",
	})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, submitted.ID, 7)
	require.NoError(t, err)

	discarded, err := svc.CreateDraft(ctx, 7, dto.IdeaCreateRequest{
		Title:       "Discard this one",
		Description: "This one leaves the drafts list on discard.",
		Category:    "process",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Discard(ctx, discarded.ID, 7))

	drafts, err := svc.ListDrafts(ctx, 7)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	require.Equal(t, keep.ID, drafts[0].ID)
}

func TestReferenceCodesCountPerYear(t *testing.T) {
	svc, _, _, _ := newIdeaServiceForTest(t)
	ctx := context.Background()
	year := time.Now().Year()

	for i, expected := range []string{
		fmt.Sprintf("IDEA-%d-00001", year),
		fmt.Sprintf("IDEA-%d-00002", year),
	} {
		draft, err := svc.CreateDraft(ctx, 7, dto.IdeaCreateRequest{
			Title:       fmt.Sprintf("Idea number %d", i+1),
			Description: "Sequential reference codes within one year.",
			Category:    "process",
		})
		require.NoError(t, err)

		submitted, err := svc.Submit(ctx, draft.ID, 7)
		require.NoError(t, err)
		require.Equal(t, expected, submitted.ReferenceCode)
	}
}

func TestAddCommentSanitizesBody(t *testing.T) {
	svc, _, _, _ := newIdeaServiceForTest(t)
	ctx := context.Background()

	draft, err := svc.CreateDraft(ctx, 7, dto.IdeaCreateRequest{
		Title:       "Paperless onboarding",
		Description: "Digitize the onboarding paperwork end to end.",
		Category:    "process",
	})
	require.NoError(t, err)

	comment, err := svc.AddComment(ctx, draft.ID, 3, dto.CommentCreateRequest{
		Body: `<script>alert("x")</script>Looks promising`,
	})
	require.NoError(t, err)
	require.Equal(t, "Looks promising", comment.Body)

	_, err = svc.AddComment(ctx, draft.ID, 3, dto.CommentCreateRequest{
		Body: `<script>alert("x")</script>`,
	})
	require.Error(t, err)
}
