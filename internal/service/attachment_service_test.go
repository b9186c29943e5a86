package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/repository"
)

func newAttachmentServiceForTest(t *testing.T, storage FileStorage) (AttachmentService, uint, uint) {
	t.Helper()

	db := setupServiceDB(t)
	ideas := repository.NewIdeaRepository(db)
	attachments := repository.NewAttachmentRepository(db)

	idea := models.Idea{
		Title:       "Self-service onboarding",
		Description: "Let new hires pick their own equipment.",
		Category:    "process",
		Status:      models.IdeaStatusDraft,
		SubmitterID: 11,
		IsDraft:     true,
		IsActive:    true,
	}
	require.NoError(t, ideas.Create(context.Background(), &idea))

	svc := NewAttachmentService(attachments, ideas, storage, 5, testLogger())
	return svc, idea.ID, idea.SubmitterID
}

func TestAttachmentAddStoresUnderIdeaFolder(t *testing.T) {
	storage := &fakeAvatarStorage{}
	svc, ideaID, ownerID := newAttachmentServiceForTest(t, storage)

	response, err := svc.Add(context.Background(), ideaID, ownerID, buildFileHeader(t, "mockup.png", pngPayload(1024)))
	require.NoError(t, err)
	require.Equal(t, "mockup.png", response.FileName)
	require.Equal(t, "image/png", response.MimeType)
	require.NotEmpty(t, response.URL)

	require.Equal(t, 1, storage.calls)
	require.Equal(t, fmt.Sprintf("ideas/%d", ideaID), storage.folder)
}

func TestAttachmentAddRejectsNonOwner(t *testing.T) {
	storage := &fakeAvatarStorage{}
	svc, ideaID, _ := newAttachmentServiceForTest(t, storage)

	_, err := svc.Add(context.Background(), ideaID, 99, buildFileHeader(t, "mockup.png", pngPayload(1024)))
	require.ErrorIs(t, err, ErrNotIdeaOwner)
	require.Zero(t, storage.calls)
}

func TestAttachmentAddRejectsOversizedFile(t *testing.T) {
	storage := &fakeAvatarStorage{}
	svc, ideaID, ownerID := newAttachmentServiceForTest(t, storage)

	_, err := svc.Add(context.Background(), ideaID, ownerID, buildFileHeader(t, "big.png", pngPayload(6*1024*1024)))
	require.ErrorIs(t, err, ErrAttachmentTooLarge)
	require.Zero(t, storage.calls)
}

func TestAttachmentAddRejectsDisallowedType(t *testing.T) {
	storage := &fakeAvatarStorage{}
	svc, ideaID, ownerID := newAttachmentServiceForTest(t, storage)

	gif := append([]byte("GIF89a"), make([]byte, 256)...)
	_, err := svc.Add(context.Background(), ideaID, ownerID, buildFileHeader(t, "clip.gif", gif))
	require.ErrorIs(t, err, ErrAttachmentTypeNotAllowed)
	require.Zero(t, storage.calls)
}

func TestAttachmentListAndDelete(t *testing.T) {
	storage := &fakeAvatarStorage{}
	svc, ideaID, ownerID := newAttachmentServiceForTest(t, storage)
	ctx := context.Background()

	stored, err := svc.Add(ctx, ideaID, ownerID, buildFileHeader(t, "proposal.pdf", append([]byte("%PDF-1.4\n"), make([]byte, 64)...)))
	require.NoError(t, err)
	require.Equal(t, "application/pdf", stored.MimeType)

	listed, err := svc.List(ctx, ideaID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, stored.ID, listed[0].ID)

	require.ErrorIs(t, svc.Delete(ctx, stored.ID, ideaID, 99), ErrNotIdeaOwner)
	require.ErrorIs(t, svc.Delete(ctx, stored.ID+100, ideaID, ownerID), ErrAttachmentNotFound)
	require.NoError(t, svc.Delete(ctx, stored.ID, ideaID, ownerID))

	listed, err = svc.List(ctx, ideaID)
	require.NoError(t, err)
	require.Empty(t, listed)
}
