package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/observability"
	"github.com/afkar-io/afkar-api/internal/repository"
)

var (
	// ErrAttachmentNotFound indicates the attachment does not exist on the idea.
	ErrAttachmentNotFound = errors.New("attachment not found")
	// ErrAttachmentTooLarge indicates the file exceeded the configured limit.
	ErrAttachmentTooLarge = errors.New("attachment exceeds maximum allowed size")
	// ErrAttachmentTypeNotAllowed indicates the detected type is not permitted.
	ErrAttachmentTypeNotAllowed = errors.New("attachment file type not allowed")
)

// AttachmentService manages supporting files on ideas.
type AttachmentService interface {
	Add(ctx context.Context, ideaID, actorID uint, file *multipart.FileHeader) (dto.AttachmentResponse, error)
	List(ctx context.Context, ideaID uint) ([]dto.AttachmentResponse, error)
	Delete(ctx context.Context, attachmentID, ideaID, actorID uint) error
}

type attachmentService struct {
	attachments repository.AttachmentRepository
	ideas       repository.IdeaRepository
	storage     FileStorage
	maxSize     int64
	logger      zerolog.Logger
}

// NewAttachmentService constructs the attachment service.
func NewAttachmentService(attachments repository.AttachmentRepository, ideas repository.IdeaRepository, storage FileStorage, maxSizeMB int, logger zerolog.Logger) AttachmentService {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &attachmentService{
		attachments: attachments,
		ideas:       ideas,
		storage:     storage,
		maxSize:     int64(maxSizeMB) * 1024 * 1024,
		logger:      logger.With().Str("component", "attachment_service").Logger(),
	}
}

// Add validates the file before any storage call, stores it under the idea's
// folder and persists the metadata row including a content checksum.
func (s *attachmentService) Add(ctx context.Context, ideaID, actorID uint, file *multipart.FileHeader) (dto.AttachmentResponse, error) {
	if file == nil {
		return dto.AttachmentResponse{}, errors.New("file is required")
	}

	idea, err := s.ownedIdea(ctx, ideaID, actorID)
	if err != nil {
		return dto.AttachmentResponse{}, err
	}

	if file.Size > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		return dto.AttachmentResponse{}, ErrAttachmentTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return dto.AttachmentResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return dto.AttachmentResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		return dto.AttachmentResponse{}, ErrAttachmentTooLarge
	}

	mime := mimetype.Detect(buf.Bytes()).String()
	if !isAllowedAttachmentType(mime) {
		observability.UploadRejected().WithLabelValues("type").Inc()
		return dto.AttachmentResponse{}, ErrAttachmentTypeNotAllowed
	}

	checksum := sha256.Sum256(buf.Bytes())

	folder := fmt.Sprintf("ideas/%d", idea.ID)
	url, err := s.storage.Upload(ctx, folder, file.Filename, bytes.NewReader(buf.Bytes()))
	if err != nil {
		observability.UploadRejected().WithLabelValues("storage").Inc()
		return dto.AttachmentResponse{}, err
	}

	attachment := models.IdeaAttachment{
		IdeaID:     idea.ID,
		FileName:   file.Filename,
		URL:        url,
		MimeType:   mime,
		SizeBytes:  int64(buf.Len()),
		Checksum:   hex.EncodeToString(checksum[:]),
		UploadedBy: actorID,
	}
	if err := s.attachments.Create(ctx, &attachment); err != nil {
		return dto.AttachmentResponse{}, err
	}

	observability.UploadRequests().WithLabelValues("attachment").Inc()
	s.logger.Info().Uint("idea_id", idea.ID).Str("file_name", attachment.FileName).Msg("attachment stored")

	return dto.NewAttachmentResponse(attachment), nil
}

func (s *attachmentService) List(ctx context.Context, ideaID uint) ([]dto.AttachmentResponse, error) {
	if _, err := s.activeIdea(ctx, ideaID); err != nil {
		return nil, err
	}

	attachments, err := s.attachments.ListByIdea(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		responses = append(responses, dto.NewAttachmentResponse(attachment))
	}
	return responses, nil
}

// Delete removes the metadata row. The stored asset is left for the storage
// provider's retention rules; only the idea owner may delete.
func (s *attachmentService) Delete(ctx context.Context, attachmentID, ideaID, actorID uint) error {
	if _, err := s.ownedIdea(ctx, ideaID, actorID); err != nil {
		return err
	}

	attachments, err := s.attachments.ListByIdea(ctx, ideaID)
	if err != nil {
		return err
	}

	for _, attachment := range attachments {
		if attachment.ID == attachmentID {
			if err := s.attachments.Delete(ctx, attachmentID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrAttachmentNotFound
				}
				return err
			}
			return nil
		}
	}

	return ErrAttachmentNotFound
}

func (s *attachmentService) activeIdea(ctx context.Context, ideaID uint) (models.Idea, error) {
	idea, err := s.ideas.GetByID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Idea{}, ErrIdeaNotFound
		}
		return models.Idea{}, err
	}
	if !idea.IsActive {
		return models.Idea{}, ErrIdeaNotFound
	}
	return idea, nil
}

func (s *attachmentService) ownedIdea(ctx context.Context, ideaID, actorID uint) (models.Idea, error) {
	idea, err := s.activeIdea(ctx, ideaID)
	if err != nil {
		return models.Idea{}, err
	}
	if idea.SubmitterID != actorID {
		return models.Idea{}, ErrNotIdeaOwner
	}
	return idea, nil
}

func isAllowedAttachmentType(mime string) bool {
	switch mime {
	case "image/png", "image/jpeg", "image/webp",
		"application/pdf",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return true
	default:
		return false
	}
}
