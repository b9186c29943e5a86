package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/observability"
	"github.com/afkar-io/afkar-api/internal/repository"
)

var (
	// ErrProfileNotFound indicates the requested profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrAvatarTooLarge indicates the picture exceeded the configured limit.
	ErrAvatarTooLarge = errors.New("avatar exceeds maximum allowed size")
	// ErrAvatarTypeNotAllowed indicates the detected image type is not permitted.
	ErrAvatarTypeNotAllowed = errors.New("avatar file type not allowed")
)

// FileStorage abstracts the remote asset store.
type FileStorage interface {
	Upload(ctx context.Context, folder, name string, reader io.Reader) (string, error)
}

// ProfileService exposes profile and avatar use cases.
type ProfileService interface {
	Get(ctx context.Context, id uint) (dto.ProfileResponse, error)
	Update(ctx context.Context, id uint, payload dto.ProfileUpdateRequest) (dto.ProfileResponse, error)
	AdminUpdate(ctx context.Context, id uint, payload dto.ProfileAdminUpdateRequest) (dto.ProfileResponse, error)
	List(ctx context.Context, filter repository.ProfileFilter) (dto.ProfileListResponse, error)
	UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (dto.AvatarResponse, error)
}

type profileService struct {
	repo      repository.ProfileRepository
	storage   FileStorage
	validator *validator.Validate
	logger    zerolog.Logger
	maxSize   int64
	tracer    trace.Tracer
	now       func() time.Time
}

// NewProfileService constructs the profile service.
func NewProfileService(repo repository.ProfileRepository, storage FileStorage, maxSizeMB int, validate *validator.Validate, logger zerolog.Logger) ProfileService {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &profileService{
		repo:      repo,
		storage:   storage,
		validator: validate,
		logger:    logger.With().Str("component", "profile_service").Logger(),
		maxSize:   int64(maxSizeMB) * 1024 * 1024,
		tracer:    otel.Tracer("github.com/afkar-io/afkar-api/internal/service/profile"),
		now:       time.Now,
	}
}

func (s *profileService) Get(ctx context.Context, id uint) (dto.ProfileResponse, error) {
	profile, err := s.fetch(ctx, id)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	return dto.NewProfileResponse(profile), nil
}

func (s *profileService) Update(ctx context.Context, id uint, payload dto.ProfileUpdateRequest) (dto.ProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProfileResponse{}, err
	}

	profile, err := s.fetch(ctx, id)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	if payload.DisplayName != nil {
		profile.DisplayName = *payload.DisplayName
	}
	if payload.Department != nil {
		profile.Department = *payload.Department
	}
	if payload.PreferredLanguage != nil {
		profile.PreferredLanguage = *payload.PreferredLanguage
	}

	if err := s.repo.Update(ctx, &profile); err != nil {
		return dto.ProfileResponse{}, err
	}

	return dto.NewProfileResponse(profile), nil
}

func (s *profileService) AdminUpdate(ctx context.Context, id uint, payload dto.ProfileAdminUpdateRequest) (dto.ProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProfileResponse{}, err
	}

	profile, err := s.fetch(ctx, id)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	if payload.Role != nil {
		profile.Role = *payload.Role
	}
	if payload.Active != nil {
		profile.Active = *payload.Active
	}

	if err := s.repo.Update(ctx, &profile); err != nil {
		return dto.ProfileResponse{}, err
	}

	s.logger.Info().Uint("profile_id", profile.ID).Str("role", profile.Role).Msg("profile updated by management")

	return dto.NewProfileResponse(profile), nil
}

func (s *profileService) List(ctx context.Context, filter repository.ProfileFilter) (dto.ProfileListResponse, error) {
	profiles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ProfileListResponse{}, err
	}

	pagination := dto.PaginationMeta{
		Page:       maxInt(filter.Page, 1),
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: 1,
	}
	if filter.PageSize > 0 {
		pagination.TotalPages = int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	}

	return dto.ProfileListResponse{Items: dto.NewProfileResponseSlice(profiles), Pagination: pagination}, nil
}

// UploadAvatar validates the picture before any storage call, then stores it
// under the user's own folder and writes the URL back to the profile.
func (s *profileService) UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (dto.AvatarResponse, error) {
	ctx, span := s.tracer.Start(ctx, "profile.upload_avatar")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	if file == nil {
		err := errors.New("file is required")
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.AvatarResponse{}, err
	}

	span.SetAttributes(
		attribute.Int("avatar.user_id", int(userID)),
		attribute.Int64("avatar.request_size", file.Size),
	)

	if file.Size > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrAvatarTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.AvatarResponse{}, ErrAvatarTooLarge
	}

	profile, err := s.fetch(ctx, userID)
	if err != nil {
		return dto.AvatarResponse{}, err
	}

	handle, err := file.Open()
	if err != nil {
		span.RecordError(err)
		return dto.AvatarResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		span.RecordError(err)
		return dto.AvatarResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrAvatarTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.AvatarResponse{}, ErrAvatarTooLarge
	}

	mime := mimetype.Detect(buf.Bytes()).String()
	span.SetAttributes(attribute.String("avatar.detected_mime", mime))
	if !isAllowedAvatarType(mime) {
		observability.UploadRejected().WithLabelValues("type").Inc()
		span.RecordError(ErrAvatarTypeNotAllowed)
		span.SetStatus(codes.Error, "type not allowed")
		return dto.AvatarResponse{}, ErrAvatarTypeNotAllowed
	}

	// Time-based names within the user's exclusive folder; collisions are
	// possible only for two uploads in the same nanosecond.
	folder := fmt.Sprintf("avatars/%d", userID)
	name := fmt.Sprintf("avatar-%d", s.now().UnixNano())

	url, err := s.storage.Upload(ctx, folder, name, bytes.NewReader(buf.Bytes()))
	if err != nil {
		observability.UploadRejected().WithLabelValues("storage").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return dto.AvatarResponse{}, err
	}

	profile.AvatarURL = url
	if err := s.repo.Update(ctx, &profile); err != nil {
		span.RecordError(err)
		return dto.AvatarResponse{}, err
	}

	observability.UploadRequests().WithLabelValues("avatar").Inc()
	span.SetStatus(codes.Ok, "stored")

	return dto.AvatarResponse{
		URL:       url,
		MimeType:  mime,
		SizeBytes: int64(buf.Len()),
	}, nil
}

func (s *profileService) fetch(ctx context.Context, id uint) (models.Profile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Profile{}, ErrProfileNotFound
		}
		return models.Profile{}, err
	}
	return profile, nil
}

func isAllowedAvatarType(mime string) bool {
	switch mime {
	case "image/png", "image/jpeg", "image/webp":
		return true
	default:
		return false
	}
}
