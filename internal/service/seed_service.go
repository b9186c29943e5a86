package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService orchestrates reference-data and account seeding.
type SeedService interface {
	SeedTranslations(ctx context.Context, token string, items []models.Translation) (int64, error)
	SeedValues(ctx context.Context, token string, items []models.ListOfValue) (int64, error)
	SeedAccounts(ctx context.Context, token string, accounts []SeedAccount) (int64, error)
}

// SeedAccount describes one account fixture. Existing emails are skipped, not
// overwritten.
type SeedAccount struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Department  string `json:"department"`
	Language    string `json:"language"`
}

type seedService struct {
	localization LocalizationService
	profiles     repository.ProfileRepository
	enabled      bool
	token        string
	logger       zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(localization LocalizationService, profiles repository.ProfileRepository, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		localization: localization,
		profiles:     profiles,
		enabled:      enabled,
		token:        token,
		logger:       logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) SeedTranslations(ctx context.Context, token string, items []models.Translation) (int64, error) {
	if err := s.authorize(token); err != nil {
		return 0, err
	}

	normalized := make([]models.Translation, 0, len(items))
	for _, item := range items {
		item.Key = strings.TrimSpace(item.Key)
		item.Locale = strings.ToLower(strings.TrimSpace(item.Locale))
		if item.Key == "" || item.Locale == "" {
			continue
		}
		normalized = append(normalized, item)
	}

	affected, err := s.localization.UpsertTranslations(ctx, normalized)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("affected", affected).Msg("translations seeded")
	return affected, nil
}

func (s *seedService) SeedValues(ctx context.Context, token string, items []models.ListOfValue) (int64, error) {
	if err := s.authorize(token); err != nil {
		return 0, err
	}

	normalized := make([]models.ListOfValue, 0, len(items))
	for _, item := range items {
		item.Domain = strings.ToLower(strings.TrimSpace(item.Domain))
		item.Code = strings.ToLower(strings.TrimSpace(item.Code))
		if item.Domain == "" || item.Code == "" || item.LabelEn == "" {
			continue
		}
		normalized = append(normalized, item)
	}

	affected, err := s.localization.UpsertValues(ctx, normalized)
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("affected", affected).Msg("lookup values seeded")
	return affected, nil
}

func (s *seedService) SeedAccounts(ctx context.Context, token string, accounts []SeedAccount) (int64, error) {
	if err := s.authorize(token); err != nil {
		return 0, err
	}

	var created int64
	for _, account := range accounts {
		email := strings.ToLower(strings.TrimSpace(account.Email))
		if email == "" || account.Password == "" {
			continue
		}

		if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
		if err != nil {
			return created, err
		}

		role := strings.ToLower(strings.TrimSpace(account.Role))
		switch role {
		case models.RoleSubmitter, models.RoleEvaluator, models.RoleManagement:
		default:
			role = models.RoleSubmitter
		}

		language := account.Language
		if language != models.LanguageArabic {
			language = models.LanguageEnglish
		}

		profile := models.Profile{
			Email:             email,
			PasswordHash:      string(hash),
			DisplayName:       strings.TrimSpace(account.DisplayName),
			Role:              role,
			Department:        strings.TrimSpace(account.Department),
			PreferredLanguage: language,
			Active:            true,
			EmailConfirmed:    true,
		}
		if err := s.profiles.Create(ctx, &profile); err != nil {
			return created, err
		}
		created++
	}

	s.logger.Info().Int64("created", created).Msg("accounts seeded")
	return created, nil
}

func (s *seedService) authorize(token string) error {
	if !s.enabled {
		return ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return ErrSeedUnauthorized
	}
	return nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.TrimSpace(token))) == 1
}
