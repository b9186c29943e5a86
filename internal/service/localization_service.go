package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/repository"
)

// LocalizationService resolves locales and serves translation bundles.
type LocalizationService interface {
	ResolveLocale(requested string) dto.LocaleContext
	Bundle(ctx context.Context, locale, domain string) (dto.LocalizationBundleResponse, error)
	UpsertTranslations(ctx context.Context, items []models.Translation) (int64, error)
	UpsertValues(ctx context.Context, items []models.ListOfValue) (int64, error)
}

type localizationService struct {
	repo     repository.LocalizationRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewLocalizationService builds the localization service.
func NewLocalizationService(repo repository.LocalizationRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) LocalizationService {
	return &localizationService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "localization_service").Logger(),
	}
}

// ResolveLocale normalizes the requested locale and states its text direction
// explicitly. Unknown locales fall back to English, left-to-right.
func (s *localizationService) ResolveLocale(requested string) dto.LocaleContext {
	locale := strings.ToLower(strings.TrimSpace(requested))
	if idx := strings.IndexAny(locale, "-_,;"); idx > 0 {
		locale = locale[:idx]
	}

	switch locale {
	case models.LanguageArabic:
		return dto.LocaleContext{Locale: models.LanguageArabic, Direction: "rtl"}
	default:
		return dto.LocaleContext{Locale: models.LanguageEnglish, Direction: "ltr"}
	}
}

// Bundle returns everything a client needs to render one locale: the locale
// context, the flat translation map and the lookup values resolved to labels.
func (s *localizationService) Bundle(ctx context.Context, locale, domain string) (dto.LocalizationBundleResponse, error) {
	localeCtx := s.ResolveLocale(locale)
	cacheKey := fmt.Sprintf("l10n:bundle:%s:%s", localeCtx.Locale, domain)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.LocalizationBundleResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read localization cache")
		}
	}

	translations, err := s.repo.ListTranslations(ctx, localeCtx.Locale)
	if err != nil {
		return dto.LocalizationBundleResponse{}, err
	}

	values, err := s.repo.ListValues(ctx, domain)
	if err != nil {
		return dto.LocalizationBundleResponse{}, err
	}

	translationMap := make(map[string]string, len(translations))
	for _, translation := range translations {
		translationMap[translation.Key] = translation.Value
	}

	valueResponses := make([]dto.ListOfValueResponse, 0, len(values))
	for _, value := range values {
		valueResponses = append(valueResponses, dto.NewListOfValueResponse(value, localeCtx.Locale))
	}

	response := dto.LocalizationBundleResponse{
		Context:      localeCtx,
		Translations: translationMap,
		Values:       valueResponses,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store localization cache")
			}
		}
	}

	return response, nil
}

func (s *localizationService) UpsertTranslations(ctx context.Context, items []models.Translation) (int64, error) {
	affected, err := s.repo.UpsertTranslations(ctx, items)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return affected, nil
}

func (s *localizationService) UpsertValues(ctx context.Context, items []models.ListOfValue) (int64, error) {
	affected, err := s.repo.UpsertValues(ctx, items)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return affected, nil
}

func (s *localizationService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}

	iter := s.cache.Scan(ctx, 0, "l10n:bundle:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn().Err(err).Str("key", iter.Val()).Msg("failed to invalidate localization cache")
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn().Err(err).Msg("localization cache scan failed")
	}
}
