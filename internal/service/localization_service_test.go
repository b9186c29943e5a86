package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/repository"
)

func TestResolveLocaleDirection(t *testing.T) {
	svc := NewLocalizationService(nil, nil, time.Minute, testLogger())

	cases := map[string]struct {
		locale    string
		direction string
	}{
		"ar":         {models.LanguageArabic, "rtl"},
		"AR":         {models.LanguageArabic, "rtl"},
		"ar-SA":      {models.LanguageArabic, "rtl"},
		"en":         {models.LanguageEnglish, "ltr"},
		"en-US":      {models.LanguageEnglish, "ltr"},
		"fr":         {models.LanguageEnglish, "ltr"},
		"":           {models.LanguageEnglish, "ltr"},
		"  ar  ":     {models.LanguageArabic, "rtl"},
		"ar,en;q=.9": {models.LanguageArabic, "rtl"},
	}

	for requested, expected := range cases {
		resolved := svc.ResolveLocale(requested)
		require.Equal(t, expected.locale, resolved.Locale, "requested %q", requested)
		require.Equal(t, expected.direction, resolved.Direction, "requested %q", requested)
	}
}

func TestBundleResolvesArabicLabels(t *testing.T) {
	db := setupServiceDB(t)
	repo := repository.NewLocalizationRepository(db)
	svc := NewLocalizationService(repo, nil, time.Minute, testLogger())
	ctx := context.Background()

	_, err := repo.UpsertTranslations(ctx, []models.Translation{
		{Key: "nav.ideas", Locale: "ar", Value: "الأفكار"},
		{Key: "nav.ideas", Locale: "en", Value: "Ideas"},
	})
	require.NoError(t, err)

	_, err = repo.UpsertValues(ctx, []models.ListOfValue{
		{Domain: "category", Code: "process", LabelEn: "Process", LabelAr: "عمليات", SortOrder: 1, Active: true},
		{Domain: "category", Code: "product", LabelEn: "Product", SortOrder: 2, Active: true},
	})
	require.NoError(t, err)

	bundle, err := svc.Bundle(ctx, "ar", "category")
	require.NoError(t, err)
	require.Equal(t, "rtl", bundle.Context.Direction)
	require.Equal(t, "الأفكار", bundle.Translations["nav.ideas"])
	require.Len(t, bundle.Values, 2)
	require.Equal(t, "عمليات", bundle.Values[0].Label)
	// Entries without an Arabic label fall back to English.
	require.Equal(t, "Product", bundle.Values[1].Label)
}

func TestBundleCachedAndInvalidatedOnUpsert(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	db := setupServiceDB(t)
	repo := repository.NewLocalizationRepository(db)
	svc := NewLocalizationService(repo, redisClient, time.Minute, testLogger())
	ctx := context.Background()

	_, err = svc.UpsertTranslations(ctx, []models.Translation{
		{Key: "nav.ideas", Locale: "en", Value: "Ideas"},
	})
	require.NoError(t, err)

	first, err := svc.Bundle(ctx, "en", "")
	require.NoError(t, err)
	require.False(t, first.CacheHit)

	second, err := svc.Bundle(ctx, "en", "")
	require.NoError(t, err)
	require.True(t, second.CacheHit)

	_, err = svc.UpsertTranslations(ctx, []models.Translation{
		{Key: "nav.ideas", Locale: "en", Value: "Idea Portfolio"},
	})
	require.NoError(t, err)

	third, err := svc.Bundle(ctx, "en", "")
	require.NoError(t, err)
	require.False(t, third.CacheHit)
	require.Equal(t, "Idea Portfolio", third.Translations["nav.ideas"])
}
