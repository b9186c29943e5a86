package dto

import "github.com/afkar-io/afkar-api/internal/models"

// LocaleContext states the active locale and its text direction explicitly.
type LocaleContext struct {
	Locale    string `json:"locale"`
	Direction string `json:"direction"`
}

// ListOfValueResponse is one bilingual lookup entry resolved for a locale.
type ListOfValueResponse struct {
	Domain    string `json:"domain"`
	Code      string `json:"code"`
	Label     string `json:"label"`
	SortOrder int    `json:"sort_order"`
}

// LocalizationBundleResponse carries everything a client needs to render a locale.
type LocalizationBundleResponse struct {
	Context      LocaleContext         `json:"context"`
	Translations map[string]string     `json:"translations"`
	Values       []ListOfValueResponse `json:"values"`
	CacheHit     bool                  `json:"cache_hit,omitempty"`
}

// NewListOfValueResponse resolves a lookup entry label for the given locale.
func NewListOfValueResponse(model models.ListOfValue, locale string) ListOfValueResponse {
	label := model.LabelEn
	if locale == models.LanguageArabic && model.LabelAr != "" {
		label = model.LabelAr
	}

	return ListOfValueResponse{
		Domain:    model.Domain,
		Code:      model.Code,
		Label:     label,
		SortOrder: model.SortOrder,
	}
}
