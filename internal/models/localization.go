package models

import "time"

// Translation holds a single localized UI string.
type Translation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"size:255;not null;index:idx_translation_key_locale,unique" json:"key"`
	Locale    string    `gorm:"size:8;not null;index:idx_translation_key_locale,unique" json:"locale"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListOfValue is a bilingual lookup entry (categories, departments, statuses).
type ListOfValue struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Domain    string    `gorm:"size:64;not null;index:idx_lov_domain_code,unique" json:"domain"`
	Code      string    `gorm:"size:64;not null;index:idx_lov_domain_code,unique" json:"code"`
	LabelEn   string    `gorm:"size:255;not null" json:"label_en"`
	LabelAr   string    `gorm:"size:255" json:"label_ar"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
