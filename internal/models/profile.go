package models

import "time"

// Profile roles recognised by the platform.
const (
	RoleSubmitter  = "submitter"
	RoleEvaluator  = "evaluator"
	RoleManagement = "management"
)

// Supported UI languages.
const (
	LanguageEnglish = "en"
	LanguageArabic  = "ar"
)

// Profile represents a platform user identity record.
type Profile struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Email             string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash      string    `gorm:"size:255;not null" json:"-"`
	DisplayName       string    `gorm:"size:255;not null" json:"display_name"`
	Role              string    `gorm:"size:32;not null;default:submitter" json:"role"`
	Department        string    `gorm:"size:128" json:"department"`
	AvatarURL         string    `gorm:"size:512" json:"avatar_url"`
	PreferredLanguage string    `gorm:"size:8;default:en" json:"preferred_language"`
	Active            bool      `gorm:"not null" json:"active"`
	EmailConfirmed    bool      `gorm:"not null;default:false" json:"email_confirmed"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CanEvaluate reports whether the profile may record evaluations.
func (p Profile) CanEvaluate() bool {
	return p.Role == RoleEvaluator || p.Role == RoleManagement
}
