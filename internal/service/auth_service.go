package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/afkar-io/afkar-api/internal/dto"
	"github.com/afkar-io/afkar-api/internal/models"
	"github.com/afkar-io/afkar-api/internal/repository"
)

var (
	// ErrInvalidCredentials indicates the email/password pair does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrAccountInactive indicates the account exists but has been deactivated.
	ErrAccountInactive = errors.New("account is deactivated")
)

// AuthService handles registration, sign-in and token issuance.
type AuthService interface {
	SignUp(ctx context.Context, payload dto.SignUpRequest) (dto.AuthResponse, error)
	SignIn(ctx context.Context, payload dto.SignInRequest) (dto.AuthResponse, error)
	Me(ctx context.Context, userID uint) (dto.ProfileResponse, error)
}

type authService struct {
	profiles  repository.ProfileRepository
	validator *validator.Validate
	logger    zerolog.Logger
	secret    []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAuthService constructs the auth service. tokenTTL falls back to 24h.
func NewAuthService(profiles repository.ProfileRepository, secret string, tokenTTL time.Duration, validate *validator.Validate, logger zerolog.Logger) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &authService{
		profiles:  profiles,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

func (s *authService) SignUp(ctx context.Context, payload dto.SignUpRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
		return dto.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	language := payload.Language
	if language == "" {
		language = models.LanguageEnglish
	}

	profile := models.Profile{
		Email:             email,
		PasswordHash:      string(hash),
		DisplayName:       strings.TrimSpace(payload.DisplayName),
		Role:              models.RoleSubmitter,
		Department:        strings.TrimSpace(payload.Department),
		PreferredLanguage: language,
		Active:            true,
	}
	if err := s.profiles.Create(ctx, &profile); err != nil {
		return dto.AuthResponse{}, err
	}

	s.logger.Info().Uint("profile_id", profile.ID).Msg("profile registered")

	token, err := s.issueToken(profile)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{Token: token, Profile: dto.NewProfileResponse(profile)}, nil
}

func (s *authService) SignIn(ctx context.Context, payload dto.SignInRequest) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	if !profile.Active {
		return dto.AuthResponse{}, ErrAccountInactive
	}

	token, err := s.issueToken(profile)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{Token: token, Profile: dto.NewProfileResponse(profile)}, nil
}

func (s *authService) Me(ctx context.Context, userID uint) (dto.ProfileResponse, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrProfileNotFound
		}
		return dto.ProfileResponse{}, err
	}
	return dto.NewProfileResponse(profile), nil
}

func (s *authService) issueToken(profile models.Profile) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(profile.ID), 10),
		"role": profile.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
