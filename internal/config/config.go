package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                 string
	AppEnv                  string
	AppPort                 string
	DatabaseURL             string
	RedisURL                string
	NATSUrl                 string
	JWTSecret               string
	JWTTokenTTL             time.Duration
	CloudinaryCloudName     string
	CloudinaryAPIKey        string
	CloudinaryAPISecret     string
	CloudinaryUploadFolder  string
	DashboardCacheTTL       time.Duration
	LocalizationCacheTTL    time.Duration
	NotificationChannelBase string
	UploadMaxSizeMB         int
	SeedEnabled             bool
	SeedToken               string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("AFKAR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Afkar API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cloudinary.folder", "afkar/uploads")
	v.SetDefault("dashboard.cache_ttl", "5m")
	v.SetDefault("localization.cache_ttl", "30m")
	v.SetDefault("notification.channel_base", "afkar")
	v.SetDefault("jwt.token_ttl", "24h")
	v.SetDefault("upload.max_size_mb", 5)

	dashboardTTL, err := parseDuration(v.GetString("dashboard.cache_ttl"), "5m")
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	localizationTTL, err := parseDuration(v.GetString("localization.cache_ttl"), "30m")
	if err != nil {
		return Config{}, fmt.Errorf("invalid localization cache ttl: %w", err)
	}

	tokenTTL, err := parseDuration(v.GetString("jwt.token_ttl"), "24h")
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt token ttl: %w", err)
	}

	cfg := Config{
		AppName:                 v.GetString("app.name"),
		AppEnv:                  v.GetString("app.env"),
		AppPort:                 v.GetString("app.port"),
		DatabaseURL:             v.GetString("database.url"),
		RedisURL:                v.GetString("redis.url"),
		NATSUrl:                 v.GetString("nats.url"),
		JWTSecret:               v.GetString("jwt.secret"),
		JWTTokenTTL:             tokenTTL,
		CloudinaryCloudName:     v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:        v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:     v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder:  v.GetString("cloudinary.folder"),
		DashboardCacheTTL:       dashboardTTL,
		LocalizationCacheTTL:    localizationTTL,
		NotificationChannelBase: v.GetString("notification.channel_base"),
		UploadMaxSizeMB:         v.GetInt("upload.max_size_mb"),
		SeedEnabled:             v.GetBool("seed.enabled"),
		SeedToken:               v.GetString("seed.token"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.UploadMaxSizeMB <= 0 {
		cfg.UploadMaxSizeMB = 5
	}

	return cfg, nil
}

func parseDuration(value, fallback string) (time.Duration, error) {
	if value == "" {
		value = fallback
	}
	return time.ParseDuration(value)
}
