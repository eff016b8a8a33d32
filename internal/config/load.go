package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "GEARCAST"

// envFiles are loaded, when present, before the environment is read.
// Variables already set in the process environment win.
var envFiles = []string{".env.local", ".env"}

// legacyEnv maps config keys to unprefixed variable names that are also
// accepted, so existing .env files keep working.
var legacyEnv = map[string]string{
	"storage.supabase_url":     "SUPABASE_URL",
	"storage.supabase_key":     "SUPABASE_KEY",
	"storage.manuals_bucket":   "SUPABASE_MANUALS_STORAGE",
	"storage.images_bucket":    "SUPABASE_IMAGES_STORAGE",
	"provider.runware_api_key": "RUNWARE_API_KEY",
	"provider.google_api_key":  "GOOGLE_API_KEY",
	"database.url":             "DATABASE_URL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{
		"http://localhost:8080",
		"http://localhost:5173",
		"http://localhost:3000",
	})
	v.SetDefault("server.max_upload_bytes", 50<<20)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("storage.backend", StorageBackendSupabase)
	v.SetDefault("storage.supabase_url", "")
	v.SetDefault("storage.supabase_key", "")
	v.SetDefault("storage.manuals_bucket", "manuals")
	v.SetDefault("storage.images_bucket", "images")
	v.SetDefault("storage.local_path", "./data/blobs")
	v.SetDefault("storage.public_base_url", "")

	v.SetDefault("provider.name", ProviderRunware)
	v.SetDefault("provider.runware_api_key", "")
	v.SetDefault("provider.runware_base_url", "https://api.runware.ai/v1")
	v.SetDefault("provider.google_api_key", "")
	v.SetDefault("provider.model", "google:3@2")
	v.SetDefault("provider.veo_model", "veo-2.0-generate-001")
	v.SetDefault("provider.duration_seconds", 8)
	v.SetDefault("provider.fps", 24)
	v.SetDefault("provider.width", 1280)
	v.SetDefault("provider.height", 720)
	v.SetDefault("provider.output_format", "MP4")
	v.SetDefault("provider.output_quality", 85)
	v.SetDefault("provider.delivery_method", "sync")
	v.SetDefault("provider.generate_audio", true)
	v.SetDefault("provider.enhance_prompt", true)

	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.recover_queued", true)
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	for _, f := range envFiles {
		// Missing files are fine; anything else is a malformed file.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("error binding env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
