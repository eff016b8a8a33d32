package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage" validate:"required"`
	Provider ProviderConfig `mapstructure:"provider" validate:"required"`
	Task     TaskConfig     `mapstructure:"task" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port               int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel           string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	MaxUploadBytes     int64    `mapstructure:"max_upload_bytes" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	// AutoMigrate applies pending migrations on startup.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// Storage backends
const (
	StorageBackendSupabase   = "supabase"
	StorageBackendFilesystem = "filesystem"
)

// StorageConfig selects and configures the blob store for uploaded assets.
type StorageConfig struct {
	Backend       string `mapstructure:"backend" validate:"required,oneof=supabase filesystem"`
	SupabaseURL   string `mapstructure:"supabase_url" validate:"required_if=Backend supabase,omitempty,url"`
	SupabaseKey   string `mapstructure:"supabase_key" validate:"required_if=Backend supabase"`
	ManualsBucket string `mapstructure:"manuals_bucket" validate:"required"`
	ImagesBucket  string `mapstructure:"images_bucket" validate:"required"`
	LocalPath     string `mapstructure:"local_path" validate:"required_if=Backend filesystem"`
	// PublicBaseURL is the prefix under which the filesystem backend's files are served.
	PublicBaseURL string `mapstructure:"public_base_url" validate:"omitempty,url"`
}

// Provider names
const (
	ProviderRunware = "runware"
	ProviderVeo     = "veo"
)

// ProviderConfig configures the video inference provider and the fixed
// generation parameters sent with every request.
type ProviderConfig struct {
	Name           string `mapstructure:"name" validate:"required,oneof=runware veo"`
	RunwareAPIKey  string `mapstructure:"runware_api_key" validate:"required_if=Name runware"`
	RunwareBaseURL string `mapstructure:"runware_base_url" validate:"required,url"`
	GoogleAPIKey   string `mapstructure:"google_api_key" validate:"required_if=Name veo"`
	Model          string `mapstructure:"model" validate:"required"`
	VeoModel       string `mapstructure:"veo_model" validate:"required"`
	DurationSecs   int    `mapstructure:"duration_seconds" validate:"gt=0"`
	FPS            int    `mapstructure:"fps" validate:"gt=0"`
	Width          int    `mapstructure:"width" validate:"gt=0"`
	Height         int    `mapstructure:"height" validate:"gt=0"`
	OutputFormat   string `mapstructure:"output_format" validate:"required"`
	OutputQuality  int    `mapstructure:"output_quality" validate:"gte=1,lte=100"`
	DeliveryMethod string `mapstructure:"delivery_method" validate:"required,oneof=sync async"`
	GenerateAudio  bool   `mapstructure:"generate_audio"`
	EnhancePrompt  bool   `mapstructure:"enhance_prompt"`
}

// TaskConfig controls the background task runner.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"gt=0"`
	QueueSize   int `mapstructure:"queue_size" validate:"gt=0"`
	// RecoverQueued re-dispatches videos left queued by a previous process.
	RecoverQueued bool `mapstructure:"recover_queued"`
}
