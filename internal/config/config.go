package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"lexbrief/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Remote  RemoteConfig
	Upload  UploadConfig
	Session SessionConfig
	Storage StorageConfig
	Log     LogConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// RemoteConfig points at the external analysis service.
type RemoteConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"` // 0 waits indefinitely
}

// UploadConfig holds the upload ceiling and the configured upload flows.
type UploadConfig struct {
	MaxFileSizeBytes int64  `mapstructure:"max_file_size_bytes"`
	DefaultProfile   string `mapstructure:"default_profile"`
	Profiles         []domain.UploadProfile
}

// Profile looks up an upload profile by name. An empty name selects the default.
func (u *UploadConfig) Profile(name string) (domain.UploadProfile, bool) {
	if name == "" {
		name = u.DefaultProfile
	}
	for _, p := range u.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return domain.UploadProfile{}, false
}

// SessionConfig holds the session cookie and mailbox settings.
type SessionConfig struct {
	Store         string        `mapstructure:"store"`
	RedisURL      string        `mapstructure:"redis_url"`
	TTL           time.Duration `mapstructure:"ttl"`
	SubmissionTTL time.Duration `mapstructure:"submission_ttl"` // redis only: how long an unfinished submission blocks the session
	CookieName    string        `mapstructure:"cookie_name"`
	CookieSecure  bool          `mapstructure:"cookie_secure"`
}

// StorageConfig holds document archive settings.
type StorageConfig struct {
	Provider  string `mapstructure:"provider"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the LEXBRIEF_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LEXBRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.environment", "development")

	// Remote analysis service
	v.SetDefault("remote.base_url", "http://localhost:8000")
	v.SetDefault("remote.timeout", "0s")

	// Upload defaults
	v.SetDefault("upload.max_file_size_bytes", 10*1024*1024)
	v.SetDefault("upload.default_profile", domain.ProfileSummarize)
	v.SetDefault("upload.summarize_path", "/summarize")
	v.SetDefault("upload.summarize_extensions", "pdf,docx,txt")
	v.SetDefault("upload.legal_path", "/upload/")
	v.SetDefault("upload.legal_extensions", "pdf")

	// Session defaults
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.redis_url", "redis://localhost:6379/0")
	v.SetDefault("session.ttl", "2h")
	v.SetDefault("session.submission_ttl", "15m")
	v.SetDefault("session.cookie_name", "lexbrief_session")
	v.SetDefault("session.cookie_secure", false)

	// Storage defaults
	v.SetDefault("storage.provider", "memory")
	v.SetDefault("storage.bucket", "lexbrief-documents")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.use_ssl", true)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "LEXBRIEF_SERVER_PORT",
		"server.read_timeout":         "LEXBRIEF_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "LEXBRIEF_SERVER_WRITE_TIMEOUT",
		"server.environment":          "LEXBRIEF_SERVER_ENVIRONMENT",
		"remote.base_url":             "LEXBRIEF_REMOTE_BASE_URL",
		"remote.timeout":              "LEXBRIEF_REMOTE_TIMEOUT",
		"upload.max_file_size_bytes":  "LEXBRIEF_UPLOAD_MAX_FILE_SIZE_BYTES",
		"upload.default_profile":      "LEXBRIEF_UPLOAD_DEFAULT_PROFILE",
		"upload.summarize_path":       "LEXBRIEF_UPLOAD_SUMMARIZE_PATH",
		"upload.summarize_extensions": "LEXBRIEF_UPLOAD_SUMMARIZE_EXTENSIONS",
		"upload.legal_path":           "LEXBRIEF_UPLOAD_LEGAL_PATH",
		"upload.legal_extensions":     "LEXBRIEF_UPLOAD_LEGAL_EXTENSIONS",
		"session.store":               "LEXBRIEF_SESSION_STORE",
		"session.redis_url":           "LEXBRIEF_SESSION_REDIS_URL",
		"session.ttl":                 "LEXBRIEF_SESSION_TTL",
		"session.submission_ttl":      "LEXBRIEF_SESSION_SUBMISSION_TTL",
		"session.cookie_name":         "LEXBRIEF_SESSION_COOKIE_NAME",
		"session.cookie_secure":       "LEXBRIEF_SESSION_COOKIE_SECURE",
		"storage.provider":            "LEXBRIEF_STORAGE_PROVIDER",
		"storage.bucket":              "LEXBRIEF_STORAGE_BUCKET",
		"storage.region":              "LEXBRIEF_STORAGE_REGION",
		"storage.endpoint":            "LEXBRIEF_STORAGE_ENDPOINT",
		"storage.access_key":          "LEXBRIEF_STORAGE_ACCESS_KEY",
		"storage.secret_key":          "LEXBRIEF_STORAGE_SECRET_KEY",
		"storage.use_ssl":             "LEXBRIEF_STORAGE_USE_SSL",
		"log.level":                   "LEXBRIEF_LOG_LEVEL",
		"log.format":                  "LEXBRIEF_LOG_FORMAT",
		"cors.allowed_origins":        "LEXBRIEF_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if LEXBRIEF_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LEXBRIEF_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Remote = RemoteConfig{
		BaseURL: strings.TrimRight(v.GetString("remote.base_url"), "/"),
		Timeout: v.GetDuration("remote.timeout"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeBytes: v.GetInt64("upload.max_file_size_bytes"),
		DefaultProfile:   v.GetString("upload.default_profile"),
		Profiles: []domain.UploadProfile{
			{
				Name:              domain.ProfileSummarize,
				Path:              v.GetString("upload.summarize_path"),
				AllowedExtensions: splitExtensions(v.GetString("upload.summarize_extensions")),
			},
			{
				Name:              domain.ProfileLegal,
				Path:              v.GetString("upload.legal_path"),
				AllowedExtensions: splitExtensions(v.GetString("upload.legal_extensions")),
			},
		},
	}
	cfg.Session = SessionConfig{
		Store:         v.GetString("session.store"),
		RedisURL:      v.GetString("session.redis_url"),
		TTL:           v.GetDuration("session.ttl"),
		SubmissionTTL: v.GetDuration("session.submission_ttl"),
		CookieName:    v.GetString("session.cookie_name"),
		CookieSecure:  v.GetBool("session.cookie_secure"),
	}
	cfg.Storage = StorageConfig{
		Provider:  v.GetString("storage.provider"),
		Bucket:    v.GetString("storage.bucket"),
		Region:    v.GetString("storage.region"),
		Endpoint:  v.GetString("storage.endpoint"),
		AccessKey: v.GetString("storage.access_key"),
		SecretKey: v.GetString("storage.secret_key"),
		UseSSL:    v.GetBool("storage.use_ssl"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	return cfg, nil
}

// splitList parses a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// splitExtensions is splitList for extension allow-lists: ".PDF, docx" becomes [pdf docx].
func splitExtensions(s string) []string {
	items := splitList(s)
	for i, item := range items {
		items[i] = strings.ToLower(strings.TrimPrefix(item, "."))
	}
	return items
}
