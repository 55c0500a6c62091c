package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexbrief/internal/config"
	"lexbrief/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, int64(10485760), cfg.Upload.MaxFileSizeBytes)
	assert.Equal(t, time.Duration(0), cfg.Remote.Timeout)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 15*time.Minute, cfg.Session.SubmissionTTL)

	summarize, ok := cfg.Upload.Profile("")
	require.True(t, ok)
	assert.Equal(t, domain.ProfileSummarize, summarize.Name)
	assert.Equal(t, "/summarize", summarize.Path)
	assert.Equal(t, []string{"pdf", "docx", "txt"}, summarize.AllowedExtensions)

	legal, ok := cfg.Upload.Profile(domain.ProfileLegal)
	require.True(t, ok)
	assert.Equal(t, "/upload/", legal.Path)
	assert.Equal(t, []string{"pdf"}, legal.AllowedExtensions)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LEXBRIEF_REMOTE_BASE_URL", "https://api.example.com/")
	t.Setenv("LEXBRIEF_UPLOAD_LEGAL_EXTENSIONS", ".PDF, .Docx ,")
	t.Setenv("LEXBRIEF_SESSION_TTL", "30m")
	t.Setenv("LEXBRIEF_CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.Remote.BaseURL)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)

	legal, ok := cfg.Upload.Profile(domain.ProfileLegal)
	require.True(t, ok)
	assert.Equal(t, []string{"pdf", "docx"}, legal.AllowedExtensions)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestUploadConfig_UnknownProfile(t *testing.T) {
	u := config.UploadConfig{DefaultProfile: "summarize"}
	_, ok := u.Profile("fax")
	assert.False(t, ok)
}
