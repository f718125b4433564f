package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 8086, cfg.Server.Port)
	assert.Equal(t, 384, cfg.VectorStore.Dimension)
	assert.Equal(t, 5, cfg.Retrieval.MaxContextChunks)
	assert.InDelta(t, 0.7, float64(cfg.Retrieval.SimilarityThreshold), 0.0001)
	assert.Equal(t, 60, cfg.RateLimit.MaxRequestsPerMinute)
	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
	assert.Equal(t, 3, cfg.Generation.MaxRetryAttempts)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 1000, cfg.Ingest.ChunkSize)
	assert.Equal(t, 100, cfg.Ingest.ChunkOverlap)

	require.NoError(t, cfg.Validate())
}

func TestLoadFromFilesMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doceo.toml")
	content := `
[server]
port = 9000

[retrieval]
similarity_threshold = 0.8

[llm]
provider = "claude"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.InDelta(t, 0.8, float64(cfg.Retrieval.SimilarityThreshold), 0.0001)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	// Untouched sections keep defaults
	assert.Equal(t, 384, cfg.VectorStore.Dimension)
	assert.Equal(t, 60, cfg.RateLimit.MaxRequestsPerMinute)
}

func TestLoadFromFilesSkipsMissingFiles(t *testing.T) {
	cfg, err := LoadFromFiles(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8086, cfg.Server.Port)
}

func TestLoadFromFilesLaterFileWins(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	override := filepath.Join(dir, "override.toml")
	require.NoError(t, os.WriteFile(base, []byte("[server]\nport = 9000\n"), 0644))
	require.NoError(t, os.WriteFile(override, []byte("[server]\nport = 9100\n"), 0644))

	cfg, err := LoadFromFiles(base, override)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DOCEO_SERVER_PORT", "9200")
	t.Setenv("DOCEO_LOG_LEVEL", "debug")
	t.Setenv("DOCEO_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad provider", func(c *Config) { c.LLM.Provider = "openai" }},
		{"threshold above one", func(c *Config) { c.Retrieval.SimilarityThreshold = 1.5 }},
		{"zero rate limit", func(c *Config) { c.RateLimit.MaxRequestsPerMinute = 0 }},
		{"overlap not below chunk size", func(c *Config) { c.Ingest.ChunkOverlap = c.Ingest.ChunkSize }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
