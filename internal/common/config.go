package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config is the root configuration structure loaded from TOML files,
// environment variables and CLI flags (in that order of precedence).
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Logging     LoggingConfig     `toml:"logging"`
	VectorStore VectorStoreConfig `toml:"vectorstore"`
	Retrieval   RetrievalConfig   `toml:"retrieval"`
	LLM         LLMConfig         `toml:"llm"`
	Gemini      GeminiConfig      `toml:"gemini"`
	Claude      ClaudeConfig      `toml:"claude"`
	Generation  GenerationConfig  `toml:"generation"`
	RateLimit   RateLimitConfig   `toml:"ratelimit"`
	Ingest      IngestConfig      `toml:"ingest"`
	Audit       AuditConfig       `toml:"audit"`
	Storage     StorageConfig     `toml:"storage"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port" validate:"min=1,max=65535"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=trace debug info warn error"`
	Output []string `toml:"output"`
}

// VectorStoreConfig contains embedded vector database settings
type VectorStoreConfig struct {
	Path       string `toml:"path" validate:"required"`
	Collection string `toml:"collection" validate:"required"`
	Dimension  int    `toml:"dimension" validate:"min=1"`
}

// RetrievalConfig controls similarity search and context assembly
type RetrievalConfig struct {
	TopK                int     `toml:"top_k" validate:"min=1"`
	MaxContextChunks    int     `toml:"max_context_chunks" validate:"min=1"`
	SimilarityThreshold float32 `toml:"similarity_threshold" validate:"min=0,max=1"`
}

// LLMConfig selects the generation provider
type LLMConfig struct {
	Provider string `toml:"provider" validate:"oneof=gemini claude"`
}

// GeminiConfig contains Google Gemini API settings
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
	Timeout     string  `toml:"timeout"`
	RateLimit   string  `toml:"rate_limit"`
}

// ClaudeConfig contains Anthropic Claude API settings
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
	Timeout     string  `toml:"timeout"`
	RateLimit   string  `toml:"rate_limit"`
}

// GenerationConfig controls retry behavior for LLM calls
type GenerationConfig struct {
	MaxRetryAttempts int    `toml:"max_retry_attempts" validate:"min=1"`
	RetryBaseDelay   string `toml:"retry_base_delay"`
}

// RateLimitConfig controls the per-client sliding window limiter
type RateLimitConfig struct {
	MaxRequestsPerMinute int `toml:"max_requests_per_minute" validate:"min=1"`
	WindowSeconds        int `toml:"window_seconds" validate:"min=1"`
}

// IngestConfig controls corpus ingestion
type IngestConfig struct {
	Dir          string `toml:"dir"`
	ChunkSize    int    `toml:"chunk_size" validate:"min=1"`
	ChunkOverlap int    `toml:"chunk_overlap" validate:"min=0"`
	Schedule     string `toml:"schedule"`
	Watch        bool   `toml:"watch"`
}

// AuditConfig controls LLM audit logging
type AuditConfig struct {
	Enabled    bool `toml:"enabled"`
	LogPrompts bool `toml:"log_prompts"`
}

// StorageConfig contains local storage settings
type StorageConfig struct {
	Path string `toml:"path"`
}

// NewDefaultConfig returns configuration with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8086,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		VectorStore: VectorStoreConfig{
			Path:       "./data/vectors",
			Collection: "mathematics",
			Dimension:  384,
		},
		Retrieval: RetrievalConfig{
			TopK:                10,
			MaxContextChunks:    5,
			SimilarityThreshold: 0.7,
		},
		LLM: LLMConfig{
			Provider: "gemini",
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.0-flash",
			Temperature: 0.2,
			MaxTokens:   1200,
			Timeout:     "2m",
			RateLimit:   "4s",
		},
		Claude: ClaudeConfig{
			Model:       "claude-haiku-3-5-20241022",
			Temperature: 0.2,
			MaxTokens:   1200,
			Timeout:     "2m",
			RateLimit:   "4s",
		},
		Generation: GenerationConfig{
			MaxRetryAttempts: 3,
			RetryBaseDelay:   "1s",
		},
		RateLimit: RateLimitConfig{
			MaxRequestsPerMinute: 60,
			WindowSeconds:        60,
		},
		Ingest: IngestConfig{
			Dir:          "./corpus",
			ChunkSize:    1000,
			ChunkOverlap: 100,
			Schedule:     "0 3 * * *",
			Watch:        true,
		},
		Audit: AuditConfig{
			Enabled:    true,
			LogPrompts: false,
		},
		Storage: StorageConfig{
			Path: "./data/audit",
		},
	}
}

// LoadFromFiles loads configuration starting from defaults, merging each
// existing TOML file in order, then applying environment overrides.
// Missing files are skipped silently so deployments can layer optional
// overrides on top of a base config.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	config.applyEnvOverrides()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies DOCEO_* environment variables over file values
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DOCEO_SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("DOCEO_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("DOCEO_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("DOCEO_VECTORSTORE_PATH"); v != "" {
		c.VectorStore.Path = v
	}
	if v := os.Getenv("DOCEO_LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("DOCEO_GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && c.Gemini.APIKey == "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("DOCEO_CLAUDE_API_KEY"); v != "" {
		c.Claude.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && c.Claude.APIKey == "" {
		c.Claude.APIKey = v
	}
	if v := os.Getenv("DOCEO_INGEST_DIR"); v != "" {
		c.Ingest.Dir = v
	}
	if v := os.Getenv("DOCEO_RATELIMIT_MAX_REQUESTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateLimit.MaxRequestsPerMinute = n
		}
	}
	if v := os.Getenv("DOCEO_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		c.Server.AllowedOrigins = origins
	}
}

// Validate checks structural constraints on the loaded configuration
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Ingest.ChunkOverlap >= c.Ingest.ChunkSize {
		return fmt.Errorf("invalid configuration: ingest.chunk_overlap (%d) must be smaller than ingest.chunk_size (%d)",
			c.Ingest.ChunkOverlap, c.Ingest.ChunkSize)
	}
	return nil
}
