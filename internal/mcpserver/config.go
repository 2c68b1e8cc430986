package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oas2sls/serverless"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Tool defaults.
	APIPrefix string
	Format    serverless.Format

	// Input limits.
	MaxInlineSize int64

	// Cache settings.
	CacheEnabled bool
	CacheMaxSize int
	CacheTTL     time.Duration
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OAS2SLS_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		APIPrefix:     os.Getenv("OAS2SLS_MCP_API_PREFIX"),
		Format:        envFormat("OAS2SLS_MCP_FORMAT", serverless.FormatYAML),
		MaxInlineSize: int64(envInt("OAS2SLS_MCP_MAX_INLINE_SIZE", 10*1024*1024)),
		CacheEnabled:  envBool("OAS2SLS_MCP_CACHE_ENABLED", true),
		CacheMaxSize:  envInt("OAS2SLS_MCP_CACHE_MAX_SIZE", 10),
		CacheTTL:      envDuration("OAS2SLS_MCP_CACHE_TTL", 15*time.Minute),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func envFormat(key string, fallback serverless.Format) serverless.Format {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := serverless.ParseFormat(v)
	if err != nil {
		slog.Warn("invalid format env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return f
}
