package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cadencehq/cadence/pkg/formatting"
	"github.com/cadencehq/cadence/pkg/middleware"
	"github.com/cadencehq/cadence/pkg/pagination"
)

const (
	EnvAPIBasePath      = "CADENCE_API_BASE_PATH"
	EnvAPIMaxIngestSize = "CADENCE_API_MAX_INGEST_SIZE"
	EnvAPIWorkers       = "CADENCE_API_WORKERS"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "CADENCE_CORS_ENABLED",
	Origins:          "CADENCE_CORS_ORIGINS",
	AllowedMethods:   "CADENCE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "CADENCE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "CADENCE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "CADENCE_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "CADENCE_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "CADENCE_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, ingest limits, worker, CORS, and
// pagination settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxIngestSize string                `toml:"max_ingest_size"`
	Workers       int                   `toml:"workers"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
}

// MaxIngestSizeBytes returns the conversation ingest payload cap in bytes.
func (c *APIConfig) MaxIngestSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxIngestSize)
	if err != nil {
		return 10 * 1024 * 1024 // 10MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if c.Workers < 1 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxIngestSize != "" {
		c.MaxIngestSize = overlay.MaxIngestSize
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxIngestSize == "" {
		c.MaxIngestSize = "10MB"
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxIngestSize); v != "" {
		c.MaxIngestSize = v
	}
	if v := os.Getenv(EnvAPIWorkers); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			c.Workers = workers
		}
	}
}
