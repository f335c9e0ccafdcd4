package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Ingest   IngestConfig
	Pipeline PipelineConfig
}

// DatabaseConfig holds database-related configuration.
// The DSN selects the driver: postgres:// URLs use pgx, anything else
// is treated as a sqlite path.
type DatabaseConfig struct {
	DSN             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	DialTimeout     time.Duration
}

// IngestConfig holds OCR-dump ingestion configuration.
type IngestConfig struct {
	WatchRoots []string
	Debounce   time.Duration
}

// PipelineConfig carries the tunables of the extraction heuristics.
// Defaults mirror the calibrated production values; they are named here
// so no magic number lives at a call site.
type PipelineConfig struct {
	QualityThreshold float64 // minimum quality score for an invoice segment
	ProximityWindow  int     // max char gap between matches of one invoice cluster
	MinSegmentLength int     // segments shorter than this are capped low
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Ingest: IngestConfig{
			WatchRoots: splitNonEmpty(getEnv("WATCH_ROOTS", "")),
			Debounce:   getEnvAsDuration("WATCH_DEBOUNCE", 500*time.Millisecond),
		},
		Pipeline: PipelineConfig{
			QualityThreshold: getEnvAsFloat64("QUALITY_THRESHOLD", DefaultQualityThreshold),
			ProximityWindow:  getEnvAsInt("PROXIMITY_WINDOW", DefaultProximityWindow),
			MinSegmentLength: getEnvAsInt("MIN_SEGMENT_LENGTH", DefaultMinSegmentLength),
		},
	}
}

// Pipeline heuristic defaults. Fixed constants, not re-derived per document.
const (
	DefaultQualityThreshold = 0.6
	DefaultProximityWindow  = 500
	DefaultMinSegmentLength = 100
)

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitNonEmpty(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Pipeline.QualityThreshold <= 0 || c.Pipeline.QualityThreshold > 1 {
		return NewAppError("CONFIG_ERROR", "QUALITY_THRESHOLD must be in (0,1]", ErrInvalidInput)
	}
	if c.Pipeline.ProximityWindow <= 0 {
		return NewAppError("CONFIG_ERROR", "PROXIMITY_WINDOW must be positive", ErrInvalidInput)
	}
	return nil
}
