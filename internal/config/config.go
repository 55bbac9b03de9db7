// Package config loads daskindex configuration from the environment and
// an optional YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults reproduce the fixed values of the original refresh job.
const (
	DefaultInputFile = "fileToWriteToOpenSearch.txt"

	DefaultClientRegionParam = "client-region-for-dask-worker-%s"
	DefaultDataBucketParam   = "worker-region-data-bucket-for-dask-worker-%s"
	DefaultDomainParam       = "client-opensearch-domain-%s"
)

// Config holds all configuration values.
type Config struct {
	// Input
	InputFile string

	// Region override; empty means "ask the instance metadata service".
	Region string

	// Parameter store name templates. Each carries a single %s verb that
	// receives the region the parameter is scoped to.
	ClientRegionParam string
	DataBucketParam   string
	DomainParam       string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// fileConfig is the YAML shape of the optional config file.
type fileConfig struct {
	InputFile  string `yaml:"input_file"`
	Region     string `yaml:"region"`
	Parameters struct {
		ClientRegion     string `yaml:"client_region"`
		DataBucket       string `yaml:"data_bucket"`
		OpenSearchDomain string `yaml:"opensearch_domain"`
	} `yaml:"parameters"`
	Log struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load reads configuration from environment variables, applying the file
// named by DASKINDEX_CONFIG first (env vars win over file values).
func Load() (Config, error) {
	cfg := Config{
		InputFile:         DefaultInputFile,
		ClientRegionParam: DefaultClientRegionParam,
		DataBucketParam:   DefaultDataBucketParam,
		DomainParam:       DefaultDomainParam,
		LogLevel:          slog.LevelInfo,
	}

	if path := os.Getenv("DASKINDEX_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.InputFile = getEnv("DASKINDEX_INPUT_FILE", cfg.InputFile)
	cfg.Region = getEnv("DASKINDEX_REGION", cfg.Region)
	cfg.LogFile = getEnv("DASKINDEX_LOG_FILE", cfg.LogFile)
	if lvl := os.Getenv("DASKINDEX_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = parseLogLevel(lvl)
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.InputFile != "" {
		c.InputFile = fc.InputFile
	}
	if fc.Region != "" {
		c.Region = fc.Region
	}
	if fc.Parameters.ClientRegion != "" {
		c.ClientRegionParam = fc.Parameters.ClientRegion
	}
	if fc.Parameters.DataBucket != "" {
		c.DataBucketParam = fc.Parameters.DataBucket
	}
	if fc.Parameters.OpenSearchDomain != "" {
		c.DomainParam = fc.Parameters.OpenSearchDomain
	}
	if fc.Log.File != "" {
		c.LogFile = fc.Log.File
	}
	if fc.Log.Level != "" {
		c.LogLevel = parseLogLevel(fc.Log.Level)
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
