package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level CLI configuration.
type Config struct {
	Model   ModelConfig   `yaml:"model"`
	Scorer  ScorerConfig  `yaml:"scorer"`
	Bench   BenchConfig   `yaml:"bench"`
	Serve   ServeConfig   `yaml:"serve"`
	Logging LoggingConfig `yaml:"logging"`
}

// ModelConfig locates the model and document artifacts.
type ModelConfig struct {
	// Store selects the artifact source: "file", "s3" or "minio".
	Store string `yaml:"store"`
	// Path is the model location: a file path for "file", an object key
	// otherwise.
	Path string `yaml:"path"`
	// Documents and Scores name the document set and the expected score
	// list (scores are optional, used for verification).
	Documents string `yaml:"documents"`
	Scores    string `yaml:"scores"`
	// MaxDocuments bounds how many documents are read; 0 reads all.
	MaxDocuments int `yaml:"maxDocuments"`

	// Object storage settings (s3/minio).
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	UseSSL    bool   `yaml:"useSSL"`
}

// ScorerConfig selects the scorer variant and its parallelism.
type ScorerConfig struct {
	// Variant is one of "merged", "linearized", "eqnodes", "simd".
	Variant string `yaml:"variant"`
	// BlockWidth is the scalar block width (8, 16, 32, 64).
	BlockWidth int `yaml:"blockWidth"`
	// SIMD names the vector configuration for the simd variant,
	// e.g. "SIMD256X32".
	SIMD string `yaml:"simd"`

	Threads           int  `yaml:"threads"`
	ParallelFeatures  bool `yaml:"parallelFeatures"`
	ParallelDocuments bool `yaml:"parallelDocuments"`
	ParallelForest    bool `yaml:"parallelForest"`
}

// BenchConfig controls the benchmark matrix.
type BenchConfig struct {
	// Repetitions is how many times each preset scores the document set.
	Repetitions int `yaml:"repetitions"`
	// QPS throttles scoring calls per second; 0 disables throttling.
	QPS float64 `yaml:"qps"`
	// Tolerance for comparison against the expected score list.
	Tolerance float64 `yaml:"tolerance"`
	// ThreadCounts are the worker counts the parallel presets sweep.
	ThreadCounts []int `yaml:"threadCounts"`
}

// ServeConfig holds the HTTP scoring server settings.
type ServeConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metricsPort"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaultConfig() Config {
	return Config{
		Model: ModelConfig{
			Store: "file",
		},
		Scorer: ScorerConfig{
			Variant:    "merged",
			BlockWidth: 64,
			SIMD:       "SIMD256X32",
			Threads:    1,
		},
		Bench: BenchConfig{
			Repetitions:  1,
			Tolerance:    1e-6,
			ThreadCounts: []int{2, 4, 8},
		},
		Serve: ServeConfig{
			Port:        8080,
			MetricsPort: 9090,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// loadConfig reads a YAML config file (if provided) on top of defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}
