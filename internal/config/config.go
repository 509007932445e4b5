package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the vectoradmin configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Cluster ClusterConfig `yaml:"cluster"`
	Keys    ProviderKeys  `yaml:"provider_keys"`
	Auth    AuthConfig    `yaml:"auth"`
	Ingest  IngestConfig  `yaml:"ingest"`
	Backup  BackupConfig  `yaml:"backup"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds admin API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds admin API HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ClusterConfig holds the target cluster connection profile.
// Scheme+Host+HTTPPort form the REST endpoint; GRPCPort is recorded for
// operator display only (the console speaks REST).
type ClusterConfig struct {
	Scheme        string `yaml:"scheme"` // http, https (default: http)
	Host          string `yaml:"host"`
	HTTPPort      int    `yaml:"http_port"`
	GRPCPort      int    `yaml:"grpc_port"`
	APIKey        string `yaml:"api_key"`
	TimeoutSec    int    `yaml:"timeout_sec"`
	CacheTTLSec   int    `yaml:"cluster_cache_ttl_sec"`
	VerifyVecKeys bool   `yaml:"verify_vectorizer_keys"`
}

// Endpoint returns the cluster REST base URL.
func (c ClusterConfig) Endpoint() string {
	return fmt.Sprintf("%s://%s:%d", c.Scheme, c.Host, c.HTTPPort)
}

// ProviderKeys holds per-vectorizer model provider API keys.
// Forwarded to the cluster as X-*-Api-Key headers on object writes.
type ProviderKeys struct {
	OpenAI      string `yaml:"openai"`
	Cohere      string `yaml:"cohere"`
	JinaAI      string `yaml:"jinaai"`
	HuggingFace string `yaml:"huggingface"`
}

// IngestConfig holds batch ingestion settings.
type IngestConfig struct {
	BatchSize   int `yaml:"batch_size"`
	SampleLimit int `yaml:"sample_limit"`
}

// BackupConfig holds backup history settings.
type BackupConfig struct {
	HistoryCollection string `yaml:"history_collection"`
	ScanLimit         int    `yaml:"scan_limit"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Cluster.Scheme == "" {
		c.Cluster.Scheme = "http"
	}
	if c.Cluster.Host == "" {
		c.Cluster.Host = "localhost"
	}
	if c.Cluster.HTTPPort <= 0 {
		c.Cluster.HTTPPort = 8080
	}
	if c.Cluster.GRPCPort <= 0 {
		c.Cluster.GRPCPort = 50051
	}
	if c.Cluster.TimeoutSec <= 0 {
		c.Cluster.TimeoutSec = 60
	}
	if c.Cluster.CacheTTLSec <= 0 {
		c.Cluster.CacheTTLSec = 30
	}
	if c.Ingest.BatchSize <= 0 {
		c.Ingest.BatchSize = 100
	}
	if c.Ingest.SampleLimit <= 0 {
		c.Ingest.SampleLimit = 100
	}
	if c.Backup.HistoryCollection == "" {
		c.Backup.HistoryCollection = "BackupHistory"
	}
	if c.Backup.ScanLimit <= 0 {
		c.Backup.ScanLimit = 1000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Cluster.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("cluster.scheme must be \"http\" or \"https\", got %q", c.Cluster.Scheme)
	}
	if c.Cluster.HTTPPort > 65535 {
		return fmt.Errorf("cluster.http_port must be at most 65535, got %d", c.Cluster.HTTPPort)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
