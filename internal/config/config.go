package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the carefinder service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Directory DirectoryConfig `yaml:"directory"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Cache     CacheConfig     `yaml:"cache"`
	Ranking   RankingConfig   `yaml:"ranking"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DirectoryConfig holds the PostgREST endpoint of the service directory.
type DirectoryConfig struct {
	URL           string `yaml:"url"`
	APIKey        string `yaml:"api_key"`
	Table         string `yaml:"table"`
	MatchFunction string `yaml:"match_function"`
	TimeoutSec    int    `yaml:"timeout_sec"`
}

// EmbeddingConfig holds query embedding settings.
type EmbeddingConfig struct {
	Provider         string          `yaml:"provider"` // label for metrics
	APIKey           string          `yaml:"api_key"`
	BaseURL          string          `yaml:"base_url"`
	Model            string          `yaml:"model"`
	Dimensions       int             `yaml:"dimensions"`
	QueryInstruction string          `yaml:"query_instruction"`
	TimeoutSec       int             `yaml:"timeout_sec"`
	RateLimit        RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig throttles outbound embedding calls. PerSecond 0 disables it.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// CacheConfig holds the embedding cache connection. No addrs disables the cache.
type CacheConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	TTLSec           int      `yaml:"ttl_sec"` // 0 = no expiry; hits restart the ttl
	Standalone       bool     `yaml:"standalone"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Enabled reports whether a cache store is configured.
func (c CacheConfig) Enabled() bool { return len(c.Addrs) > 0 }

// RankingConfig holds vector ranking cutoffs.
type RankingConfig struct {
	Threshold        float64 `yaml:"threshold"`
	Candidates       int     `yaml:"candidates"`
	CrisisThreshold  float64 `yaml:"crisis_threshold"`
	CrisisCandidates int     `yaml:"crisis_candidates"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory is loaded first; variables already set win.
func Load(env string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
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
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Directory.Table == "" {
		c.Directory.Table = "staging_services"
	}
	if c.Directory.MatchFunction == "" {
		c.Directory.MatchFunction = "search_staging_services"
	}
	if c.Directory.TimeoutSec <= 0 {
		c.Directory.TimeoutSec = 30
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 1536
	}
	if c.Embedding.TimeoutSec <= 0 {
		c.Embedding.TimeoutSec = 30
	}
	if c.Embedding.RateLimit.PerSecond > 0 && c.Embedding.RateLimit.Burst <= 0 {
		c.Embedding.RateLimit.Burst = 1
	}
	c.Cache.Addrs = nonBlank(c.Cache.Addrs)
	c.Auth.APIKeys = nonBlank(c.Auth.APIKeys)
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Ranking.Threshold <= 0 {
		c.Ranking.Threshold = 0.40
	}
	if c.Ranking.Candidates <= 0 {
		c.Ranking.Candidates = 30
	}
	if c.Ranking.CrisisThreshold <= 0 {
		c.Ranking.CrisisThreshold = 0.20
	}
	if c.Ranking.CrisisCandidates <= 0 {
		c.Ranking.CrisisCandidates = 40
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Directory.URL == "" {
		return fmt.Errorf("directory.url is required")
	}
	if c.Directory.APIKey == "" {
		return fmt.Errorf("directory.api_key is required")
	}
	if c.Embedding.APIKey == "" {
		return fmt.Errorf("embedding.api_key is required")
	}
	if c.Embedding.RateLimit.PerSecond < 0 {
		return fmt.Errorf("embedding.rate_limit.per_second must not be negative, got %v", c.Embedding.RateLimit.PerSecond)
	}
	if c.Cache.TTLSec < 0 {
		return fmt.Errorf("cache.ttl_sec must not be negative, got %d", c.Cache.TTLSec)
	}
	for name, v := range map[string]float64{
		"threshold":        c.Ranking.Threshold,
		"crisis_threshold": c.Ranking.CrisisThreshold,
	} {
		if v > 1 {
			return fmt.Errorf("ranking.%s must be in (0, 1], got %v", name, v)
		}
	}
	if c.Ranking.CrisisThreshold > c.Ranking.Threshold {
		return fmt.Errorf("ranking.crisis_threshold (%v) must not exceed ranking.threshold (%v)",
			c.Ranking.CrisisThreshold, c.Ranking.Threshold)
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

// nonBlank drops entries left empty by unset ${VAR} references.
func nonBlank(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
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
