package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	ConfigDirName  = ".px"
	ConfigFileName = "config.yaml"

	// APIKeyEnvVar is the only source of the API key. The key never lives in
	// the config file.
	APIKeyEnvVar = "PERPLEXITY_API_KEY"

	DefaultModel = "llama-3.1-sonar-small-128k-online"

	// DefaultMaxTokens is deliberately small: truncated answers are the
	// cost-control policy, not a bug.
	DefaultMaxTokens = 125

	DefaultCitationLimit = 3
)

// Config holds the tunable query parameters.
type Config struct {
	Model         string `yaml:"model"`
	MaxTokens     int    `yaml:"max_tokens"`
	CitationLimit int    `yaml:"citation_limit"`
	BaseURL       string `yaml:"base_url,omitempty"`
}

// Default returns a config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		Model:         DefaultModel,
		MaxTokens:     DefaultMaxTokens,
		CitationLimit: DefaultCitationLimit,
	}
}

// GetConfigDir returns the path to the config directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// Load reads the configuration from disk. A missing file is not an error:
// the defaults are returned.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Guard against zeroed-out fields in a hand-edited file
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.CitationLimit <= 0 {
		cfg.CitationLimit = DefaultCitationLimit
	}

	return cfg, nil
}

// Save writes the configuration to disk.
func Save(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// APIKey returns the Perplexity API key from the environment. An unset or
// empty key is a terminal error surfaced before any network activity.
func APIKey() (string, error) {
	key := os.Getenv(APIKeyEnvVar)
	if key == "" {
		return "", fmt.Errorf("%s is not set", APIKeyEnvVar)
	}
	return key, nil
}
