package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API     APIConfig
	History HistoryConfig
	Form    FormConfig
}

// APIConfig holds backend endpoints.
type APIConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	AssetBaseURL string `mapstructure:"asset_base_url"`
}

// HistoryConfig holds the local run-history sqlite settings.
type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

// FormConfig holds the processing form defaults.
type FormConfig struct {
	TargetStates string `mapstructure:"target_states"`
	BrandName    string `mapstructure:"brand_name"`
	Language     string `mapstructure:"language"`
	UseAI        bool   `mapstructure:"use_ai"`
	AILimit      int    `mapstructure:"ai_limit"`
}

// Load reads configuration from file and env. Env var overrides use prefix SUNNY_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.asset_base_url", "http://localhost:5173")
	v.SetDefault("history.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "sunny", "history.db"))
	v.SetDefault("form.target_states", "AZ,CA,TX,FL,NY")
	v.SetDefault("form.brand_name", "Sunny Home")
	v.SetDefault("form.language", "CN")
	v.SetDefault("form.use_ai", false)
	v.SetDefault("form.ai_limit", 8)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SUNNY_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "sunny"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SUNNY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the TUI settings actions for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("SUNNY_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "sunny", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.asset_base_url", cfg.API.AssetBaseURL)
	v.Set("history.path", cfg.History.Path)
	v.Set("form.target_states", cfg.Form.TargetStates)
	v.Set("form.brand_name", cfg.Form.BrandName)
	v.Set("form.language", cfg.Form.Language)
	v.Set("form.use_ai", cfg.Form.UseAI)
	v.Set("form.ai_limit", cfg.Form.AILimit)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
