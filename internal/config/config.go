package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Site    SiteConfig    `mapstructure:"site"`
	Search  SearchConfig  `mapstructure:"search"`
	Network NetworkConfig `mapstructure:"network"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds Finna API settings
type APIConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	LegacyFields bool   `mapstructure:"legacy_fields"` // request the old authors/nonPresenterAuthors shape
}

// SiteConfig holds the public web site settings
type SiteConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	ImageURL string `mapstructure:"image_url"` // host prefixed to record image paths
}

// SearchConfig holds default search parameters
type SearchConfig struct {
	Limit int    `mapstructure:"limit"`
	Lng   string `mapstructure:"lng"`
	Type  string `mapstructure:"type"`
	Sort  string `mapstructure:"sort"`
}

// NetworkConfig holds network settings
type NetworkConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Progress  bool          `mapstructure:"progress"`
}

// ViewerConfig holds external viewer settings
type ViewerConfig struct {
	ImageCommand string `mapstructure:"image_command"`
}

// HistoryConfig holds interaction history settings
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Limit   int  `mapstructure:"limit"`
}

// LoggingConfig holds log file settings
type LoggingConfig struct {
	Level    string `mapstructure:"level"` // debug, info, warn, error
	File     string `mapstructure:"file"`
	MaxSize  int    `mapstructure:"max_size"`
	MaxFiles int    `mapstructure:"max_files"`
}

const (
	DefaultAPIBaseURL  = "https://api.finna.fi/api/v1"
	DefaultSiteBaseURL = "https://finna.fi"
	DefaultImageURL    = "https://api.finna.fi"
)

var cfg *Config

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finna")
}

// GetDBPath returns the database file path
func GetDBPath() string {
	return filepath.Join(GetConfigDir(), "finna.db")
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// GetLogPath returns the default log file path
func GetLogPath() string {
	return filepath.Join(GetConfigDir(), "finna.log")
}

// Init initializes the configuration
func Init(cfgFile string) error {
	cfg = nil

	viper.SetDefault("api.base_url", DefaultAPIBaseURL)
	viper.SetDefault("api.legacy_fields", false)
	viper.SetDefault("site.base_url", DefaultSiteBaseURL)
	viper.SetDefault("site.image_url", DefaultImageURL)
	viper.SetDefault("search.limit", 20)
	viper.SetDefault("search.lng", "fi")
	viper.SetDefault("search.type", "AllFields")
	viper.SetDefault("search.sort", "relevance,id asc")
	viper.SetDefault("network.timeout", 30*time.Second)
	viper.SetDefault("network.user_agent", "finna-cli")
	viper.SetDefault("network.progress", false)
	viper.SetDefault("viewer.image_command", "feh")
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.limit", 20)
	viper.SetDefault("logging.level", "warn")
	viper.SetDefault("logging.file", "")
	viper.SetDefault("logging.max_size", 10)
	viper.SetDefault("logging.max_files", 5)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(GetConfigDir())
	}

	// Environment variable overrides
	viper.SetEnvPrefix("FINNA")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing config file is not an error
	_ = viper.ReadInConfig()

	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
		viper.Unmarshal(cfg)
		cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")
		cfg.Site.BaseURL = strings.TrimSuffix(cfg.Site.BaseURL, "/")
		cfg.Site.ImageURL = strings.TrimSuffix(cfg.Site.ImageURL, "/")
		cfg.Logging.File = expandPath(cfg.Logging.File)
	}
	return cfg
}

// ConfigFile returns the config file in use: the one given with --config or
// found on the search path, else the default path
func ConfigFile() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return GetConfigPath()
}

// Set sets a configuration value and saves it to ConfigFile
func Set(key, value string) error {
	viper.Set(key, value)

	path := ConfigFile()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Reset cached config
	cfg = nil

	return viper.WriteConfigAs(path)
}

// GetValue retrieves a configuration value
func GetValue(key string) interface{} {
	return viper.Get(key)
}

// Keys returns all known configuration keys in sorted order
func Keys() []string {
	keys := viper.AllKeys()
	sort.Strings(keys)
	return keys
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
