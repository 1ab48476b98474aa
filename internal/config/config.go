package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const (
	// FileName is the name of the configuration file inside the config directory
	FileName = "config.yaml"

	envPrefix = "MDRICH"
)

// Config holds the application configuration
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Render RenderConfig `mapstructure:"render"`
	Search SearchConfig `mapstructure:"search"`
}

// LogConfig controls logging
type LogConfig struct {
	Level string `mapstructure:"level"`
	// File receives viewer logs; relative paths are resolved against the config directory
	File string `mapstructure:"file"`
}

// RenderConfig controls the markdown renderer
type RenderConfig struct {
	// FallbackUnsupported renders unknown node kinds as plain content instead of failing
	FallbackUnsupported bool `mapstructure:"fallback_unsupported"`
	MaxDepth            int  `mapstructure:"max_depth"`
	// HTML enables conversion of raw HTML fragments
	HTML bool `mapstructure:"html"`
}

// SearchConfig controls the viewer search
type SearchConfig struct {
	MinScore      int  `mapstructure:"min_score"`
	CaseSensitive bool `mapstructure:"case_sensitive"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
			File:  "mdrich.log",
		},
		Render: RenderConfig{
			FallbackUnsupported: false,
			MaxDepth:            512,
			HTML:                true,
		},
		Search: SearchConfig{
			MinScore:      50,
			CaseSensitive: false,
		},
	}
}

// DefaultDir returns the default configuration directory under the XDG
// config home
func DefaultDir() string {
	return filepath.Join(xdg.ConfigHome, "mdrich")
}

// ConfigManager handles loading and saving configuration
type ConfigManager struct {
	configDir  string
	configPath string
	config     *Config
}

// NewConfigManager creates a new configuration manager
func NewConfigManager(configDir string) *ConfigManager {
	return &ConfigManager{
		configDir:  configDir,
		configPath: filepath.Join(configDir, FileName),
		config:     DefaultConfig(),
	}
}

// Load loads the configuration from disk. A missing file is created with
// the current values. Environment variables prefixed MDRICH_ override the
// file, e.g. MDRICH_RENDER_MAX_DEPTH.
func (cm *ConfigManager) Load() error {
	if _, err := os.Stat(cm.configPath); os.IsNotExist(err) {
		if err := cm.Save(); err != nil {
			return err
		}
	}

	v := cm.newViper()
	v.SetConfigFile(cm.configPath)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", cm.configPath)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return errors.Wrap(err, "failed to parse config file")
	}
	cm.config = cfg
	return nil
}

// Save saves the configuration to disk
func (cm *ConfigManager) Save() error {
	if err := os.MkdirAll(cm.configDir, 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	v := viper.New()
	setValues(cm.config, v.Set)
	if err := v.WriteConfigAs(cm.configPath); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// SetConfig updates the configuration
func (cm *ConfigManager) SetConfig(config *Config) {
	cm.config = config
}

// Path returns the configuration file path
func (cm *ConfigManager) Path() string {
	return cm.configPath
}

// LogFile returns the absolute path of the viewer log file
func (cm *ConfigManager) LogFile() string {
	file := cm.config.Log.File
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(cm.configDir, file)
}

// Values returns the current configuration keyed by dotted setting name
func (cm *ConfigManager) Values() map[string]any {
	values := make(map[string]any)
	setValues(cm.config, func(key string, value any) {
		values[key] = value
	})
	return values
}

func (cm *ConfigManager) newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setValues(DefaultConfig(), v.SetDefault)
	return v
}

// setValues walks every key so that defaults, env bindings and written
// files all share one key list.
func setValues(c *Config, set func(string, any)) {
	set("log.level", c.Log.Level)
	set("log.file", c.Log.File)
	set("render.fallback_unsupported", c.Render.FallbackUnsupported)
	set("render.max_depth", c.Render.MaxDepth)
	set("render.html", c.Render.HTML)
	set("search.min_score", c.Search.MinScore)
	set("search.case_sensitive", c.Search.CaseSensitive)
}
