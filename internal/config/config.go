// Package config provides configuration management for Pacer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/viper"

	"github.com/kezou/pacer/internal/domain"
	"github.com/kezou/pacer/internal/render"
)

// Config holds all configuration for the Pacer application.
type Config struct {
	FirstRun      bool               `mapstructure:"first_run"`
	Reading       ReadingConfig      `mapstructure:"reading"`
	Focus         FocusConfig        `mapstructure:"focus"`
	Display       DisplayConfig      `mapstructure:"display"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	MCP           MCPConfig          `mapstructure:"mcp"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Bindings      map[string]string  `mapstructure:"bindings"`
}

// ReadingConfig holds playback settings.
type ReadingConfig struct {
	WPM int `mapstructure:"wpm"`
}

// FocusConfig holds focus timer settings.
type FocusConfig struct {
	FocusDuration  Duration `mapstructure:"focus_duration"`
	ShortBreak     Duration `mapstructure:"short_break"`
	LongBreak      Duration `mapstructure:"long_break"`
	CustomDuration Duration `mapstructure:"custom_duration"`
}

// DisplayConfig holds word rendering settings.
type DisplayConfig struct {
	Mode       string `mapstructure:"mode"`
	Font       string `mapstructure:"font"`
	Theme      string `mapstructure:"theme"`
	FontScale  int    `mapstructure:"font_scale"`
	Brightness int    `mapstructure:"brightness"`
	Glow       int    `mapstructure:"glow"`
	Bold       bool   `mapstructure:"bold"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	display := render.DefaultSettings()
	focus := domain.DefaultFocusConfig()
	return &Config{
		FirstRun: true,
		Reading: ReadingConfig{
			WPM: domain.DefaultRate,
		},
		Focus: FocusConfig{
			FocusDuration:  Duration(focus.Focus),
			ShortBreak:     Duration(focus.ShortBreak),
			LongBreak:      Duration(focus.LongBreak),
			CustomDuration: Duration(focus.Custom),
		},
		Display: DisplayConfig{
			Mode:       string(display.Mode),
			Font:       string(display.Font),
			Theme:      string(display.Theme),
			FontScale:  display.FontScale,
			Brightness: display.Brightness,
			Glow:       display.Glow,
			Bold:       display.Bold,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			DataDir: "~/.pacer",
		},
		Bindings: map[string]string{},
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	// Set defaults
	setDefaults()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.pacer" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".pacer")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	// Set all values
	viper.Set("first_run", cfg.FirstRun)
	viper.Set("reading.wpm", cfg.Reading.WPM)
	viper.Set("focus.focus_duration", cfg.Focus.FocusDuration.String())
	viper.Set("focus.short_break", cfg.Focus.ShortBreak.String())
	viper.Set("focus.long_break", cfg.Focus.LongBreak.String())
	viper.Set("focus.custom_duration", cfg.Focus.CustomDuration.String())
	viper.Set("display.mode", cfg.Display.Mode)
	viper.Set("display.font", cfg.Display.Font)
	viper.Set("display.theme", cfg.Display.Theme)
	viper.Set("display.font_scale", cfg.Display.FontScale)
	viper.Set("display.brightness", cfg.Display.Brightness)
	viper.Set("display.glow", cfg.Display.Glow)
	viper.Set("display.bold", cfg.Display.Bold)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("mcp.enabled", cfg.MCP.Enabled)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)

	// Bindings are written key by key so rebinding one action does not
	// reorder the rest of the section.
	actions := make([]string, 0, len(cfg.Bindings))
	for action := range cfg.Bindings {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	for _, action := range actions {
		viper.Set("bindings."+action, cfg.Bindings[action])
	}

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pacer", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "pacer.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	display := render.DefaultSettings()

	viper.SetDefault("first_run", true)
	viper.SetDefault("reading.wpm", domain.DefaultRate)
	viper.SetDefault("focus.focus_duration", "25m0s")
	viper.SetDefault("focus.short_break", "5m0s")
	viper.SetDefault("focus.long_break", "15m0s")
	viper.SetDefault("focus.custom_duration", "30m0s")
	viper.SetDefault("display.mode", string(display.Mode))
	viper.SetDefault("display.font", string(display.Font))
	viper.SetDefault("display.theme", string(display.Theme))
	viper.SetDefault("display.font_scale", display.FontScale)
	viper.SetDefault("display.brightness", display.Brightness)
	viper.SetDefault("display.glow", display.Glow)
	viper.SetDefault("display.bold", display.Bold)
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)
	viper.SetDefault("mcp.enabled", true)
	viper.SetDefault("storage.data_dir", "~/.pacer")
}

// ToFocusConfig converts the config to the domain focus configuration.
// Zero or negative durations fall back to the defaults.
func (c *Config) ToFocusConfig() domain.FocusConfig {
	fc := domain.DefaultFocusConfig()
	if d := time.Duration(c.Focus.FocusDuration); d > 0 {
		fc.Focus = d
	}
	if d := time.Duration(c.Focus.ShortBreak); d > 0 {
		fc.ShortBreak = d
	}
	if d := time.Duration(c.Focus.LongBreak); d > 0 {
		fc.LongBreak = d
	}
	if d := time.Duration(c.Focus.CustomDuration); d > 0 {
		fc.Custom = d
	}
	return fc
}

// ToDisplaySettings converts the config to render settings, normalizing
// out-of-range values.
func (c *Config) ToDisplaySettings() render.Settings {
	s := render.Settings{
		Mode:       render.Mode(c.Display.Mode),
		Font:       render.Font(c.Display.Font),
		Theme:      render.Theme(c.Display.Theme),
		FontScale:  c.Display.FontScale,
		Brightness: c.Display.Brightness,
		Glow:       c.Display.Glow,
		Bold:       c.Display.Bold,
	}
	s.Normalize()
	return s
}

// ApplyDisplaySettings writes render settings back into the config.
func (c *Config) ApplyDisplaySettings(s render.Settings) {
	c.Display.Mode = string(s.Mode)
	c.Display.Font = string(s.Font)
	c.Display.Theme = string(s.Theme)
	c.Display.FontScale = s.FontScale
	c.Display.Brightness = s.Brightness
	c.Display.Glow = s.Glow
	c.Display.Bold = s.Bold
}
