package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/dragboard/internal/dragdrop"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Drag     DragConfig
	Scroll   ScrollConfig
	UI       UIConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// DragConfig holds drag session tunables.
type DragConfig struct {
	Distance     float64
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Channel      string
}

// ScrollConfig holds autoscroll tunables. Deltas are in terminal rows.
type ScrollConfig struct {
	Delay    time.Duration
	Interval time.Duration
	MinDelta float64 `mapstructure:"min_delta"`
	MaxDelta float64 `mapstructure:"max_delta"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ShowHelp  bool   `mapstructure:"show_help"`
	WIPMarker string `mapstructure:"wip_marker"`
}

// LogConfig controls the debug log. An empty File discards output.
type LogConfig struct {
	File  string
	Debug bool
}

var errInvalid = errors.New("invalid config")

func configPath() string {
	if p := os.Getenv("DRAGBOARD_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "dragboard", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "dragboard", "dragboard.db"))
	v.SetDefault("drag.distance", dragdrop.DefaultDistance)
	v.SetDefault("drag.poll_interval", dragdrop.DefaultPollInterval)
	v.SetDefault("drag.channel", "cards")
	v.SetDefault("scroll.delay", time.Duration(0))
	v.SetDefault("scroll.interval", dragdrop.DefaultScrollInterval)
	v.SetDefault("scroll.min_delta", 0.5)
	v.SetDefault("scroll.max_delta", 3.0)
	v.SetDefault("ui.show_help", true)
	v.SetDefault("ui.wip_marker", "!")
	v.SetDefault("log.file", "")
	v.SetDefault("log.debug", false)
}

// Load reads configuration from file and env. Env var overrides use prefix DRAGBOARD_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if p := os.Getenv("DRAGBOARD_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "dragboard"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DRAGBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default returns the built-in configuration.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Validate rejects values the drag engine cannot work with.
func Validate(c Config) error {
	if err := dragdrop.ValidateDistance(c.Drag.Distance); err != nil {
		return fmt.Errorf("drag.distance: %w", err)
	}
	if c.Drag.PollInterval <= 0 {
		return fmt.Errorf("%w: drag.poll_interval must be positive, got %v", errInvalid, c.Drag.PollInterval)
	}
	if strings.TrimSpace(c.Drag.Channel) == "" {
		return fmt.Errorf("%w: drag.channel is empty", errInvalid)
	}
	if c.Scroll.Delay < 0 {
		return fmt.Errorf("%w: scroll.delay is negative", errInvalid)
	}
	if c.Scroll.Interval <= 0 {
		return fmt.Errorf("%w: scroll.interval must be positive, got %v", errInvalid, c.Scroll.Interval)
	}
	if c.Scroll.MinDelta < 0 || c.Scroll.MaxDelta < c.Scroll.MinDelta {
		return fmt.Errorf("%w: scroll deltas must satisfy 0 <= min_delta <= max_delta", errInvalid)
	}
	return nil
}

// IsInvalid reports whether err came from Validate.
func IsInvalid(err error) bool {
	return errors.Is(err, errInvalid) || errors.Is(err, dragdrop.ErrInvalidDistance)
}

// Session converts the drag section to engine settings.
func (c Config) Session() dragdrop.SessionConfig {
	return dragdrop.SessionConfig{Distance: c.Drag.Distance, PollInterval: c.Drag.PollInterval}
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) (string, error) {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("drag.distance", cfg.Drag.Distance)
	v.Set("drag.poll_interval", cfg.Drag.PollInterval.String())
	v.Set("drag.channel", cfg.Drag.Channel)
	v.Set("scroll.delay", cfg.Scroll.Delay.String())
	v.Set("scroll.interval", cfg.Scroll.Interval.String())
	v.Set("scroll.min_delta", cfg.Scroll.MinDelta)
	v.Set("scroll.max_delta", cfg.Scroll.MaxDelta)
	v.Set("ui.show_help", cfg.UI.ShowHelp)
	v.Set("ui.wip_marker", cfg.UI.WIPMarker)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.debug", cfg.Log.Debug)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
