package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultSeed is the list shown when no seed is configured.
var DefaultSeed = []string{"林書豪", "陳信安", "陳偉殷", "王建民", "陳金鋒", "林智勝"}

// Config holds application configuration.
type Config struct {
	List    ListConfig    `mapstructure:"list"`
	Journal JournalConfig `mapstructure:"journal"`
	Log     LogConfig     `mapstructure:"log"`
}

// ListConfig holds the editor screen settings.
type ListConfig struct {
	Title        string   `mapstructure:"title" validate:"required"`
	Seed         []string `mapstructure:"seed"`
	NewItemLabel string   `mapstructure:"new_item_label" validate:"required"`
	StartEditing bool     `mapstructure:"start_editing"`
}

// JournalConfig holds sqlite settings. An empty Path disables the journal.
type JournalConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds zerolog settings. Output is stdout, stderr or a file path.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
	Output string `mapstructure:"output" validate:"required"`
}

func setDefaults(v *viper.Viper) {
	home := os.Getenv("HOME")
	v.SetDefault("list.title", "編輯模式")
	v.SetDefault("list.seed", DefaultSeed)
	v.SetDefault("list.new_item_label", "new row")
	v.SetDefault("list.start_editing", false)
	v.SetDefault("journal.path", filepath.Join(home, ".local", "share", "rowedit", "journal.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", filepath.Join(home, ".local", "state", "rowedit", "rowedit.log"))
}

// Defaults returns the built-in configuration, ignoring files and env.
func Defaults() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// Path resolves the config file location: path, then ROWEDIT_CONFIG, then
// ~/.config/rowedit/config.toml.
func Path(path string) string {
	if path == "" {
		path = os.Getenv("ROWEDIT_CONFIG")
	}
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "rowedit", "config.toml")
	}
	return path
}

// Load reads configuration from file and env. Env var overrides use prefix ROWEDIT_.
// path, when set, wins over ROWEDIT_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	home := os.Getenv("HOME")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("ROWEDIT_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "rowedit"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ROWEDIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file is only an error when one was asked for
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks field constraints.
func Validate(c Config) error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the provided config to path, or the default location when path is
// empty, creating the config directory if needed.
func Save(path string, cfg Config) error {
	path = Path(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("list.title", cfg.List.Title)
	v.Set("list.seed", cfg.List.Seed)
	v.Set("list.new_item_label", cfg.List.NewItemLabel)
	v.Set("list.start_editing", cfg.List.StartEditing)
	v.Set("journal.path", cfg.Journal.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("log.output", cfg.Log.Output)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
