package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dori/kairo/internal/db"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "KAIRO"

// Config holds application configuration
type Config struct {
	DataDir        string        `mapstructure:"data_dir" validate:"required"`
	Theme          string        `mapstructure:"theme" validate:"omitempty,oneof=blue purple green orange pink"`
	LogLevel       string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	DesktopNotify  bool          `mapstructure:"desktop_notify"`
	RescanInterval time.Duration `mapstructure:"rescan_interval" validate:"min=0"`
	ToastDuration  time.Duration `mapstructure:"toast_duration" validate:"min=0"`
}

// DefaultConfig returns the default application configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir:        db.DefaultDataDir(),
		LogLevel:       "info",
		DesktopNotify:  true,
		RescanInterval: time.Minute,
		ToastDuration:  3 * time.Second,
	}
}

// DBPath returns the database file inside the data directory
func (c *Config) DBPath() string {
	return db.DefaultDBPath(c.DataDir)
}

// DefaultConfigDir returns the directory searched for config.yaml
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".kairo"
	}
	return filepath.Join(dir, "kairo")
}

// LoadConfig resolves configuration from, in increasing precedence: defaults,
// the config file, a .env file, KAIRO_* environment variables and any flags
// already bound to v. An empty cfgFile searches DefaultConfigDir.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	def := DefaultConfig()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("desktop_notify", def.DesktopNotify)
	v.SetDefault("rescan_interval", def.RescanInterval)
	v.SetDefault("toast_duration", def.ToastDuration)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(DefaultConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
