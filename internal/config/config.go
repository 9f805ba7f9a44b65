// Package config loads server configuration from defaults, an optional
// config.yaml and MATRIX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/mcoot/matrixgame/internal/factory"
	"github.com/mcoot/matrixgame/internal/services/auth"
	"github.com/mcoot/matrixgame/internal/services/user"
	redisstorage "github.com/mcoot/matrixgame/internal/storage/redis"
)

// EnvPrefix is prepended to every environment variable, e.g. MATRIX_SERVER_PORT
const EnvPrefix = "MATRIX"

// Config holds application level configuration
type Config struct {
	Server struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port" validate:"min=1,max=65535"`
	} `mapstructure:"server"`
	Storage struct {
		Type string `mapstructure:"type" validate:"oneof=memory sqlite"`
	} `mapstructure:"storage"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Sessions struct {
		Backend string `mapstructure:"backend" validate:"oneof=memory redis"`
	} `mapstructure:"sessions"`
	Redis struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"redis"`
	Auth struct {
		SessionDuration time.Duration `mapstructure:"session_duration" validate:"gt=0"`
		BcryptCost      int           `mapstructure:"bcrypt_cost" validate:"min=4,max=31"`
	} `mapstructure:"auth"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// Load reads configuration from the working directory and the environment
func Load() (Config, error) {
	return LoadFrom(".")
}

// LoadFrom reads configuration, looking for config.yaml in dir
func LoadFrom(dir string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("storage.type", factory.StorageTypeSQLite)
	v.SetDefault("database.path", "data/matrixgame.sqlite3")
	v.SetDefault("sessions.backend", factory.SessionBackendMemory)
	v.SetDefault("redis.url", redisstorage.DefaultConfig().URL)
	v.SetDefault("auth.session_duration", auth.DefaultConfig().SessionDuration)
	v.SetDefault("auth.bcrypt_cost", user.DefaultConfig().BcryptCost)
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks value ranges and backend names
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Storage.Type == factory.StorageTypeSQLite && c.Database.Path == "" {
		return errors.New("invalid config: database.path is required for sqlite storage")
	}
	return nil
}

// Addr returns the listen address
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LogLevel parses log.level ("debug", "info", "warn", "error")
func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// FactoryConfig maps the loaded settings onto the application factory
func (c Config) FactoryConfig(logger *slog.Logger) factory.Config {
	fc := factory.Config{
		Logger:         logger,
		StorageType:    c.Storage.Type,
		DatabasePath:   c.Database.Path,
		SessionBackend: c.Sessions.Backend,
		AuthConfig:     auth.Config{SessionDuration: c.Auth.SessionDuration},
		UserConfig:     user.Config{BcryptCost: c.Auth.BcryptCost},
	}
	if c.Sessions.Backend == factory.SessionBackendRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.Redis.URL
		fc.RedisConfig = &redisCfg
	}
	return fc
}
