package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion       string        `mapstructure:"GENERAL_VERSION"`
	Environment          string        `mapstructure:"ENVIRONMENT"`
	ServerPort           int           `mapstructure:"SERVER_PORT"`
	CorsAllowOrigins     string        `mapstructure:"CORS_ALLOW_ORIGINS"`
	DatabaseDbPath       string        `mapstructure:"DATABASE_DB_PATH"`
	DatabaseCacheAddress string        `mapstructure:"DATABASE_CACHE_ADDRESS"`
	DatabaseCachePort    int           `mapstructure:"DATABASE_CACHE_PORT"`
	SettingsCacheTTL     time.Duration `mapstructure:"SETTINGS_CACHE_TTL"`
}

var keys = []string{
	"GENERAL_VERSION",
	"ENVIRONMENT",
	"SERVER_PORT",
	"CORS_ALLOW_ORIGINS",
	"DATABASE_DB_PATH",
	"DATABASE_CACHE_ADDRESS",
	"DATABASE_CACHE_PORT",
	"SETTINGS_CACHE_TTL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GENERAL_VERSION", "0.1.0")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SERVER_PORT", 8288)
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("DATABASE_DB_PATH", "data/carelog.db")
	v.SetDefault("DATABASE_CACHE_ADDRESS", "")
	v.SetDefault("DATABASE_CACHE_PORT", 6379)
	v.SetDefault("SETTINGS_CACHE_TTL", "1h")
}

// InitConfig reads .env (optional) and the environment, environment winning.
func InitConfig() (Config, error) {
	return load(".env")
}

func load(envFile string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	// missing .env is fine
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseDbPath) == "" {
		return fmt.Errorf("DATABASE_DB_PATH is required")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	if c.DatabaseCacheAddress != "" && c.DatabaseCachePort <= 0 {
		return fmt.Errorf("DATABASE_CACHE_PORT is required when DATABASE_CACHE_ADDRESS is set")
	}
	return nil
}

func (c Config) IsDev() bool {
	return c.Environment == "development"
}

func (c Config) CacheEnabled() bool {
	return c.DatabaseCacheAddress != ""
}

func (c Config) CacheAddress() string {
	return fmt.Sprintf("%s:%d", c.DatabaseCacheAddress, c.DatabaseCachePort)
}
