package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server Server `mapstructure:"server"`
	Auth   Auth   `mapstructure:"auth"`
	Redis  Redis  `mapstructure:"redis"`
	Events Events `mapstructure:"events"`
	Stats  Stats  `mapstructure:"stats"`
}

type Server struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	FrontendOrigin string `mapstructure:"frontend_origin"`
}

type Auth struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

type Redis struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Events struct {
	Channel string `mapstructure:"channel"`
}

type Stats struct {
	// Schedule is a cron expression for the presence stats report.
	Schedule string `mapstructure:"schedule"`
}

func Load() (*Config, error) {
	// Set default values
	viper.SetDefault("server.port", 8085)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.frontend_origin", "http://localhost:3000")
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.issuer", "hr-portal")
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("events.channel", "notification_events")
	viper.SetDefault("stats.schedule", "@every 1m")

	// Configuration file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/notification-gateway/")

	// Environment variable support
	viper.AutomaticEnv()

	// Environment variable mappings
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.host", "SERVER_HOST")
	viper.BindEnv("server.frontend_origin", "FRONTEND_ORIGIN")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.issuer", "JWT_ISSUER")
	viper.BindEnv("redis.address", "REDIS_ADDRESS")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")
	viper.BindEnv("events.channel", "EVENTS_CHANNEL")
	viper.BindEnv("stats.schedule", "STATS_SCHEDULE")

	// Read configuration file (optional - will use defaults/env vars if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret (JWT_SECRET) is required")
	}

	return &cfg, nil
}

func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
