// Package config loads and validates application configuration from
// environment variables and optional config files.
package config

// Config holds all application configuration, organized into logical groups.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	SRS      SRSConfig      `mapstructure:"srs"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains authentication settings. The API only verifies
// bearer tokens; issuing them belongs to the identity layer in front of
// this service.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// SRSConfig optionally overrides scheduling parameters. Zero values keep the
// algorithm defaults.
type SRSConfig struct {
	MinEaseFactor        float64 `mapstructure:"min_ease_factor"        validate:"omitempty,gt=1"`
	FirstInterval        int     `mapstructure:"first_interval"         validate:"omitempty,gt=0"`
	SecondIntervalNormal int     `mapstructure:"second_interval_normal" validate:"omitempty,gt=0"`
	SecondIntervalEasy   int     `mapstructure:"second_interval_easy"   validate:"omitempty,gt=0"`
}
