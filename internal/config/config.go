package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Auth struct {
		SecretKey   string        // symmetric signing secret for access tokens
		Algorithm   string        // JWT signing algorithm name, e.g. "HS256"
		TokenExpiry time.Duration // access token lifetime
		BcryptCost  int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_secret_key", "")
	v.SetDefault("auth_algorithm", "HS256")
	v.SetDefault("auth_token_expiry", "30m")
	v.SetDefault("auth_bcrypt_cost", 12)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			SecretKey:   v.GetString("AUTH_SECRET_KEY"),
			Algorithm:   v.GetString("AUTH_ALGORITHM"),
			TokenExpiry: v.GetDuration("AUTH_TOKEN_EXPIRY"),
			BcryptCost:  v.GetInt("AUTH_BCRYPT_COST"),
		},
	}
}
