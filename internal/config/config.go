package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load, e.g. TASKAPI_AUTH_SECRET.
const EnvPrefix = "TASKAPI"

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
		Mode string
	}
	Database struct {
		Path string
	}
	Auth struct {
		Secret         string
		TokenTTL       time.Duration
		CookieName     string
		CookieHTTPOnly bool
		CookieSecure   bool
	}
	CORS struct {
		AllowedOrigins string
	}
	Log struct {
		Level string
	}
}

// Load reads configuration from environment variables, an optional .env file
// and an optional config file in the working directory.
func Load() (Config, error) {
	// .env never overrides variables already set in the environment
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:3000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "data/taskapi.db")
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.tokenttl", "24h")
	v.SetDefault("auth.cookiename", "authToken")
	v.SetDefault("auth.cookiehttponly", false)
	v.SetDefault("auth.cookiesecure", false)
	v.SetDefault("cors.allowedorigins", "http://localhost:5173")
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return fmt.Errorf("auth secret is required (set %s_AUTH_SECRET)", EnvPrefix)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth token ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	if strings.TrimSpace(c.Auth.CookieName) == "" {
		return errors.New("auth cookie name is required")
	}
	return nil
}

// Origins splits the comma separated CORS origin list.
func (c Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORS.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
