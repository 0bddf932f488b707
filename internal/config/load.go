package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every nested configuration key when read from
// the environment, e.g. SERVICEHUB_SERVER_PORT.
const EnvPrefix = "SERVICEHUB"

// legacyEnv lists the unprefixed variable names the deployment already uses.
// They are consulted after the prefixed name.
var legacyEnv = map[string][]string{
	"server.port":            {"PORT"},
	"server.environment":     {"APP_ENV", "NODE_ENV"},
	"server.allowed_origins": {"CORS_ORIGINS"},
	"database.url":           {"DATABASE_URL"},
	"auth.jwt_secret":        {"ACCESS_TOKEN_SECRET", "JSON_ACCESS_SECRET_TOKEN"},
}

// Load configuration from a .env file, an optional config file and
// environment variables. Environment variables take precedence over values
// from config files. Returns a populated Config or an error if loading or
// validation fails.
func Load() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, prefixed}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Server.AllowedOrigins = splitOrigins(cfg.Server.AllowedOrigins)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.environment", EnvDevelopment)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.rate_limit_per_minute", 0)
	v.SetDefault("server.trust_proxy_headers", false)

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 300)
	v.SetDefault("auth.cookie_name", "token")
	v.SetDefault("auth.gate_booking_writes", false)
}

// splitOrigins accepts origins either as a list or as a single
// comma-separated value, which is how they arrive from the environment.
func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, origin := range strings.Split(item, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}
