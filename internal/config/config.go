package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// Deployment environments recognised by the server.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Store drivers recognised by the server.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port"        validate:"required,gt=0,lt=65536"`
	LogLevel    string `mapstructure:"log_level"   validate:"required,oneof=debug info warn error"`
	Environment string `mapstructure:"environment" validate:"required,oneof=development production test"`

	// AllowedOrigins lists the browser origins permitted to call the API with credentials.
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required,min=1,dive,required"`

	// RateLimitPerMinute caps requests per client IP. Zero disables limiting.
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute" validate:"gte=0"`

	// TrustProxyHeaders takes the client IP from X-Forwarded-For and
	// X-Real-IP. Enable it only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `mapstructure:"trust_proxy_headers"`
}

// IsProduction reports whether the server runs in the production environment.
func (c ServerConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

// DatabaseConfig contains all document-store settings.
type DatabaseConfig struct {
	Driver                 string `mapstructure:"driver"                    validate:"required,oneof=postgres memory"`
	URL                    string `mapstructure:"url"                       validate:"required_if=Driver postgres,omitempty,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"            validate:"gte=1"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"            validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=1"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	CookieName           string `mapstructure:"cookie_name"            validate:"required"`

	// GateBookingWrites puts booking creation and status updates behind the
	// session gate. Off by default to match the routes' historical behaviour.
	GateBookingWrites bool `mapstructure:"gate_booking_writes"`
}
