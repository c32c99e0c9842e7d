package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the environment surface of the gateway. The Supabase settings
// and the session secret are the only hard requirements; Postgres and Redis
// are optional backends that change where profiles and OTC state live.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8000"`
	Debug    bool   `env:"DEBUG"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	SupabaseURL        string `env:"SUPABASE_URL,required"`
	SupabaseServiceKey string `env:"SUPABASE_SERVICE_KEY,required"`

	SessionSecret string        `env:"SESSION_SECRET_KEY,required"`
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"168h"`

	// How long a dispatched one-time code stays usable. Also bounds the
	// window between reset-code verification and the password update.
	OTPExpiry time.Duration `env:"OTP_EXPIRY" envDefault:"10m"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080,http://localhost:3000"`

	// Optional. Empty PGDSN disables the profile directory; empty RedisAddr
	// keeps OTC state in process memory.
	PGDSN     string `env:"PG_DSN"`
	RedisAddr string `env:"REDIS_ADDR"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
