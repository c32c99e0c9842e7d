package config

import (
	"os"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")
	t.Setenv("SESSION_SECRET_KEY", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPAddr != ":8000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.OTPExpiry != 10*time.Minute {
		t.Errorf("OTPExpiry = %v", cfg.OTPExpiry)
	}
	if cfg.SessionMaxAge != 168*time.Hour {
		t.Errorf("SessionMaxAge = %v", cfg.SessionMaxAge)
	}
	if cfg.PGDSN != "" || cfg.RedisAddr != "" {
		t.Errorf("optional backends should default to empty, got %q %q", cfg.PGDSN, cfg.RedisAddr)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("OTP_EXPIRY", "5m")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OTPExpiry != 5*time.Minute {
		t.Errorf("OTPExpiry = %v", cfg.OTPExpiry)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	// t.Setenv registers the restore; a set-but-empty variable still counts
	// as present, so the vars have to be unset outright.
	for _, k := range []string{"SUPABASE_URL", "SUPABASE_SERVICE_KEY", "SESSION_SECRET_KEY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	if _, err := Load(); err == nil {
		t.Fatal("missing required settings must fail loading")
	}
}
