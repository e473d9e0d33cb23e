package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Backend stores settings of the courier backend API.
type Backend struct {
	BaseURL string
	Timeout time.Duration
	Retry   Retry
}

// Retry stores retry settings for idempotent backend calls.
type Retry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Session stores session persistence settings.
type Session struct {
	File   string
	Cookie string
	TTL    time.Duration
}

// RateLimit stores the login/register brute-force guard settings.
type RateLimit struct {
	Limit  int
	Window time.Duration
}

// Pprof stores the credentials guarding the profiling endpoints for
// non-loopback clients. Empty credentials restrict them to loopback.
type Pprof struct {
	User string
	Pass string
}

// Config stores console settings.
type Config struct {
	Port    int
	Backend Backend
	Session Session
	Login   RateLimit
	Pprof   Pprof
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:    envInt("PORT", DefaultPort()),
		Backend: DefaultBackend(),
		Session: DefaultSession(),
		Login:   DefaultLoginRateLimit(),
	}
	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	cfg.Backend.Timeout = envDuration("BACKEND_TIMEOUT", cfg.Backend.Timeout)
	if v := os.Getenv("SESSION_FILE"); v != "" {
		cfg.Session.File = v
	}
	cfg.Session.TTL = envDuration("SESSION_TTL", cfg.Session.TTL)
	cfg.Pprof.User = os.Getenv("PPROF_USER")
	cfg.Pprof.Pass = os.Getenv("PPROF_PASS")

	fs := pflag.NewFlagSet("console", pflag.ContinueOnError)
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.Backend.BaseURL, "backend-url", cfg.Backend.BaseURL, "base URL of the courier backend API")
	fs.StringVar(&cfg.Session.File, "session-file", cfg.Session.File, "path of the persisted session file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend URL must not be empty")
	}
	return cfg, nil
}

func envInt(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("warning: ignoring invalid %s=%q", name, v)
	}
	return fallback
}

func envDuration(name string, fallback time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("warning: ignoring invalid %s=%q", name, v)
	}
	return fallback
}
