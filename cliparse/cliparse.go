package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/domain-landing/models"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKeySalt string
	IPHashSalt   string

	Domain         string
	ContentPath    string
	SubmitMode     string
	SubmitEndpoint string
	SubmitLatency  time.Duration
	SessionTTL     time.Duration
	CORSOrigins    []string

	PrintAdminKey bool
}

// LoadEnvFile loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var origins string

	fs := flag.NewFlagSet("domain-landing", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&origins, "cors", "", "Comma separated allowed origins")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

	// Page
	fs.StringVar(&cfg.Domain, "domain", "", "Domain for sale (defaults to the content file)")
	fs.StringVar(&cfg.ContentPath, "content", "", "Page content YAML (defaults to built-in)")
	fs.StringVar(&cfg.SubmitMode, "submit", "", "Inquiry delivery: store, stub or http")
	fs.StringVar(&cfg.SubmitEndpoint, "endpoint", "", "Inquiry endpoint for -submit http")
	fs.DurationVar(&cfg.SubmitLatency, "latency", 0, "Simulated delivery latency for -submit stub")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Idle page session lifetime")

	fs.BoolVar(&cfg.PrintAdminKey, "print-admin-key", false, "Print the admin key and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "landing.db"
	}

	if origins == "" {
		origins = os.Getenv("CORS_ORIGINS")
	}
	cfg.CORSOrigins = splitList(origins)

	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.PrintAdminKey && cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required to print the admin key")
	}

	if cfg.Domain == "" {
		cfg.Domain = os.Getenv("DOMAIN")
	}
	if cfg.ContentPath == "" {
		cfg.ContentPath = os.Getenv("CONTENT_PATH")
	}

	if cfg.SubmitMode == "" {
		cfg.SubmitMode = os.Getenv("SUBMIT_MODE")
		if cfg.SubmitMode == "" {
			cfg.SubmitMode = models.SubmitStub
		}
	}
	if cfg.SubmitEndpoint == "" {
		cfg.SubmitEndpoint = os.Getenv("SUBMIT_ENDPOINT")
	}
	switch cfg.SubmitMode {
	case models.SubmitStore, models.SubmitStub:
	case models.SubmitHTTP:
		if cfg.SubmitEndpoint == "" {
			return Config{}, errors.New("SUBMIT_ENDPOINT required for http submit mode")
		}
	default:
		return Config{}, fmt.Errorf("unsupported submit mode %q", cfg.SubmitMode)
	}

	var err error
	if cfg.SubmitLatency == 0 {
		if cfg.SubmitLatency, err = durationEnv("SUBMIT_LATENCY", DefaultSubmitLatency); err != nil {
			return Config{}, err
		}
	}
	if cfg.SessionTTL == 0 {
		if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 30*time.Minute); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// DefaultSubmitLatency is the simulated round trip of the stub backend.
const DefaultSubmitLatency = time.Second

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
