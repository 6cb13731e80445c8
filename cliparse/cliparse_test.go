// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseFlags_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" || cfg.DatabaseURL != "landing.db" {
		t.Errorf("unexpected database defaults: %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.SubmitMode != "stub" {
		t.Errorf("expected stub submit mode, got %s", cfg.SubmitMode)
	}
	if cfg.SubmitLatency != time.Second {
		t.Errorf("expected 1s latency, got %s", cfg.SubmitLatency)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected 30m session ttl, got %s", cfg.SessionTTL)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("DATABASE_TYPE", "postgres")
	os.Setenv("ADMIN_KEY_SALT", "test-salt")
	os.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	os.Setenv("SESSION_TTL", "5m")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.AdminKeySalt != "test-salt" {
		t.Errorf("expected admin salt from env, got %q", cfg.AdminKeySalt)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Errorf("expected 5m session ttl, got %s", cfg.SessionTTL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("SUBMIT_MODE", "store")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-submit", "stub", "-latency", "10ms"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.SubmitMode != "stub" {
		t.Errorf("CLI should override env: expected stub, got %s", cfg.SubmitMode)
	}
	if cfg.SubmitLatency != 10*time.Millisecond {
		t.Errorf("expected 10ms latency, got %s", cfg.SubmitLatency)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"postgres without url", []string{"-t", "postgres"}, nil},
		{"unknown database", []string{"-t", "mysql"}, nil},
		{"http without endpoint", []string{"-submit", "http"}, nil},
		{"unknown submit mode", []string{"-submit", "email"}, nil},
		{"bad port", nil, map[string]string{"PORT": "abc"}},
		{"bad latency", nil, map[string]string{"SUBMIT_LATENCY": "soon"}},
		{"admin key without salt", []string{"-print-admin-key"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			defer os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=7000\nDOMAIN=fromfile.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	os.Setenv("DOMAIN", "fromenv.com")

	if err := LoadEnvFile(path); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-p", "7100"})
	if err != nil {
		t.Fatal(err)
	}

	// flags > env > .env
	if cfg.Port != 7100 {
		t.Errorf("expected flag port 7100, got %d", cfg.Port)
	}
	if cfg.Domain != "fromenv.com" {
		t.Errorf("env should win over .env, got %s", cfg.Domain)
	}

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing file should be ignored, got %v", err)
	}
}
