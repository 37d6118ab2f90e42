package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime settings read from the environment.
type Config struct {
	DatabaseURL  string
	Port         string
	CORSOrigin   string
	AutoMigrate  bool
	Projects     []string
	JWTSecret    string
	KafkaBrokers []string
	KafkaTopic   string
	ImportDir    string
	SummaryCron  string
}

// LoadDotEnv loads ./.env (or the given files) without overriding variables that are already set.
// A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// Load reads configuration from environment variables with defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Port:         strings.TrimSpace(os.Getenv("PORT")),
		CORSOrigin:   strings.TrimSpace(os.Getenv("CORS_ORIGIN")),
		AutoMigrate:  parseBool(os.Getenv("DB_AUTO_MIGRATE"), true),
		Projects:     splitList(os.Getenv("PROJECTS")),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   strings.TrimSpace(os.Getenv("KAFKA_TOPIC")),
		ImportDir:    strings.TrimSpace(os.Getenv("IMPORT_DIR")),
		SummaryCron:  strings.TrimSpace(os.Getenv("SUMMARY_CRON")),
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DB_DSN"))
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "http://localhost:3000"
	}
	if cfg.KafkaTopic == "" {
		cfg.KafkaTopic = "time-entries"
	}

	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is not set. Please configure it in your environment")
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }

func parseBool(raw string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return def
	case "false", "0", "no", "off":
		return false
	}
	return true
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
