package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port               string
	CORSAllowOrigin    []string
	DatabaseURL        string
	RedisURL           string
	SessionTTL         time.Duration
	CatalogFile        string
	DefaultLocale      string
	Env                string
	AdminAPIKey        string
	HubSpotPortalID    string
	HubSpotFormID      string
	HubSpotAccessToken string
	HubSpotBaseURL     string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:               getEnv("PORT", "8080"),
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:        dbURL,
		RedisURL:           getEnv("REDIS_URL", ""),
		SessionTTL:         getDuration("SESSION_TTL", 24*time.Hour),
		CatalogFile:        getEnv("CATALOG_FILE", ""),
		DefaultLocale:      getEnv("DEFAULT_LOCALE", "de"),
		Env:                env,
		AdminAPIKey:        getEnv("ADMIN_API_KEY", ""),
		HubSpotPortalID:    getEnv("HUBSPOT_PORTAL_ID", ""),
		HubSpotFormID:      getEnv("HUBSPOT_FORM_ID", ""),
		HubSpotAccessToken: getEnv("HUBSPOT_ACCESS_TOKEN", ""),
		HubSpotBaseURL:     getEnv("HUBSPOT_BASE_URL", "https://api.hsforms.com"),
	}
}

// loadEnvFiles loads KEY=VALUE files if they exist. Variables already set in
// the environment win; missing files are ignored.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("config: skip %s: %v", path, err)
		}
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("config: %s invalid duration %q, using %s", key, raw, def)
		return def
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
