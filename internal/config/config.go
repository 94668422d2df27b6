package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the scraper
type Config struct {
	Scraper       ScraperConfig
	Redis         RedisConfig
	Postgres      PostgresConfig
	Elasticsearch ESConfig
	Export        ExportConfig
}

type ScraperConfig struct {
	// Browser-like request headers; the listings site serves different
	// (or no) markup without them.
	UserAgent      string
	Accept         string
	AcceptLanguage string
	Timeout        time.Duration
	// Path of the durable seen-set file (file backend)
	SeenFile string
	// Backend for the seen set: "file" or "redis"
	SeenBackend string
	// Optional YAML file overriding the compiled-in categories
	CategoriesFile string
}

type RedisConfig struct {
	// Empty Addr disables all Redis features
	Addr     string
	Password string
	DB       int
	// Redis SET key for the seen set (redis backend)
	SeenKey string
	// Redis list the formatted notifications are pushed to; empty
	// means notifications go to stdout only
	NotifyQueue string
}

type PostgresConfig struct {
	// Connection string; empty disables the Postgres archive
	ConnectionString string
	TableName        string
}

type ESConfig struct {
	// Empty address disables the Elasticsearch archive
	Addresses []string
	Index     string
}

type ExportConfig struct {
	// Workbook written next to the binary, overwritten each run
	Filename string
}

// Load creates a Config from environment variables with defaults
func Load() *Config {
	return &Config{
		Scraper: ScraperConfig{
			UserAgent:      getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
			Accept:         getEnv("ACCEPT", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"),
			AcceptLanguage: getEnv("ACCEPT_LANGUAGE", "en-US,en;q=0.5"),
			Timeout:        time.Duration(getEnvInt("FETCH_TIMEOUT_MS", 30000)) * time.Millisecond,
			SeenFile:       getEnv("SEEN_FILE", "processed_listings.json"),
			SeenBackend:    getEnv("SEEN_BACKEND", "file"),
			CategoriesFile: getEnv("CATEGORIES_FILE", ""),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", ""),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvInt("REDIS_DB", 0),
			SeenKey:     getEnv("REDIS_SEEN_KEY", "listings:seen"),
			NotifyQueue: getEnv("REDIS_NOTIFY_QUEUE", ""),
		},
		Postgres: PostgresConfig{
			ConnectionString: getEnv("POSTGRES_URL", ""),
			TableName:        getEnv("POSTGRES_TABLE", "apprenticeship_listings"),
		},
		Elasticsearch: ESConfig{
			Addresses: []string{getEnv("ELASTICSEARCH_URL", "")},
			Index:     getEnv("ELASTICSEARCH_INDEX", "apprenticeships"),
		},
		Export: ExportConfig{
			Filename: getEnv("EXPORT_FILENAME", "Apprenticeships.xlsx"),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
