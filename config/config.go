package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Remote bookstore API
	BackendURL     string
	BackendTimeout time.Duration
	JWTSecret      string

	// Cookie mirror (token + user for route guarding)
	CookieDomain string
	CookieSecure bool
	CookieMaxAge time.Duration

	AllowedOrigin string

	// Durable snapshot storage: file-backed under DataDir unless DBUrl is set
	DataDir string
	DBUrl   string
	// DB Config
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration

	// Visitor session registry
	VisitorTTL time.Duration

	// Cache
	CacheCatalogTTL time.Duration

	// Rate limiting
	RateLimitPerSec int
	RateLimitBurst  int

	// Business rules
	MaxCartQuantity int
	ReviewPageSize  int
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: Try loading .env (standard local dev)
		// No error here because in docker/prod envs .env might not exist,
		// and we rely on system env vars.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:     getEnv("PORT", "3000"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		BackendURL:     getEnv("BACKEND_URL", "http://localhost:4000"),
		BackendTimeout: getDurationEnv("BACKEND_TIMEOUT", 15*time.Second),
		JWTSecret:      getEnv("JWT_SECRET", "default_secret_CHANGE_ME"),

		CookieDomain: getEnv("COOKIE_DOMAIN", ""),
		CookieSecure: getBoolEnv("COOKIE_SECURE", false),
		CookieMaxAge: getDurationEnv("COOKIE_MAX_AGE", 24*time.Hour),

		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		DataDir: getEnv("DATA_DIR", "./data"),
		DBUrl:   getEnv("DB_DSN", ""),

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 10),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		// Visitor state lives for a day of inactivity
		VisitorTTL: getDurationEnv("VISITOR_TTL", 24*time.Hour),

		CacheCatalogTTL: getDurationEnv("CACHE_CATALOG_TTL", 5*time.Minute),

		RateLimitPerSec: getIntEnv("RATE_LIMIT_PER_SEC", 50),
		RateLimitBurst:  getIntEnv("RATE_LIMIT_BURST", 100),

		MaxCartQuantity: getIntEnv("MAX_CART_QUANTITY", 1000),
		ReviewPageSize:  getIntEnv("REVIEW_PAGE_SIZE", 3),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.BackendURL == "" {
		log.Fatal("CRITICAL: BACKEND_URL environment variable is required")
	}
	if c.JWTSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.Printf("Invalid bool for %s, using fallback", key)
	}
	return fallback
}
