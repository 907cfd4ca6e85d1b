// Package config loads runtime settings from the environment, with an optional
// .env file, and fills in defaults for anything left unset.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	Port    string
	GinMode string

	DBDriver   string
	DBHost     string
	DBUser     string
	DBPass     string
	DBName     string
	DBPort     string
	SQLitePath string
	DBLogLevel string

	JWTSecret    string
	SessionTTL   time.Duration
	SessionStore string
	CookieSecure bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StoreDatabase = "database"
	StoreRedis    = "redis"
)

// Load reads the environment into a Config. A missing .env file is not an error.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() Config {
	cfg := Config{
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", ""),

		DBDriver:   strings.ToLower(getenv("DB_DRIVER", DriverPostgres)),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPass:     getenv("DB_PASS", "postgres"),
		DBName:     getenv("DB_NAME", "forum"),
		DBPort:     getenv("DB_PORT", "5432"),
		SQLitePath: getenv("SQLITE_PATH", "forum.db"),
		DBLogLevel: strings.ToLower(getenv("DB_LOG_LEVEL", "warn")),

		JWTSecret:    getenv("JWT_SECRET", "your-secret-key"),
		SessionTTL:   getDuration("SESSION_TTL", 14*24*time.Hour),
		SessionStore: strings.ToLower(getenv("SESSION_STORE", StoreDatabase)),
		CookieSecure: getBool("COOKIE_SECURE", false),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),

		AllowedOrigins:  splitList(getenv("ALLOWED_ORIGINS", "http://localhost:3000")),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverSQLite {
		log.Printf("Unknown DB_DRIVER %q, falling back to %s", cfg.DBDriver, DriverPostgres)
		cfg.DBDriver = DriverPostgres
	}
	if cfg.SessionStore != StoreDatabase && cfg.SessionStore != StoreRedis {
		log.Printf("Unknown SESSION_STORE %q, falling back to %s", cfg.SessionStore, StoreDatabase)
		cfg.SessionStore = StoreDatabase
	}
	if cfg.JWTSecret == "your-secret-key" {
		log.Println("JWT_SECRET not set, using the default secret (not recommended for production)")
	}

	return cfg
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %t", key, v, def)
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
