package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Backend names accepted by AUTH_STORE and DOC_STORE
const (
	StoreMySQL    = "mysql"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds the application configuration
type Config struct {
	AppPort         string        // Application port
	DBUser          string        // Database user
	DBPassword      string        // Database password
	DBHost          string        // Database host
	DBPort          string        // Database port
	DBName          string        // Database name
	JWTSecret       string        // JWT secret key
	RedisAddr       string        // Redis server address, empty for an in-process cache
	RedisPass       string        // Redis password
	RedisDB         int           // Redis database number
	IsProd          bool          // Is production environment
	AuthStore       string        // mysql or memory
	DocStore        string        // mysql, postgres or memory
	PostgresDSN     string        // DSN for the postgres document store
	SessionTTL      time.Duration // Lifetime of a session token
	ListCacheTTL    time.Duration // Lifetime of the cached tracker list
	ProviderMinPass int           // Provider-side minimum password length
	CORSOrigins     []string      // Allowed origins for the JSON API, empty allows any
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	minPass, _ := strconv.Atoi(os.Getenv("PROVIDER_MIN_PASSWORD"))
	return &Config{
		AppPort:         getEnv("APP_PORT", "8080"),                 // Application port
		DBUser:          os.Getenv("DB_USER"),                       // Database user
		DBPassword:      os.Getenv("DB_PASSWORD"),                   // Database password
		DBHost:          getEnv("DB_HOST", "127.0.0.1"),             // Database host
		DBPort:          getEnv("DB_PORT", "3306"),                  // Database port
		DBName:          os.Getenv("DB_NAME"),                       // Database name
		JWTSecret:       os.Getenv("JWT_SECRET"),                    // JWT secret key
		RedisAddr:       os.Getenv("REDIS_ADDR"),                    // Redis server address
		RedisPass:       os.Getenv("REDIS_PASS"),                    // Redis password
		RedisDB:         redisDB,                                    // Redis database number
		IsProd:          os.Getenv("IS_PROD") == "true",             // Is production environment
		AuthStore:       getEnv("AUTH_STORE", StoreMySQL),           // Where accounts live
		DocStore:        getEnv("DOC_STORE", StoreMySQL),            // Where profiles and the list live
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),                  // Postgres DSN
		SessionTTL:      getDuration("SESSION_TTL", 24*time.Hour),   // Session lifetime
		ListCacheTTL:    getDuration("LIST_CACHE_TTL", time.Minute), // List cache lifetime
		ProviderMinPass: minPass,                                    // 0 means the provider default
		CORSOrigins:     splitList(os.Getenv("CORS_ORIGINS")),       // Comma separated origins
	}
}

// MySQLDSN is the Data Source Name for the MySQL connection
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// UsesMySQL reports whether any component needs the MySQL connection
func (c *Config) UsesMySQL() bool {
	return c.AuthStore == StoreMySQL || c.DocStore == StoreMySQL
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback // Missing or malformed
	}
	return d
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
