package config

import (
	"errors"  // For joined validation errors
	"fmt"     // For error formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort     string   // Application port
	DBUser      string   // Database user
	DBPassword  string   // Database password
	DBHost      string   // Database host
	DBPort      string   // Database port
	DBName      string   // Database name
	JWTSecret   string   // JWT secret key
	RedisAddr   string   // Redis server address, empty disables the response cache
	RedisPass   string   // Redis password
	RedisDB     int      // Redis database number
	IsProd      bool     // Is production environment
	CORSOrigins []string // Allowed CORS origins, empty allows all
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:     getEnv("APP_PORT", "3000"),           // Application port
		DBUser:      os.Getenv("DB_USER"),                 // Database user
		DBPassword:  os.Getenv("DB_PASSWORD"),             // Database password
		DBHost:      os.Getenv("DB_HOST"),                 // Database host
		DBPort:      getEnv("DB_PORT", "3306"),            // Database port
		DBName:      os.Getenv("DB_NAME"),                 // Database name
		JWTSecret:   os.Getenv("JWT_SECRET"),              // JWT secret key
		RedisAddr:   os.Getenv("REDIS_ADDR"),              // Redis server address
		RedisPass:   os.Getenv("REDIS_PASS"),              // Redis password
		RedisDB:     redisDB,                              // Redis database number
		IsProd:      os.Getenv("IS_PROD") == "true",       // Is production environment
		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")), // Allowed CORS origins
	}
}

// Validate reports every required field that is missing
func (c *Config) Validate() error {
	var errs []error
	required := map[string]string{
		"JWT_SECRET": c.JWTSecret,
		"DB_HOST":    c.DBHost,
		"DB_USER":    c.DBUser,
		"DB_NAME":    c.DBName,
	}
	for _, key := range []string{"JWT_SECRET", "DB_HOST", "DB_USER", "DB_NAME"} {
		if strings.TrimSpace(required[key]) == "" {
			errs = append(errs, fmt.Errorf("%s is required", key))
		}
	}
	return errors.Join(errs...)
}

// DSN builds the MySQL Data Source Name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getEnv returns the variable or fallback when it is unset or empty
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
