package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the ambient, process-wide configuration for the financial core,
// loaded once at startup.
type Config struct {
	DBUrl                 string
	RedisURL              string
	RedisPassword         string
	FlutterwaveSecretHash string
	Port                  string
	Host                  string
	LogLevel              string
	Env                   string
	AllowedOrigins        []string
}

// LoadConfig reads .env (if present) then the process environment. Required
// keys panic at startup if missing — fail fast rather than limp along with a
// zero-valued secret or connection string.
func LoadConfig() Config {
	godotenv.Load()

	return Config{
		DBUrl:                 getEnv("DATABASE_URL"),
		RedisURL:              getEnv("REDIS_URL"),
		RedisPassword:         getEnvOptional("REDIS_PASSWORD"),
		FlutterwaveSecretHash: getEnv("FLUTTERWAVE_SECRET_HASH"),
		Port:                  getEnvOptional("PORT"),
		Host:                  getEnvOptional("HOST"),
		LogLevel:              getEnvOptional("LOG_LEVEL"),
		Env:                   getEnvOptional("NODE_ENV"),
		AllowedOrigins:        strings.Split(getEnvOptional("ALLOWED_ORIGINS"), ","),
	}
}

// IsDevelopment reports whether NODE_ENV=development, the knob that bypasses
// real webhook signature verification — must be off in production.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	panic(fmt.Sprintf("%s is required", key))
}

func getEnvOptional(key string) string {
	return os.Getenv(key)
}
