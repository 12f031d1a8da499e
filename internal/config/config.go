package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string
	JWTSecret  string

	// Transaction retry budget for the ordering engine.
	TxnMaxAttempts int
	TxnRetryBase   time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "trackboard_user"),
		DBPassword:     getEnv("DB_PASSWORD", "trackboard_pass"),
		DBName:         getEnv("DB_NAME", "trackboard_db"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		JWTSecret:      getEnv("JWT_SECRET", "supersecretkey"),
		TxnMaxAttempts: getEnvInt("TXN_MAX_ATTEMPTS", 5),
		TxnRetryBase:   time.Duration(getEnvInt("TXN_RETRY_BASE_MS", 20)) * time.Millisecond,
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}
