package config

import (
	"os"

	"github.com/joho/godotenv"

	shared "github.com/awsomeshop/awsomeshop/internal/config"
)

type Config struct {
	ServerPort         int
	DatabaseURL        string
	SQLitePath         string
	JWTSecret          []byte
	JWTExpirationHours int
	KafkaBrokers       []string
	LogLevel           string
	AdminEmail         string
	AdminPassword      string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		ServerPort:         shared.EnvIntDefault("SERVER_PORT", 8080),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SQLitePath:         shared.EnvDefault("SQLITE_PATH", "awsomeshop.db"),
		JWTSecret:          []byte(shared.EnvDefault("JWT_SECRET", "")),
		JWTExpirationHours: shared.EnvIntDefault("JWT_EXPIRATION_HOURS", 24),
		KafkaBrokers:       shared.CSV(os.Getenv("KAFKA_BROKERS")),
		LogLevel:           shared.EnvDefault("LOG_LEVEL", "info"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
	}
}
