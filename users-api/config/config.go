package config

import "os"

// Config holds the users-api settings.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	Port       string

	LoginRateRPS   float64
	LoginRateBurst int
}

// LoadConfig reads settings from environment variables with local defaults.
func LoadConfig() *Config {
	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "roomrental"),
		DBPassword:     getEnv("DB_PASSWORD", "roomrental"),
		DBName:         getEnv("DB_NAME", "users_db"),
		Port:           getEnv("SERVER_PORT", "8080"),
		LoginRateRPS:   1,
		LoginRateBurst: 5,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
