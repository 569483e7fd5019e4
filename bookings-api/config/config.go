package config

import "os"

// Config holds the bookings-api settings.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddress string
	LockTTLSecs  string

	Port string
}

// LoadConfig reads settings from environment variables with local defaults.
func LoadConfig() *Config {
	return &Config{
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "3306"),
		DBUser:       getEnv("DB_USER", "roomrental"),
		DBPassword:   getEnv("DB_PASSWORD", "roomrental"),
		DBName:       getEnv("DB_NAME", "bookings_db"),
		RedisAddress: getEnv("REDIS_ADDRESS", "localhost:6379"),
		LockTTLSecs:  getEnv("BOOKING_LOCK_TTL_SECONDS", "10"),
		Port:         getEnv("SERVER_PORT", "8083"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
