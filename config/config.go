package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Env            string
	Port           string
	DataAPIURL     string
	TokenSecret    string
	TokenExpiryMin int
	BcryptCost     int
	RSAKeyBits     int
	// KeyStoreDBURL is optional; when empty the keypair store is kept
	// in process memory.
	KeyStoreDBURL string
}

func Load() *Config {
	return &Config{
		Env:            getEnv("ENV", "development"),
		Port:           getEnv("PORT", "3000"),
		DataAPIURL:     getEnv("DATA_API_URL", "http://localhost:3001"),
		TokenSecret:    mustGetEnv("TOKEN_SECRET"),
		TokenExpiryMin: getEnvAsInt("TOKEN_EXPIRY_MIN", 60),
		BcryptCost:     getEnvAsInt("BCRYPT_COST", 12),
		RSAKeyBits:     getEnvAsInt("RSA_KEY_BITS", 4096),
		KeyStoreDBURL:  getEnv("KEYSTORE_DB_URL", ""),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
