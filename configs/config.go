package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

func ConfigBool(key string) bool {
	value, err := strconv.ParseBool(Config(key))
	if err != nil {
		return false
	}
	return value
}

func ConfigInt(key string, fallback int) int {
	value, err := strconv.Atoi(Config(key))
	if err != nil {
		return fallback
	}
	return value
}

func ConfigFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(Config(key), 64)
	if err != nil {
		return fallback
	}
	return value
}
