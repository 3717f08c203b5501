package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Watsonx WatsonxConfig
	Cache   CacheConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type WatsonxConfig struct {
	APIKey    string
	ProjectID string
	Region    string
	ModelID   string
}

type CacheConfig struct {
	ResponseTTLSeconds int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Watsonx: WatsonxConfig{
			APIKey:    getEnv("WATSONX_API_KEY", ""),
			ProjectID: getEnv("WATSONX_PROJECT_ID", ""),
			Region:    getEnv("WATSONX_REGION", "us-south"),
			ModelID:   getEnv("WATSONX_MODEL_ID", "ibm/granite-3-8b-instruct"),
		},
		Cache: CacheConfig{
			ResponseTTLSeconds: getEnvAsInt("CACHE_TTL_SECONDS", 1800),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
