package infrastructures

import (
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	DATABASE_URL      string
	REDIS_ADDRESS     string
	REDIS_PASSWORD    string
	IDENTITY_BASE_URL string
}

var Config *AppConfig

func LoadConfig() *AppConfig {
	godotenv.Load()

	Config = &AppConfig{
		DATABASE_URL:      os.Getenv("DATABASE_URL"),
		REDIS_ADDRESS:     os.Getenv("REDIS_ADDRESS"),
		REDIS_PASSWORD:    os.Getenv("REDIS_PASSWORD"),
		IDENTITY_BASE_URL: os.Getenv("IDENTITY_BASE_URL"),
	}

	return Config
}
