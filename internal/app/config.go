package app

import (
	"strings"

	"github.com/pawsense/pawsense-backend/internal/logger"
	"github.com/pawsense/pawsense-backend/internal/utils"
)

type Config struct {
	ServiceName  string
	Environment  string
	Port         string
	AllowOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	origins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", log), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		ServiceName:  "pawsense-backend",
		Environment:  utils.GetEnv("APP_ENV", "development", log),
		Port:         utils.GetEnv("PORT", "8080", log),
		AllowOrigins: origins,
	}
}
