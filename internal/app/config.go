package app

import (
	"strings"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/utils"
)

type Config struct {
	Port        string
	CORSOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	origins := utils.GetEnv("CORS_ORIGINS", "http://localhost:3000", log)
	return Config{
		Port:        port,
		CORSOrigins: strings.Split(origins, ","),
	}
}
