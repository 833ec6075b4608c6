package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"socialfeed-backend/pkg/logger"
)

func main() {
	// .env chỉ dùng cho local development, production đọc system environment.
	// Load trước logger.Init để APP_ENV/LOG_LEVEL trong .env có hiệu lực.
	envErr := godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env, os.Getenv("LOG_LEVEL"))

	if envErr != nil {
		log.Debug().Err(envErr).Msg("No .env file loaded")
	}
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().Str("environment", env).Msg("Starting socialfeed API")
	Serve()
}
