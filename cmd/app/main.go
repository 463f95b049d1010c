package main

import (
	"mediconnect/config"
	"mediconnect/di"
	_ "mediconnect/docs"
	"mediconnect/helper"
	"mediconnect/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title MediConnect API
// @version 1.0
// @description Doctor scheduling and appointment booking.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	http.Serve()
}
