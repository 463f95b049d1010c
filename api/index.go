package handler

import (
	"mediconnect/config"
	"mediconnect/di"
	"mediconnect/shared/logger"
	"mediconnect/transport/http/response"
	"net/http"

	"github.com/rs/zerolog/log"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	handler, err := di.InitializeService()
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize service")
		response.WithUnhealthy(w)

		return
	}

	handler.ServeHTTP(w, r)
}
