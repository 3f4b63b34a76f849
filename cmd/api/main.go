package main

import (
	"context"
	"os"

	"github.com/gradnexus/campusconnect/internal/pkg/logger"
	"github.com/gradnexus/campusconnect/internal/server"
)

// @title GradNexus API
// @version 1.0
// @description API for the GradNexus campus alumni network
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description API token: "Token <key>". Browsers may use the session cookie set on login instead.

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// Details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
