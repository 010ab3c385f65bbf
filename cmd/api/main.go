package main

import (
	"os"

	"github.com/my2a/courseselect/internal/pkg/logger"
	"github.com/my2a/courseselect/internal/server"
)

// @title Course Selection API
// @version 1.0
// @description API for course selection, enrollment constraints and the academic calendar

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// setup errors are already logged in detail by bootstrap
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
