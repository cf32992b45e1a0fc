package main

import (
	"os"

	"gameflux/backend/internal/cli"
)

// @title           GameFlux API
// @version         1.0
// @description     Game catalog, favorites and admin API for GameFlux.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
