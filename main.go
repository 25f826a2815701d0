package main

import (
	"errors"
	"os"

	"sjsage522/pricecompare/cmd"
	"sjsage522/pricecompare/logger"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()

	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrEmptyQuery) {
			logger.Default.Error().Err(err).Msg("Command failed")
		}
		os.Exit(1)
	}
}
