package main

import (
	"os"

	"github.com/joho/godotenv"

	"slidecast/cmd"
)

func main() {
	// Environment overrides may live in a local .env during development.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
