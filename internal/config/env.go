package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// loadEnv reads a .env file from the working directory, falling back to
// ~/.fingerstring.env. Variables already set in the environment win.
func loadEnv() {
	if err := godotenv.Load(); err == nil {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	_ = godotenv.Load(filepath.Join(home, ".fingerstring.env"))
}
