package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/cleared-dev/dailyspend/internal/commands"
)

func main() {
	// A missing .env is normal; DAILYSPEND_* may come from the shell instead.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
