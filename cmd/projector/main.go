package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Local .env is optional.
	_ = godotenv.Load()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
