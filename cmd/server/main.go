package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hearthstack/homescore-backend/internal/app"
)

func main() {
	// Missing .env is fine in containerized deploys; real env wins.
	_ = godotenv.Load()

	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	a.Start()

	a.Log.Info("Starting HTTP server", "addr", a.Cfg.HTTPAddr)
	if err := a.Run(a.Cfg.HTTPAddr); err != nil {
		a.Log.Error("HTTP server exited", "error", err)
		os.Exit(1)
	}
}
