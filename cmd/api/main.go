package main

import (
	"context"
	"log"

	"taskboard/internal/app"
	"taskboard/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	a := app.New(cfg)
	if err := a.Init(context.Background()); err != nil {
		log.Fatalf("initializing app: %v", err)
	}

	if err := a.Run(context.Background()); err != nil {
		log.Fatalf("running app: %v", err)
	}
}
