package main

import (
	"flag"
	"log"

	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/app"
	"github.com/Achchuthan2006/praise-tabernacle-sub000/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("app init: %v", err)
	}

	if err = application.Run(); err != nil {
		log.Fatalf("app run: %v", err)
	}
}
