package main

import (
	"flag"
	"log"

	"github.com/databroker-go/databroker/internal/app"
	"github.com/databroker-go/databroker/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	return a.Run()
}
