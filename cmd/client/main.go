package main

import (
	"fmt"

	"github.com/MKhiriev/script-writer/internal/adapter"
	"github.com/MKhiriev/script-writer/internal/autosave"
	"github.com/MKhiriev/script-writer/internal/client"
	"github.com/MKhiriev/script-writer/internal/config"
	"github.com/MKhiriev/script-writer/internal/logger"
	"github.com/MKhiriev/script-writer/internal/service"
	"github.com/MKhiriev/script-writer/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("script-writer-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	localStore, err := autosave.NewStore(cfg.Autosave, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create autosave store")
	}

	services := service.NewClientServices(localStore, serverAdapter, log)

	ui, err := tui.New(services, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
