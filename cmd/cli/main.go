package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/pokekeeper/internal/buildinfo"
	"github.com/dmitrijs2005/pokekeeper/internal/client/cli"
	"github.com/dmitrijs2005/pokekeeper/internal/client/config"
	"github.com/dmitrijs2005/pokekeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)

}
