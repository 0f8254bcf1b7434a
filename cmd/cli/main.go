package main

import (
	"context"
	"log"
	"os"

	"eventmanager/internal/buildinfo"
	"eventmanager/internal/client/cli"
	"eventmanager/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
