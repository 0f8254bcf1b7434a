package main

import (
	"context"
	"log"
	"os"

	"eventmanager/internal/buildinfo"
	"eventmanager/internal/server"
	"eventmanager/internal/server/config"

	_ "modernc.org/sqlite"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
