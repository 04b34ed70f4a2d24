package main

import (
	"context"
	"log"
	"os"

	"inkwell/internal/buildinfo"
	"inkwell/internal/client/cli"
	"inkwell/internal/client/config"
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
