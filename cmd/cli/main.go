package main

import (
	"context"
	"log"

	"github.com/agsavn/foodwatch/internal/cli"
	"github.com/agsavn/foodwatch/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
