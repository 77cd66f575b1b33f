package main

import (
	"context"

	"inkwell/internal/cli"
	"inkwell/internal/config"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	app := cli.NewApp(cfg)
	app.Run(ctx)
}
