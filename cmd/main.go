package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tunepull/internal/actions"
	"tunepull/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := actions.NewApp()
	if err := app.RunContext(ctx, os.Args); err != nil {
		ui.NewConsole(os.Stderr).Error(actions.Describe(err))
		stop()
		os.Exit(1)
	}
}
