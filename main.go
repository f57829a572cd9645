package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tanpawarit/capital-agent/cmd"
	_ "github.com/tanpawarit/capital-agent/pkg/logger/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
