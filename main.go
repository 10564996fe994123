package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ardnew/lox/cli"
	"github.com/ardnew/lox/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	if err != nil {
		code := cli.ExitCode(err)

		// Script diagnostics have already been reported on stderr.
		if code == cli.ExitDataErr || code == cli.ExitSoftware {
			log.Debug("script failed", slog.Any("error", err))
		} else {
			log.Error("run failed", slog.Any("error", err))
		}

		os.Exit(code)
	}
}
