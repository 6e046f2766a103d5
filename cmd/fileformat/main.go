package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/fang"

	"github.com/macropower/fileformat/internal/cli"
	"github.com/macropower/fileformat/pkg/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := cli.SetupTracing(ctx)
	if err != nil {
		slog.Warn("tracing disabled", slog.Any("err", err))
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := shutdown(ctx)
		if err != nil {
			slog.Warn("flush traces", slog.Any("err", err))
		}
	}()

	err = fang.Execute(ctx, cli.NewRootCmd(),
		fang.WithVersion(version.String()),
		fang.WithErrorHandler(cli.ErrorHandler),
		fang.WithColorSchemeFunc(cli.ColorSchemeFunc),
	)
	if err != nil {
		return 1
	}

	return 0
}
