package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mallops/mallops/cmd/mallopsctl/cli"
	"github.com/mallops/mallops/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	// Keep stdout for command output.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	data := app.NewDataLayer(cfg, logger, nil, nil)
	defer data.Close()
	jobsCLI := cli.NewJobsCLI(cfg.RedisAddr)
	defer func() { _ = jobsCLI.Close() }()

	root := cli.NewRootCmd(&cli.Env{
		Service: data.Service,
		Toggle:  data.Source,
		Jobs:    jobsCLI,
		Timeout: cfg.AppRequestTimeout,
	})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "mallopsctl:", err)
		os.Exit(1)
	}
}
