package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"envstore/internal/dotenv"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Load FILE and reload it on every change until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	path := args[0]
	if err := a.env.Load(path); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("watching env file", "path", path)
	err = a.env.Watch(ctx, path, func(st dotenv.Stats, err error) {
		if err != nil {
			slog.Warn("reload failed", "path", path, "err", err)
			return
		}
		slog.Info("env reloaded", "path", path, "entries", st.Entries)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("shutdown requested")
	return nil
}
