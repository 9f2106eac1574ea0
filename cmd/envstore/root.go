package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"envstore/internal/config"
	"envstore/internal/dotenv"
	"envstore/internal/loadlog"
	"envstore/internal/state"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "envstore",
		Short:         "Load .env files and query their resolved entries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newGetCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newWatchCmd())
	return root
}

// app bundles the per-invocation store and its event log.
type app struct {
	env    *dotenv.Env
	events *loadlog.Logger
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	logLevel.Set(cfg.LogLevel)

	var events *loadlog.Logger
	if cfg.LoadLogPath != "" {
		events, err = loadlog.New(cfg.LoadLogPath, runID)
		if err != nil {
			return nil, fmt.Errorf("open ndjson event log %s: %w", cfg.LoadLogPath, err)
		}
		slog.Debug("ndjson event log enabled", "path", cfg.LoadLogPath)
	}

	store := state.NewVarStore(cfg.MaxEntries)
	return &app{
		env:    dotenv.New(cfg.Dotenv, store, events),
		events: events,
	}, nil
}

func (a *app) Close() {
	a.env.Release()
	_ = a.events.Close()
}
