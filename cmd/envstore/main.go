// Command envstore loads .env files into an in-process store and queries it.
//
// Subcommands:
// - get: load a file and print the values of the given keys,
// - list: load one or more files and print every entry in load order,
// - watch: load a file and reload it whenever it changes.
package main

import (
	"log/slog"
	"os"

	"envstore/internal/loadlog"
)

var (
	runID    = loadlog.MakeRunID()
	logLevel = new(slog.LevelVar)
)

func fatal(msg string, err error, attrs ...any) {
	args := make([]any, 0, 2+len(attrs))
	args = append(args, "err", err)
	args = append(args, attrs...)
	slog.Error(msg, args...)
	os.Exit(1)
}

func main() {
	// Set up logging first so config failures are captured consistently.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})).With("run_id", runID))

	if err := newRootCmd().Execute(); err != nil {
		fatal("envstore failed", err)
	}
}
