package main

import (
	"log/slog"
	"os"

	"github.com/cruciblehq/imgshrink/internal"
	"github.com/cruciblehq/imgshrink/internal/cli"
	"github.com/cruciblehq/imgshrink/internal/clog"
)

// Runs the imgshrink CLI.
//
// Initializes logging, then hands off to cli.Execute, which parses flags and
// runs the selected subcommand (version or optimize).
func main() {
	slog.SetDefault(logger())

	slog.Debug("build", "version", internal.VersionString())

	if err := cli.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(cli.ExitCode(err))
	}
}

// Creates a logger seeded from build-time linker flags.
//
// The logger is reconfigured after flag parsing via cli.Execute.
func logger() *slog.Logger {
	handler := clog.NewHandler()
	handler.SetLevel(logLevel())
	return slog.New(handler.WithGroup(internal.Name))
}

// Returns the log level derived from build-time linker flags.
func logLevel() slog.Level {
	if internal.IsDebug() {
		return slog.LevelDebug
	}
	if internal.IsQuiet() {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
