package service

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"postboard/app/config"
	"postboard/app/logging"
	"postboard/app/repositories"
)

// Indirections so tests can swap process-level dependencies.
var (
	stdout     io.Writer = os.Stdout
	stdin      io.Reader = os.Stdin
	logOutput  io.Writer = os.Stderr
	loadConfig           = func() (*config.Config, error) { return config.Load(".") }
)

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(logOutput, cfg.LogLevel, cfg.LogFormat)
}

// openStore opens the configured storage backend.
func openStore(cfg *config.Config, log *slog.Logger) (repositories.Store, error) {
	switch cfg.Storage {
	case config.StorageBadger:
		return repositories.OpenBadger(repositories.BadgerOptions{
			Path:     cfg.BadgerPath,
			InMemory: cfg.BadgerInMemory,
			Logger:   log,
		})
	case config.StoragePostgres:
		return repositories.OpenPostgres(cfg.DatabaseURL, log)
	case config.StorageSQLite:
		return repositories.OpenSQLite(cfg.SQLitePath, log)
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

func printf(format string, a ...any) {
	fmt.Fprintf(stdout, format, a...)
}

func printLine(a ...any) {
	fmt.Fprintln(stdout, a...)
}

// confirm asks a yes/no question; only y or Y counts as yes.
func confirm(question string) bool {
	printf("%s [y/N] ", question)
	var response string
	fmt.Fscanln(stdin, &response)
	return response == "y" || response == "Y"
}
