package service

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"postboard/app/config"
)

// withIO redirects command output and prompt input for the duration of a test.
func withIO(t *testing.T, input string) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	oldOut, oldIn, oldLog := stdout, stdin, logOutput
	stdout, stdin, logOutput = &out, strings.NewReader(input), io.Discard
	t.Cleanup(func() { stdout, stdin, logOutput = oldOut, oldIn, oldLog })
	return &out
}

// withConfig makes HandleCommand use cfg instead of reading the environment.
func withConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	old := loadConfig
	loadConfig = func() (*config.Config, error) { return cfg, nil }
	t.Cleanup(func() { loadConfig = old })
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Env:             "test",
		Port:            "0",
		Storage:         config.StorageBadger,
		BadgerPath:      dir + "/db",
		SQLitePath:      dir + "/postboard.db",
		BackupDir:       dir + "/backups",
		LogLevel:        "error",
		LogFormat:       "text",
		ShutdownTimeout: 5 * time.Second,
	}
}
