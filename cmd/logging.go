package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// setupLogging routes slog to path. Without a path logs are dropped, since
// anything written to the terminal would corrupt the full-screen UI.
func setupLogging(path string) (func(), error) {
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return func() {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		_ = f.Close()
	}, nil
}
