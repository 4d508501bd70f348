// Package probes reports process health through files, for orchestrators whose probes
// check that a file exists or was touched recently.
package probes

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"
)

// MarkReady creates the readiness file. An empty path is a no-op.
func MarkReady(path string) error {
	if path == "" {
		return nil
	}
	return touch(path)
}

// Clear removes the given probe files, ignoring empty paths and files that are already gone.
func Clear(logger *slog.Logger, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Failed to remove probe file", "path", p, "error", err)
		}
	}
}

// KeepAlive touches path every interval until ctx is done, then removes it.
// It returns ctx.Err(), or the first write error.
func KeepAlive(ctx context.Context, path string, interval time.Duration, logger *slog.Logger) error {
	defer Clear(logger, path)
	if err := touch(path); err != nil {
		return err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := touch(path); err != nil {
				return err
			}
		}
	}
}

func touch(path string) error {
	stamp := time.Now().UTC().Format(time.RFC3339Nano)
	if err := os.WriteFile(path, []byte(stamp+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write probe file %s: %w", path, err)
	}
	return nil
}
