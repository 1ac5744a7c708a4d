package store

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

const (
	renameRetries    = 3
	renameRetryDelay = 100 * time.Millisecond
)

// writeFileAtomic writes data to path via a temp file in the same
// directory: write, sync, then rename over the live file. A reader sees
// either the old complete file or the new complete file, never a partial
// write, even if the process dies between write and rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := renameWithRetry(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// renameWithRetry performs the atomic rename, retrying with exponential
// backoff on Windows where another process holding a handle on the target
// can make the rename fail transiently.
func renameWithRetry(oldPath, newPath string) error {
	var lastErr error
	delay := renameRetryDelay

	for attempt := 0; attempt <= renameRetries; attempt++ {
		err := os.Rename(oldPath, newPath)
		if err == nil {
			return nil
		}
		lastErr = err

		if runtime.GOOS != "windows" {
			break
		}
		if attempt < renameRetries {
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("rename %s: %w", newPath, lastErr)
}
