package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// SetupLogging points the standard logger at path, or at fallback when path
// is empty. The returned file is nil unless a log file was opened.
func SetupLogging(path string, fallback io.Writer) (*os.File, error) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if path == "" {
		if fallback == nil {
			fallback = io.Discard
		}
		log.SetOutput(fallback)
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	log.Printf("logging started")
	return f, nil
}
