package app

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLoggingDiscardsByDefault(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	f, err := SetupLogging("", nil)
	if err != nil || f != nil {
		t.Fatalf("SetupLogging(\"\") = %v, %v", f, err)
	}
	if log.Writer() != io.Discard {
		t.Fatalf("log output is %v, want io.Discard", log.Writer())
	}
}

func TestSetupLoggingToFile(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	path := filepath.Join(t.TempDir(), "logs", "pixelfight.log")
	f, err := SetupLogging(path, nil)
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	log.Printf("hello from the test")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "hello from the test") {
		t.Fatalf("log file content %q", data)
	}
}
