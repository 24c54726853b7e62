//go:build !opencl

package fight

import (
	"errors"
	"testing"
)

func TestOpenCLUnavailableWithoutTag(t *testing.T) {
	if _, err := OpenDevice(); !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("OpenDevice = %v, want ErrBackendUnavailable", err)
	}
	_, err := New(smallConfig(BackendOpenCL, 8, 8, 2, 1))
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("New(opencl) = %v, want ErrBackendUnavailable", err)
	}
	if errors.Is(err, ErrConfig) {
		t.Fatalf("unavailable backend reported as a config error")
	}
}
