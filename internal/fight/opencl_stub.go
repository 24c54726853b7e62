//go:build !opencl

package fight

import "fmt"

// Device stands in for an OpenCL device in builds without the opencl tag.
type Device struct{}

// OpenDevice always fails without the opencl build tag.
func OpenDevice() (*Device, error) {
	return nil, fmt.Errorf("opencl: %w: support is not enabled; rebuild with -tags opencl", ErrBackendUnavailable)
}

// Name returns an empty string.
func (d *Device) Name() string { return "" }

// Close is a no-op.
func (d *Device) Close() error { return nil }

func newOpenCLBackend(*Device, bool, Config) (Backend, error) {
	return nil, fmt.Errorf("opencl: %w: support is not enabled; rebuild with -tags opencl", ErrBackendUnavailable)
}
