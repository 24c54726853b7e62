//go:build opencl

package fight

import (
	"fmt"
	"math"
	"strings"
	"unsafe"

	"pixelfight/internal/rng"

	"github.com/jgillich/go-opencl/cl"
)

// fightKernelSource mirrors gatherNeighbors and rng.Hash so a device run and
// a BackendParallel run with the same step seeds agree cell for cell.
const fightKernelSource = `uint cell_hash(uint seed, uint x, uint y, uint width)
{
    uint v = seed + x + y * width;
    v ^= 2747636419u;
    v *= 2654435769u;
    v ^= v >> 16;
    v *= 2654435769u;
    v ^= v >> 16;
    v *= 2654435769u;
    return v;
}

__kernel void fight_step(
    const int width,
    const int height,
    const int seed_bits,
    __global const uint* current,
    __global uint* next_buffer,
    __global uint* counts)
{
    int idx = get_global_id(0);
    if (idx >= width * height) {
        return;
    }
    int x = idx % width;
    int y = idx / width;
    uint neighbors[8];
    uint n = 0;
    for (int dy = -1; dy <= 1; dy++) {
        int ny = y + dy;
        if (ny < 0 || ny >= height) {
            continue;
        }
        for (int dx = -1; dx <= 1; dx++) {
            int nx = x + dx;
            if ((dx == 0 && dy == 0) || nx < 0 || nx >= width) {
                continue;
            }
            neighbors[n++] = current[ny * width + nx];
        }
    }
    uint owner = neighbors[cell_hash((uint)seed_bits, (uint)x, (uint)y, (uint)width) % n];
    uint old = current[idx];
    next_buffer[idx] = owner;
    if (owner != old) {
        atomic_dec(&counts[old]);
        atomic_inc(&counts[owner]);
    }
}`

// Device is an opened OpenCL compute device with its context and command
// queue. It is created explicitly and released with Close; several
// simulations may share one device in turn.
type Device struct {
	device  *cl.Device
	context *cl.Context
	queue   *cl.CommandQueue
	name    string
}

// OpenDevice picks the first GPU, falling back to the first CPU device.
func OpenDevice() (*Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("opencl: %w: %s: %v", ErrBackendUnavailable, msg, err)
	}
	if len(platforms) == 0 {
		return nil, fmt.Errorf("opencl: %w: no platforms available", ErrBackendUnavailable)
	}
	device := firstDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = firstDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, fmt.Errorf("opencl: %w: no suitable devices found", ErrBackendUnavailable)
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("opencl: %w: creating context: %v", ErrBackendUnavailable, err)
	}
	queue, err := context.CreateCommandQueue(device, 0)
	if err != nil {
		context.Release()
		return nil, fmt.Errorf("opencl: %w: creating command queue: %v", ErrBackendUnavailable, err)
	}
	return &Device{device: device, context: context, queue: queue, name: device.Name()}, nil
}

func firstDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// Name reports the device name.
func (d *Device) Name() string {
	if d == nil {
		return ""
	}
	return d.name
}

// Close releases the queue and context.
func (d *Device) Close() error {
	if d == nil {
		return nil
	}
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.context != nil {
		d.context.Release()
		d.context = nil
	}
	return nil
}

type openCLBackend struct {
	dev       *Device
	ownsDev   bool
	program   *cl.Program
	kernel    *cl.Kernel
	bufs      [2]*cl.MemObject
	countsBuf *cl.MemObject
	active    int

	width, height int
	hostCounts    []uint32
}

func newOpenCLBackend(dev *Device, owned bool, cfg Config) (Backend, error) {
	if dev == nil || dev.context == nil {
		return nil, fmt.Errorf("opencl: %w: device not open", ErrBackendUnavailable)
	}
	if cfg.Width*cfg.Height > math.MaxInt32 {
		return nil, &ConfigError{Field: "cells", Reason: "too many cells for 32-bit device counts"}
	}
	b := &openCLBackend{
		dev:        dev,
		ownsDev:    owned,
		width:      cfg.Width,
		height:     cfg.Height,
		hostCounts: make([]uint32, len(cfg.Factions)),
	}
	program, err := dev.context.CreateProgramWithSource([]string{fightKernelSource})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	b.program = program
	if err := program.BuildProgram([]*cl.Device{dev.device}, ""); err != nil {
		b.release()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if b.kernel, err = program.CreateKernel("fight_step"); err != nil {
		b.release()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}
	cellBytes := cfg.Width * cfg.Height * int(unsafe.Sizeof(uint32(0)))
	for i := range b.bufs {
		if b.bufs[i], err = dev.context.CreateEmptyBuffer(cl.MemReadWrite, cellBytes); err != nil {
			b.release()
			return nil, fmt.Errorf("allocating ownership buffer %d: %w", i, err)
		}
	}
	countBytes := len(cfg.Factions) * int(unsafe.Sizeof(uint32(0)))
	if b.countsBuf, err = dev.context.CreateEmptyBuffer(cl.MemReadWrite, countBytes); err != nil {
		b.release()
		return nil, fmt.Errorf("allocating count buffer: %w", err)
	}
	if err := b.kernel.SetArgs(
		int32(cfg.Width),
		int32(cfg.Height),
		int32(0),
		b.bufs[0],
		b.bufs[1],
		b.countsBuf,
	); err != nil {
		b.release()
		return nil, fmt.Errorf("setting kernel arguments: %w", err)
	}
	return b, nil
}

func (b *openCLBackend) Name() string { return BackendOpenCL }

// DeviceName reports the device the kernel runs on.
func (b *openCLBackend) DeviceName() string { return b.dev.Name() }

func (b *openCLBackend) Reset(st *State, _ int64) error {
	cells := st.Current().Cells()
	b.active = 0
	if err := b.write(b.bufs[0], cells); err != nil {
		return fmt.Errorf("uploading ownership buffer: %w", err)
	}
	for i, c := range st.Counts() {
		b.hostCounts[i] = uint32(c)
	}
	if err := b.write(b.countsBuf, b.hostCounts); err != nil {
		return fmt.Errorf("uploading counts: %w", err)
	}
	return nil
}

func (b *openCLBackend) Step(st *State, seed uint64) error {
	cur, next := b.bufs[b.active], b.bufs[1-b.active]
	if err := b.kernel.SetArgInt32(2, int32(rng.StepSeed(seed, st.Iteration()))); err != nil {
		return fmt.Errorf("setting step seed: %w", err)
	}
	if err := b.kernel.SetArgBuffer(3, cur); err != nil {
		return fmt.Errorf("binding current buffer: %w", err)
	}
	if err := b.kernel.SetArgBuffer(4, next); err != nil {
		return fmt.Errorf("binding next buffer: %w", err)
	}
	global := []int{b.width * b.height}
	if _, err := b.dev.queue.EnqueueNDRangeKernel(b.kernel, nil, global, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	// Blocking reads finish the kernel before the host sees either buffer.
	if err := b.read(next, st.Next().Cells()); err != nil {
		return fmt.Errorf("reading ownership buffer: %w", err)
	}
	if err := b.read(b.countsBuf, b.hostCounts); err != nil {
		return fmt.Errorf("reading counts: %w", err)
	}
	counts := st.Counts()
	for i, c := range b.hostCounts {
		counts[i] = uint64(c)
	}
	b.active = 1 - b.active
	return nil
}

func (b *openCLBackend) write(buf *cl.MemObject, data []uint32) error {
	if len(data) == 0 {
		return nil
	}
	byteLen := len(data) * int(unsafe.Sizeof(uint32(0)))
	_, err := b.dev.queue.EnqueueWriteBuffer(buf, true, 0, byteLen, unsafe.Pointer(&data[0]), nil)
	return err
}

func (b *openCLBackend) read(buf *cl.MemObject, data []uint32) error {
	if len(data) == 0 {
		return nil
	}
	byteLen := len(data) * int(unsafe.Sizeof(uint32(0)))
	_, err := b.dev.queue.EnqueueReadBuffer(buf, true, 0, byteLen, unsafe.Pointer(&data[0]), nil)
	return err
}

func (b *openCLBackend) release() {
	if b.countsBuf != nil {
		b.countsBuf.Release()
		b.countsBuf = nil
	}
	for i := range b.bufs {
		if b.bufs[i] != nil {
			b.bufs[i].Release()
			b.bufs[i] = nil
		}
	}
	if b.kernel != nil {
		b.kernel.Release()
		b.kernel = nil
	}
	if b.program != nil {
		b.program.Release()
		b.program = nil
	}
}

func (b *openCLBackend) Close() error {
	b.release()
	if b.ownsDev {
		return b.dev.Close()
	}
	return nil
}
