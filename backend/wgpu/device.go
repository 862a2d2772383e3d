// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/denoise"
)

// ErrNoGPU is returned when no usable adapter is available.
var ErrNoGPU = errors.New("wgpu: no GPU adapter available")

// GPUInfo describes the selected adapter.
type GPUInfo struct {
	// Name is the GPU name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType gputypes.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12).
	Backend gputypes.Backend
	// Driver is the driver version string.
	Driver string
}

// String returns a human-readable description of the GPU.
func (g *GPUInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", g.Name, g.DeviceType, g.Backend)
}

// GPU owns a probed instance/adapter/device chain. Close releases it.
type GPU struct {
	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	info *GPUInfo
	caps denoise.Capabilities
}

// Probe creates GPU resources through gogpu/wgpu: an instance, the
// highest-performance adapter, a device, and its queue. The result
// answers what denoise.NewInstance needs to know about the device.
func Probe() (*GPU, error) {
	g := &GPU{}

	g.instance = core.NewInstance(&gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	})

	adapterID, err := g.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	g.adapter = adapterID

	if info, err := core.GetAdapterInfo(adapterID); err == nil {
		g.info = &GPUInfo{
			Name:       info.Name,
			Vendor:     info.Vendor,
			DeviceType: info.DeviceType,
			Backend:    info.Backend,
			Driver:     info.Driver,
		}
		denoise.Logger().Info("wgpu: GPU selected", "gpu", g.info.String(), "driver", g.info.Driver)
	}

	deviceID, err := core.RequestDevice(adapterID, &gputypes.DeviceDescriptor{
		Label:            "denoise-device",
		RequiredFeatures: nil,
		RequiredLimits:   gputypes.DefaultLimits(),
	})
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("wgpu: device creation failed: %w", err)
	}
	g.device = deviceID

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("wgpu: queue retrieval failed: %w", err)
	}
	g.queue = queueID

	limits, err := core.GetDeviceLimits(deviceID)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("wgpu: limits query failed: %w", err)
	}
	g.caps = denoise.Capabilities{
		MaxTextureDimension: int(limits.MaxTextureDimension2D),
	}
	denoise.Logger().Debug("wgpu: device limits",
		"maxTextureDimension2D", limits.MaxTextureDimension2D,
		"maxBufferSize", limits.MaxBufferSize)

	return g, nil
}

// Info returns the adapter description, or nil if it was unavailable.
func (g *GPU) Info() *GPUInfo { return g.info }

// Device returns the probed device ID.
func (g *GPU) Device() core.DeviceID { return g.device }

// Queue returns the probed device queue ID.
func (g *GPU) Queue() core.QueueID { return g.queue }

// Capabilities translates the device limits for denoise.NewInstance.
func (g *GPU) Capabilities() denoise.Capabilities { return g.caps }

// Close releases the device and adapter. Safe to call more than once
// and on a partially constructed GPU.
func (g *GPU) Close() {
	if !g.device.IsZero() {
		if err := core.DeviceDrop(g.device); err != nil {
			denoise.Logger().Warn("wgpu: device release failed", "err", err)
		}
		g.device = core.DeviceID{}
	}
	if !g.adapter.IsZero() {
		if err := core.AdapterDrop(g.adapter); err != nil {
			denoise.Logger().Warn("wgpu: adapter release failed", "err", err)
		}
		g.adapter = core.AdapterID{}
	}
	g.instance = nil
	g.queue = core.QueueID{}
}
