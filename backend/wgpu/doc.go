// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu adapts a denoise instance to hosts built on gogpu/wgpu.
//
// It provides two independent pieces:
//
//   - Probe: creates an instance/adapter/device through gogpu/wgpu and
//     reports the device facts denoise.NewInstance wants as
//     [denoise.Capabilities].
//   - Host: realizes a [denoise.Description] against a host-provided
//     device (the gpucontext.DeviceProvider injection pattern), creating
//     the pool textures and handing back a ready ResourcePool.
//
// The library core stays GPU-free; everything here is optional glue.
package wgpu
