// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package denoise compiles real-time ray-tracing denoisers into GPU
// dispatch lists.
//
// # Overview
//
// denoise is a GPU-agnostic denoising-pipeline compiler for the GoGPU
// ecosystem. It turns a set of requested denoising methods (REBLUR
// occlusion, SIGMA shadow, RELAX diffuse) plus per-frame camera and
// scene settings into an ordered list of compute dispatch descriptions
// with fully resolved resource bindings. The library never touches a
// GPU: the host renderer owns devices, pipelines, textures, and
// submission, and replays the list however it likes.
//
// # Quick Start
//
//	inst, err := denoise.NewInstance(denoise.InstanceDesc{
//	    Methods: []denoise.MethodDesc{
//	        {Method: denoise.MethodSigmaShadow, Width: 1920, Height: 1080},
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer inst.Destroy()
//
//	// Create everything Describe asks for: pool textures, pipelines,
//	// and the 1x1 dummy placeholder. Then, each frame:
//	dispatches, err := inst.GenerateFrame(common, resourcePool)
//
// Each DispatchDesc names a pipeline from Describe, positional input and
// output texture bindings, a workgroup grid, and a packed uniform block.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Instance, settings types, DispatchDesc, ResourcePool
//   - graph: pass graph declaration and permutation selection
//   - pool: permanent/transient texture pool allocation
//   - shader: the WGSL variant registry and SPIR-V compilation
//   - backend/wgpu: optional gogpu/wgpu probe and host glue
//
// # Threading
//
// An Instance is single-threaded. SetLogger/Logger are safe for
// concurrent use.
package denoise
