// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader holds the compute shader variant registry for the
// denoising pipelines.
//
// A variant is one compiled permutation of a pass kernel: the same pass
// may dispatch different variants depending on runtime feature flags
// (history reset, hit-distance reconstruction footprint, performance
// mode). The graph builder refers to variants by ID; the pass math
// itself is opaque to the rest of the library.
//
// Every variant carries its WGSL source and its bind group contract:
// binding 0 is the uniform constants buffer, bindings 1..NumInputs are
// sampled textures, and the following NumOutputs bindings are write-only
// storage textures. Permutation never changes this layout, only which
// variant is dispatched, so optional inputs are bound to a dummy texture
// rather than dropped.
//
// Sources compile to SPIR-V with [Compile], which wraps the naga WGSL
// front end.
package shader
