// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package denoise

import "github.com/gogpu/denoise/graph"

// ResourceKind identifies one external texture in the host's user pool.
// Inputs are supplied by the host each frame; outputs are where the
// methods write their results.
type ResourceKind = graph.Resource

const (
	// ResourceMotionVectors is the per-pixel screen or world space
	// motion, scaled by CommonSettings.MotionVectorScale.
	ResourceMotionVectors ResourceKind = iota

	// ResourceNormalRoughness is the packed world normal and roughness.
	ResourceNormalRoughness

	// ResourceViewZ is linear view-space depth.
	ResourceViewZ

	// ResourceDiffHitDist is the noisy diffuse occlusion hit distance.
	ResourceDiffHitDist

	// ResourceSpecHitDist is the noisy specular occlusion hit distance.
	ResourceSpecHitDist

	// ResourcePenumbra is the noisy shadow penumbra signal.
	ResourcePenumbra

	// ResourceDiffRadianceHitDist is the noisy diffuse radiance with hit
	// distance in alpha.
	ResourceDiffRadianceHitDist

	// ResourceDiffConfidence and ResourceSpecConfidence are optional
	// history confidence inputs, bound only when the method settings
	// declare them present.
	ResourceDiffConfidence
	ResourceSpecConfidence

	// ResourceDisocclusionThresholdMix optionally modulates the
	// disocclusion threshold per pixel.
	ResourceDisocclusionThresholdMix

	// Outputs.
	ResourceOutDiffHitDist
	ResourceOutSpecHitDist
	ResourceOutShadow
	ResourceOutDiffRadianceHitDist
	ResourceOutValidation

	resourceKindCount
)

// ResourceHandle is an opaque host texture identifier. The library never
// dereferences handles; it only routes them into dispatch bindings. Zero
// means unbound.
type ResourceHandle uint64

// AccessMode tells the host how a dispatch uses a bound texture.
type AccessMode uint8

const (
	// AccessSampled is a read-only sampled binding.
	AccessSampled AccessMode = iota

	// AccessStorageWrite is a write-only storage binding.
	AccessStorageWrite
)

// Binding routes one host texture into one shader binding position.
type Binding struct {
	Handle ResourceHandle
	Access AccessMode
}

// ResourcePool carries the host textures a frame dispatches against.
// Permanent and Transient follow the exact order of the corresponding
// Describe lists; External maps the resource kinds the instance's
// methods consume and produce. Dummy backs optional inputs absent under
// the current permutation and must always be set.
type ResourcePool struct {
	External  map[ResourceKind]ResourceHandle
	Permanent []ResourceHandle
	Transient []ResourceHandle
	Dummy     ResourceHandle
}

// DispatchDesc is one compute dispatch the host must record, in list
// order. Bindings are positional: the uniform constants block is binding
// 0, Inputs follow, then Outputs.
type DispatchDesc struct {
	// Name identifies the dispatch for debug labels,
	// e.g. "sigma_shadow/blur".
	Name string

	// Pipeline indexes Description.Pipelines.
	Pipeline int

	Inputs  []Binding
	Outputs []Binding

	// GridWidth and GridHeight are workgroup counts, always >= 1.
	GridWidth  int
	GridHeight int

	// Constants is the packed uniform block for this dispatch. The
	// backing memory is reused by the next GenerateFrame call.
	Constants []byte
}
