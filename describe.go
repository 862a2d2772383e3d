// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package denoise

import "github.com/gogpu/denoise/pool"

// TextureUsage flags how the instance's dispatches use a pool texture.
type TextureUsage uint8

const (
	// TextureUsageSampled marks read access through a sampled binding.
	TextureUsageSampled TextureUsage = 1 << iota

	// TextureUsageStorage marks write access through a storage binding.
	TextureUsageStorage
)

// TextureDesc tells the host to create one pool texture.
type TextureDesc struct {
	Name      string
	Format    pool.TextureFormat
	Width     int
	Height    int
	ArraySize int
	Usage     TextureUsage
}

// PipelineDesc tells the host to create one compute pipeline. The bind
// group layout is positional: binding 0 is a uniform buffer of at least
// ConstantsSize bytes, bindings 1..NumInputs are sampled textures, and
// the following NumOutputs bindings are write-only storage textures.
type PipelineDesc struct {
	// Name is the shader variant name, usable as a debug label.
	Name string

	// SPIRV is the compiled shader, ready for module creation. Shared
	// across instances; treat as read-only.
	SPIRV []uint32

	NumInputs  int
	NumOutputs int

	// TileWidth and TileHeight are the workgroup footprint; grid sizes in
	// dispatch descriptions are already divided by them.
	TileWidth  int
	TileHeight int

	// ConstantsSize is the exact uniform block size this pipeline's
	// dispatches carry.
	ConstantsSize int
}

// Description is everything the host must create before the first
// GenerateFrame call.
type Description struct {
	// Permanent and Transient pool textures, in the binding order
	// ResourcePool expects.
	Permanent []TextureDesc
	Transient []TextureDesc

	// Pipelines indexed by DispatchDesc.Pipeline.
	Pipelines []PipelineDesc

	// DummyFormat is the format of the 1x1 placeholder texture backing
	// optional inputs. The host binds its handle as ResourcePool.Dummy.
	DummyFormat pool.TextureFormat

	// ConstantsMaxSize is the largest Constants blob any dispatch of this
	// instance produces; a host ring buffer of this stride always fits.
	ConstantsMaxSize int

	// MaxDispatchCount is an upper bound on the dispatch list length
	// across all permutations.
	MaxDispatchCount int
}
