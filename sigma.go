// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package denoise

import (
	"github.com/gogpu/denoise/graph"
	"github.com/gogpu/denoise/pool"
	"github.com/gogpu/denoise/shader"
)

// buildSigmaShadowGraph declares the SIGMA shadow pipeline: penumbra
// tile classification, tile smoothing to avoid hard transitions between
// fully lit and fully shadowed regions, a penumbra-driven blur, and
// temporal stabilization against the shadow history.
func buildSigmaShadowGraph(alloc *pool.Allocator, lib *shader.Library, width, height int) (*graph.MethodGraph, error) {
	b := graph.NewBuilder("sigma_shadow", alloc, lib, width, height)

	pHistory := b.Permanent("shadow_history", pool.SlotDesc{Format: pool.TextureFormatRG32Float})

	tTiles := b.Transient("tiles", pool.SlotDesc{Format: pool.TextureFormatRGBA8Unorm, Downsample: 16})
	tSmoothTiles := b.Transient("smooth_tiles", pool.SlotDesc{Format: pool.TextureFormatRGBA8Unorm, Downsample: 16})
	tShadow := b.Transient("shadow_tmp", pool.SlotDesc{Format: pool.TextureFormatRG32Float})

	b.Pass("classify_tiles").
		Downsample(16).
		In(graph.In(ResourcePenumbra)).
		In(graph.In(ResourceViewZ)).
		Out(graph.Trans(tTiles)).
		Always(shader.SigmaClassifyTiles).
		Done()

	b.Pass("smooth_tiles").
		Downsample(16).
		In(graph.Trans(tTiles)).
		Out(graph.Trans(tSmoothTiles)).
		Always(shader.SigmaSmoothTiles).
		Done()

	b.Pass("blur").
		In(graph.Trans(tSmoothTiles)).
		In(graph.In(ResourceNormalRoughness)).
		In(graph.In(ResourceViewZ)).
		In(graph.In(ResourcePenumbra)).
		Out(graph.Trans(tShadow)).
		Always(shader.SigmaBlur).
		Done()

	b.Pass("temporal_stabilization").
		In(graph.Trans(tSmoothTiles)).
		In(graph.In(ResourceMotionVectors)).
		In(graph.Trans(tShadow)).
		In(graph.PermPrev(pHistory)).
		Out(graph.Perm(pHistory)).
		Out(graph.Out(ResourceOutShadow)).
		Candidate(0, flagHistoryReset, graph.QualityAny, shader.SigmaTemporalStabilization).
		Candidate(flagHistoryReset, flagHistoryReset, graph.QualityAny, shader.SigmaTemporalStabilizationReset).
		Done()

	b.Pass("split_screen").
		When(flagSplitScreen).
		In(graph.In(ResourceViewZ)).
		In(graph.In(ResourcePenumbra)).
		Out(graph.Out(ResourceOutShadow)).
		Always(shader.SigmaSplitScreen).
		Done()

	return b.Build()
}
