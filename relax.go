// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package denoise

import (
	"github.com/gogpu/denoise/graph"
	"github.com/gogpu/denoise/pool"
	"github.com/gogpu/denoise/shader"
)

// buildRelaxDiffuseGraph declares the RELAX diffuse pipeline: tile
// classification, a spatial prepass, reprojection against slow and fast
// history, fast-history color-box clamping, and a three-iteration
// A-trous chain. The iteration count is fixed; the pass ordinal in the
// constants block drives each iteration's step size.
func buildRelaxDiffuseGraph(alloc *pool.Allocator, lib *shader.Library, width, height int) (*graph.MethodGraph, error) {
	b := graph.NewBuilder("relax_diffuse", alloc, lib, width, height)

	pHistory := b.Permanent("diff_history", pool.SlotDesc{Format: pool.TextureFormatRGBA16Float})
	pFast := b.Permanent("diff_fast_history", pool.SlotDesc{Format: pool.TextureFormatRGBA16Float})
	pViewZ := b.Permanent("prev_view_z", pool.SlotDesc{Format: pool.TextureFormatR32Float})
	pNormalRoughness := b.Permanent("prev_normal_roughness", pool.SlotDesc{Format: pool.TextureFormatRGBA8Unorm})
	pAccumSpeed := b.Permanent("accum_speed", pool.SlotDesc{Format: pool.TextureFormatR32Float})

	tTiles := b.Transient("tiles", pool.SlotDesc{Format: pool.TextureFormatRGBA8Unorm, Downsample: 16})
	tDiff1 := b.Transient("diff_tmp1", pool.SlotDesc{Format: pool.TextureFormatRGBA16Float})
	tDiff2 := b.Transient("diff_tmp2", pool.SlotDesc{Format: pool.TextureFormatRGBA16Float})

	b.Pass("classify_tiles").
		Downsample(16).
		In(graph.In(ResourceViewZ)).
		Out(graph.Trans(tTiles)).
		Always(shader.RelaxClassifyTiles).
		Done()

	b.Pass("prepass").
		In(graph.Trans(tTiles)).
		In(graph.In(ResourceNormalRoughness)).
		In(graph.In(ResourceViewZ)).
		In(graph.In(ResourceDiffRadianceHitDist)).
		Out(graph.Trans(tDiff1)).
		Candidate(0, flagCheckerboard, graph.QualityAny, shader.RelaxPrepass).
		Candidate(flagCheckerboard, flagCheckerboard, graph.QualityAny, shader.RelaxPrepassCheckerboard).
		Done()

	b.Pass("reproject").
		In(graph.Trans(tTiles)).
		In(graph.In(ResourceMotionVectors)).
		In(graph.In(ResourceNormalRoughness)).
		In(graph.In(ResourceViewZ)).
		In(graph.Trans(tDiff1)).
		In(graph.PermPrev(pHistory)).
		In(graph.PermPrev(pFast)).
		In(graph.PermPrev(pViewZ)).
		In(graph.PermPrev(pNormalRoughness)).
		In(graph.PermPrev(pAccumSpeed)).
		OptIn(flagConfidence, graph.In(ResourceDiffConfidence)).
		Out(graph.Trans(tDiff2)).
		Out(graph.Perm(pFast)).
		Out(graph.Perm(pAccumSpeed)).
		Candidate(0, flagHistoryReset, graph.QualityAny, shader.RelaxReproject).
		Candidate(flagHistoryReset, flagHistoryReset, graph.QualityAny, shader.RelaxReprojectReset).
		Done()

	b.Pass("history_clamp").
		In(graph.Trans(tTiles)).
		In(graph.Trans(tDiff2)).
		In(graph.Perm(pFast)).
		In(graph.In(ResourceViewZ)).
		Out(graph.Perm(pHistory)).
		Out(graph.Trans(tDiff1)).
		Always(shader.RelaxHistoryClamp).
		Done()

	b.Pass("atrous_smem").
		In(graph.Trans(tTiles)).
		In(graph.In(ResourceNormalRoughness)).
		In(graph.In(ResourceViewZ)).
		In(graph.Trans(tDiff1)).
		In(graph.Perm(pAccumSpeed)).
		Out(graph.Trans(tDiff2)).
		Always(shader.RelaxAtrousSmem).
		Done()

	b.Pass("atrous").
		In(graph.Trans(tTiles)).
		In(graph.In(ResourceNormalRoughness)).
		In(graph.In(ResourceViewZ)).
		In(graph.Trans(tDiff2)).
		In(graph.Perm(pAccumSpeed)).
		Out(graph.Trans(tDiff1)).
		Always(shader.RelaxAtrous).
		Done()

	// The last iteration also snapshots this frame's geometry for the
	// next frame's reprojection.
	b.Pass("atrous_last").
		In(graph.Trans(tTiles)).
		In(graph.In(ResourceNormalRoughness)).
		In(graph.In(ResourceViewZ)).
		In(graph.Trans(tDiff1)).
		In(graph.Perm(pAccumSpeed)).
		Out(graph.Out(ResourceOutDiffRadianceHitDist)).
		Out(graph.Perm(pViewZ)).
		Out(graph.Perm(pNormalRoughness)).
		Always(shader.RelaxAtrousLast).
		Done()

	b.Pass("split_screen").
		When(flagSplitScreen).
		In(graph.In(ResourceViewZ)).
		In(graph.In(ResourceDiffRadianceHitDist)).
		Out(graph.Out(ResourceOutDiffRadianceHitDist)).
		Always(shader.RelaxSplitScreen).
		Done()

	return b.Build()
}
