// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package denoise

import (
	"github.com/gogpu/denoise/graph"
	"github.com/gogpu/denoise/pool"
	"github.com/gogpu/denoise/shader"
)

// buildReblurOcclusionGraph declares the REBLUR diffuse-specular
// occlusion pipeline: tile classification, optional hit distance
// reconstruction, temporal accumulation against the double-buffered
// history, a history length fix for recently disoccluded pixels, and a
// two-stage blur producing the final outputs. Split-screen and
// validation tails are gated per frame.
func buildReblurOcclusionGraph(alloc *pool.Allocator, lib *shader.Library, width, height int) (*graph.MethodGraph, error) {
	b := graph.NewBuilder("reblur_diffuse_specular_occlusion", alloc, lib, width, height)

	// Frame-to-frame history. SpecHitDist keeps a separate accumulation
	// used for specular motion tracking. Every pool texture is written by
	// a compute pass, so formats must be WGSL storage-capable; scalar and
	// two-channel data uses r32float/rg32float, unorm data rgba8unorm.
	pViewZ := b.Permanent("prev_view_z", pool.SlotDesc{Format: pool.TextureFormatR32Float})
	pNormalRoughness := b.Permanent("prev_normal_roughness", pool.SlotDesc{Format: pool.TextureFormatRGBA8Unorm})
	pInternal := b.Permanent("prev_internal_data", pool.SlotDesc{Format: pool.TextureFormatRGBA8Unorm})
	pDiffFast := b.Permanent("diff_fast_history", pool.SlotDesc{Format: pool.TextureFormatR32Float})
	pSpecFast := b.Permanent("spec_fast_history", pool.SlotDesc{Format: pool.TextureFormatR32Float})
	pSpecHitDist := b.Permanent("spec_hitdist_for_tracking", pool.SlotDesc{Format: pool.TextureFormatR32Float})

	tTiles := b.Transient("tiles", pool.SlotDesc{Format: pool.TextureFormatRGBA8Unorm, Downsample: 16})
	tData := b.Transient("data", pool.SlotDesc{Format: pool.TextureFormatRG32Float})
	tDiff1 := b.Transient("diff_tmp1", pool.SlotDesc{Format: pool.TextureFormatR32Float})
	tDiff2 := b.Transient("diff_tmp2", pool.SlotDesc{Format: pool.TextureFormatR32Float})
	tSpec1 := b.Transient("spec_tmp1", pool.SlotDesc{Format: pool.TextureFormatR32Float})
	tSpec2 := b.Transient("spec_tmp2", pool.SlotDesc{Format: pool.TextureFormatR32Float})

	b.Pass("classify_tiles").
		Downsample(16).
		In(graph.In(ResourceViewZ)).
		Out(graph.Trans(tTiles)).
		Always(shader.ReblurClassifyTiles).
		Done()

	b.Pass("hitdist_reconstruction").
		When(flagReconstruction).
		In(graph.Trans(tTiles)).
		In(graph.In(ResourceNormalRoughness)).
		In(graph.In(ResourceViewZ)).
		In(graph.In(ResourceDiffHitDist)).
		In(graph.In(ResourceSpecHitDist)).
		Out(graph.Trans(tDiff1)).
		Out(graph.Trans(tSpec1)).
		Candidate(0, flag5x5, graph.QualityDefault, shader.ReblurHitDistReconstruction3x3).
		Candidate(flag5x5, flag5x5, graph.QualityDefault, shader.ReblurHitDistReconstruction5x5).
		Candidate(0, flag5x5, graph.QualityPerformance, shader.ReblurPerfHitDistReconstruction3x3).
		Candidate(flag5x5, flag5x5, graph.QualityPerformance, shader.ReblurPerfHitDistReconstruction5x5).
		Done()

	b.Pass("temporal_accumulation").
		In(graph.Trans(tTiles)).
		In(graph.In(ResourceNormalRoughness)).
		In(graph.In(ResourceViewZ)).
		In(graph.In(ResourceMotionVectors)).
		In(graph.PermPrev(pViewZ)).
		In(graph.PermPrev(pNormalRoughness)).
		In(graph.PermPrev(pInternal)).
		SwitchIn(flagReconstruction, graph.Trans(tDiff1), graph.In(ResourceDiffHitDist)).
		SwitchIn(flagReconstruction, graph.Trans(tSpec1), graph.In(ResourceSpecHitDist)).
		OptIn(flagConfidence, graph.In(ResourceDiffConfidence)).
		OptIn(flagConfidence, graph.In(ResourceSpecConfidence)).
		OptIn(flagThresholdMix, graph.In(ResourceDisocclusionThresholdMix)).
		In(graph.PermPrev(pDiffFast)).
		In(graph.PermPrev(pSpecFast)).
		In(graph.PermPrev(pSpecHitDist)).
		In(graph.Out(ResourceOutDiffHitDist)).
		In(graph.Out(ResourceOutSpecHitDist)).
		Out(graph.Perm(pViewZ)).
		Out(graph.Perm(pNormalRoughness)).
		Out(graph.Perm(pInternal)).
		Out(graph.Trans(tDiff2)).
		Out(graph.Trans(tSpec2)).
		Out(graph.Perm(pSpecHitDist)).
		Candidate(0, flagHistoryReset, graph.QualityDefault, shader.ReblurOcclusionTemporalAccumulation).
		Candidate(flagHistoryReset, flagHistoryReset, graph.QualityDefault, shader.ReblurOcclusionTemporalAccumulationReset).
		Candidate(0, flagHistoryReset, graph.QualityPerformance, shader.ReblurPerfOcclusionTemporalAccumulation).
		Candidate(flagHistoryReset, flagHistoryReset, graph.QualityPerformance, shader.ReblurPerfOcclusionTemporalAccumulationReset).
		Done()

	b.Pass("history_fix").
		In(graph.Trans(tTiles)).
		In(graph.In(ResourceNormalRoughness)).
		In(graph.In(ResourceViewZ)).
		In(graph.Perm(pInternal)).
		In(graph.Trans(tDiff2)).
		In(graph.Trans(tSpec2)).
		In(graph.PermPrev(pDiffFast)).
		In(graph.PermPrev(pSpecFast)).
		Out(graph.Trans(tDiff1)).
		Out(graph.Trans(tSpec1)).
		Out(graph.Perm(pDiffFast)).
		Out(graph.Perm(pSpecFast)).
		Candidate(0, 0, graph.QualityDefault, shader.ReblurOcclusionHistoryFix).
		Candidate(0, 0, graph.QualityPerformance, shader.ReblurPerfOcclusionHistoryFix).
		Done()

	b.Pass("blur").
		In(graph.Trans(tTiles)).
		In(graph.In(ResourceNormalRoughness)).
		In(graph.In(ResourceViewZ)).
		In(graph.Perm(pInternal)).
		In(graph.Trans(tDiff1)).
		In(graph.Trans(tSpec1)).
		Out(graph.Trans(tDiff2)).
		Out(graph.Trans(tSpec2)).
		Out(graph.Trans(tData)).
		Candidate(0, 0, graph.QualityDefault, shader.ReblurOcclusionBlur).
		Candidate(0, 0, graph.QualityPerformance, shader.ReblurPerfOcclusionBlur).
		Done()

	b.Pass("post_blur").
		In(graph.Trans(tTiles)).
		In(graph.In(ResourceNormalRoughness)).
		In(graph.Perm(pInternal)).
		In(graph.Trans(tData)).
		In(graph.Trans(tDiff2)).
		In(graph.Trans(tSpec2)).
		Out(graph.Out(ResourceOutDiffHitDist)).
		Out(graph.Out(ResourceOutSpecHitDist)).
		Candidate(0, 0, graph.QualityDefault, shader.ReblurOcclusionPostBlur).
		Candidate(0, 0, graph.QualityPerformance, shader.ReblurPerfOcclusionPostBlur).
		Done()

	b.Pass("split_screen").
		When(flagSplitScreen).
		Downsample(1).
		In(graph.In(ResourceViewZ)).
		In(graph.In(ResourceDiffHitDist)).
		In(graph.In(ResourceSpecHitDist)).
		Out(graph.Out(ResourceOutDiffHitDist)).
		Out(graph.Out(ResourceOutSpecHitDist)).
		Always(shader.ReblurSplitScreen).
		Done()

	b.Pass("validation").
		When(flagValidation).
		Downsample(1).
		In(graph.In(ResourceNormalRoughness)).
		In(graph.In(ResourceViewZ)).
		In(graph.In(ResourceMotionVectors)).
		In(graph.Perm(pInternal)).
		Out(graph.Out(ResourceOutValidation)).
		Always(shader.ReblurValidation).
		Done()

	return b.Build()
}
