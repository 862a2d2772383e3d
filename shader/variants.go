// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

// defaultLibrary holds every built-in kernel permutation. It is
// assembled once at package init and read-only afterwards.
var defaultLibrary = NewLibrary()

// Default returns the built-in variant registry shared by the method
// graphs. Hosts that ship custom kernels can build their own Library
// instead.
func Default() *Library { return defaultLibrary }

// REBLUR occlusion kernels. The "perf" variants trade blur quality for
// speed and are selected in performance mode; the "reset" variants
// reseed history instead of blending into it.
var (
	ReblurClassifyTiles = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/classify_tiles", WGSL: source("classify_tiles.wgsl"),
		TileWidth: 16, TileHeight: 16, NumInputs: 1, NumOutputs: 1,
	})

	ReblurHitDistReconstruction3x3 = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/hitdist_reconstruction_3x3", WGSL: source("reblur_hitdist_reconstruction.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 5, NumOutputs: 2,
	})
	ReblurHitDistReconstruction5x5 = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/hitdist_reconstruction_5x5", WGSL: source("reblur_hitdist_reconstruction.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 5, NumOutputs: 2,
	})
	ReblurPerfHitDistReconstruction3x3 = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/perf_hitdist_reconstruction_3x3", WGSL: source("reblur_hitdist_reconstruction.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 5, NumOutputs: 2,
	})
	ReblurPerfHitDistReconstruction5x5 = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/perf_hitdist_reconstruction_5x5", WGSL: source("reblur_hitdist_reconstruction.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 5, NumOutputs: 2,
	})

	ReblurOcclusionTemporalAccumulation = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/temporal_accumulation", WGSL: source("reblur_temporal_accumulation.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 17, NumOutputs: 6,
	})
	ReblurOcclusionTemporalAccumulationReset = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/temporal_accumulation_reset", WGSL: source("reblur_temporal_accumulation.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 17, NumOutputs: 6,
	})
	ReblurPerfOcclusionTemporalAccumulation = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/perf_temporal_accumulation", WGSL: source("reblur_temporal_accumulation.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 17, NumOutputs: 6,
	})
	ReblurPerfOcclusionTemporalAccumulationReset = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/perf_temporal_accumulation_reset", WGSL: source("reblur_temporal_accumulation.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 17, NumOutputs: 6,
	})

	ReblurOcclusionHistoryFix = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/history_fix", WGSL: source("reblur_history_fix.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 8, NumOutputs: 4,
	})
	ReblurPerfOcclusionHistoryFix = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/perf_history_fix", WGSL: source("reblur_history_fix.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 8, NumOutputs: 4,
	})

	ReblurOcclusionBlur = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/blur", WGSL: source("reblur_blur.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 6, NumOutputs: 3,
	})
	ReblurPerfOcclusionBlur = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/perf_blur", WGSL: source("reblur_blur.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 6, NumOutputs: 3,
	})

	ReblurOcclusionPostBlur = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/post_blur", WGSL: source("reblur_post_blur.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 6, NumOutputs: 2,
	})
	ReblurPerfOcclusionPostBlur = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/perf_post_blur", WGSL: source("reblur_post_blur.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 6, NumOutputs: 2,
	})

	ReblurSplitScreen = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/split_screen", WGSL: source("reblur_split_screen.wgsl"),
		TileWidth: 16, TileHeight: 16, NumInputs: 3, NumOutputs: 2,
	})
	ReblurValidation = defaultLibrary.mustRegister(Variant{
		Name: "reblur_occlusion/validation", WGSL: source("validation.wgsl"),
		TileWidth: 16, TileHeight: 16, NumInputs: 4, NumOutputs: 1,
	})
)

// SIGMA shadow kernels.
var (
	SigmaClassifyTiles = defaultLibrary.mustRegister(Variant{
		Name: "sigma_shadow/classify_tiles", WGSL: source("sigma_classify_tiles.wgsl"),
		TileWidth: 16, TileHeight: 16, NumInputs: 2, NumOutputs: 1,
	})
	SigmaSmoothTiles = defaultLibrary.mustRegister(Variant{
		Name: "sigma_shadow/smooth_tiles", WGSL: source("sigma_smooth_tiles.wgsl"),
		TileWidth: 16, TileHeight: 16, NumInputs: 1, NumOutputs: 1,
	})
	SigmaBlur = defaultLibrary.mustRegister(Variant{
		Name: "sigma_shadow/blur", WGSL: source("sigma_blur.wgsl"),
		TileWidth: 16, TileHeight: 16, NumInputs: 4, NumOutputs: 1,
	})
	SigmaTemporalStabilization = defaultLibrary.mustRegister(Variant{
		Name: "sigma_shadow/temporal_stabilization", WGSL: source("sigma_temporal_stabilization.wgsl"),
		TileWidth: 16, TileHeight: 16, NumInputs: 4, NumOutputs: 2,
	})
	SigmaTemporalStabilizationReset = defaultLibrary.mustRegister(Variant{
		Name: "sigma_shadow/temporal_stabilization_reset", WGSL: source("sigma_temporal_stabilization.wgsl"),
		TileWidth: 16, TileHeight: 16, NumInputs: 4, NumOutputs: 2,
	})
	SigmaSplitScreen = defaultLibrary.mustRegister(Variant{
		Name: "sigma_shadow/split_screen", WGSL: source("sigma_split_screen.wgsl"),
		TileWidth: 16, TileHeight: 16, NumInputs: 2, NumOutputs: 1,
	})
)

// RELAX diffuse kernels. The first A-trous iteration uses the
// shared-memory variant; the last one writes the final output.
var (
	RelaxClassifyTiles = defaultLibrary.mustRegister(Variant{
		Name: "relax_diffuse/classify_tiles", WGSL: source("classify_tiles.wgsl"),
		TileWidth: 16, TileHeight: 16, NumInputs: 1, NumOutputs: 1,
	})
	RelaxPrepass = defaultLibrary.mustRegister(Variant{
		Name: "relax_diffuse/prepass", WGSL: source("relax_prepass.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 4, NumOutputs: 1,
	})
	RelaxPrepassCheckerboard = defaultLibrary.mustRegister(Variant{
		Name: "relax_diffuse/prepass_checkerboard", WGSL: source("relax_prepass.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 4, NumOutputs: 1,
	})
	RelaxReproject = defaultLibrary.mustRegister(Variant{
		Name: "relax_diffuse/reproject", WGSL: source("relax_reproject.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 11, NumOutputs: 3,
	})
	RelaxReprojectReset = defaultLibrary.mustRegister(Variant{
		Name: "relax_diffuse/reproject_reset", WGSL: source("relax_reproject.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 11, NumOutputs: 3,
	})
	RelaxHistoryClamp = defaultLibrary.mustRegister(Variant{
		Name: "relax_diffuse/history_clamp", WGSL: source("relax_history_clamp.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 4, NumOutputs: 2,
	})
	RelaxAtrousSmem = defaultLibrary.mustRegister(Variant{
		Name: "relax_diffuse/atrous_smem", WGSL: source("relax_atrous.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 5, NumOutputs: 1,
	})
	RelaxAtrous = defaultLibrary.mustRegister(Variant{
		Name: "relax_diffuse/atrous", WGSL: source("relax_atrous.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 5, NumOutputs: 1,
	})
	RelaxAtrousLast = defaultLibrary.mustRegister(Variant{
		Name: "relax_diffuse/atrous_last", WGSL: source("relax_atrous_last.wgsl"),
		TileWidth: 8, TileHeight: 8, NumInputs: 5, NumOutputs: 3,
	})
	RelaxSplitScreen = defaultLibrary.mustRegister(Variant{
		Name: "relax_diffuse/split_screen", WGSL: source("relax_split_screen.wgsl"),
		TileWidth: 16, TileHeight: 16, NumInputs: 2, NumOutputs: 1,
	})
)
