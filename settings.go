// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package denoise

// AccumulationMode controls how a frame treats the temporal history.
type AccumulationMode uint8

const (
	// AccumulationModeContinue blends the frame into existing history.
	AccumulationModeContinue AccumulationMode = iota

	// AccumulationModeRestart reseeds history from the current frame.
	AccumulationModeRestart

	// AccumulationModeClearAndRestart additionally discards the history
	// textures' contents before reseeding. On the dispatch level it
	// behaves like Restart; hosts clear the permanent pool themselves.
	AccumulationModeClearAndRestart
)

// CommonSettings is the per-frame camera and scene state shared by all
// methods of an instance.
type CommonSettings struct {
	// Camera matrices, column-major, for the current and previous frame.
	ViewToClip      [16]float32
	ViewToClipPrev  [16]float32
	WorldToView     [16]float32
	WorldToViewPrev [16]float32

	// MotionVectorScale converts the motion vector texture's units to
	// pixels (xy) and view-space depth (z). Zero means {1, 1, 0}.
	MotionVectorScale [3]float32

	// CameraJitter is the sub-pixel jitter applied this frame, in pixels.
	CameraJitter [2]float32

	// DenoisingRange is the world-space distance beyond which pixels are
	// treated as sky. Zero means the default of 500000.
	DenoisingRange float32

	// SplitScreen shows the noisy input on the left fraction [0, 1] of
	// the output for comparison. Zero disables the debug pass.
	SplitScreen float32

	AccumulationMode AccumulationMode

	// FrameIndex must increase by one each frame; it seeds the animated
	// sampling patterns.
	FrameIndex uint32

	// EnableValidation appends an overlay pass writing diagnostics to
	// ResourceOutValidation for the methods that support it.
	EnableValidation bool
}

const defaultDenoisingRange = 500000

// normalized clamps out-of-range fields to their documented ranges,
// logging each adjustment at Warn level.
func (s CommonSettings) normalized() CommonSettings {
	if s.DenoisingRange == 0 {
		s.DenoisingRange = defaultDenoisingRange
	}
	s.DenoisingRange = clampFloat("DenoisingRange", s.DenoisingRange, 0.01, 1e7)
	s.SplitScreen = clampFloat("SplitScreen", s.SplitScreen, 0, 1)
	if s.MotionVectorScale == [3]float32{} {
		s.MotionVectorScale = [3]float32{1, 1, 0}
	}
	return s
}

// HitDistanceReconstructionMode pre-filters sparse hit distances before
// temporal accumulation, for tracing at less than one ray per pixel.
type HitDistanceReconstructionMode uint8

const (
	HitDistanceReconstructionOff HitDistanceReconstructionMode = iota
	HitDistanceReconstructionArea3x3
	HitDistanceReconstructionArea5x5
)

// CheckerboardMode declares the tracing pattern of a half-resolution
// checkerboarded input.
type CheckerboardMode uint8

const (
	CheckerboardOff CheckerboardMode = iota
	CheckerboardBlack
	CheckerboardWhite
)

// ReblurSettings tunes MethodReblurDiffuseSpecularOcclusion.
type ReblurSettings struct {
	// HitDistanceParameters are {A, B, C, D} of the normalized hit
	// distance scale: A + viewZ * B, attenuated by roughness via C and D.
	HitDistanceParameters [4]float32

	// MaxAccumulatedFrameNum caps the temporal history length [0, 63].
	MaxAccumulatedFrameNum int

	// MaxFastAccumulatedFrameNum caps the fast history length [0, 63];
	// it should stay below MaxAccumulatedFrameNum.
	MaxFastAccumulatedFrameNum int

	// BlurRadius is the base denoising radius in pixels [0, 100].
	BlurRadius float32

	// DisocclusionThreshold is the normalized plane-distance deviation
	// [0.001, 1] that breaks history reprojection.
	DisocclusionThreshold float32

	HitDistanceReconstructionMode HitDistanceReconstructionMode
	CheckerboardMode              CheckerboardMode

	EnableAntiFirefly     bool
	EnablePerformanceMode bool

	// HasConfidenceInputs binds ResourceDiffConfidence and
	// ResourceSpecConfidence instead of the dummy placeholder.
	HasConfidenceInputs bool

	// HasDisocclusionThresholdMix binds
	// ResourceDisocclusionThresholdMix instead of the dummy placeholder.
	HasDisocclusionThresholdMix bool
}

// DefaultReblurSettings returns the tuning an instance starts with.
func DefaultReblurSettings() ReblurSettings {
	return ReblurSettings{
		HitDistanceParameters:      [4]float32{3, 0.1, 20, -25},
		MaxAccumulatedFrameNum:     30,
		MaxFastAccumulatedFrameNum: 6,
		BlurRadius:                 30,
		DisocclusionThreshold:      0.01,
	}
}

func (s ReblurSettings) normalized() ReblurSettings {
	s.MaxAccumulatedFrameNum = clampInt("MaxAccumulatedFrameNum", s.MaxAccumulatedFrameNum, 0, 63)
	s.MaxFastAccumulatedFrameNum = clampInt("MaxFastAccumulatedFrameNum", s.MaxFastAccumulatedFrameNum, 0, s.MaxAccumulatedFrameNum)
	s.BlurRadius = clampFloat("BlurRadius", s.BlurRadius, 0, 100)
	s.DisocclusionThreshold = clampFloat("DisocclusionThreshold", s.DisocclusionThreshold, 0.001, 1)
	return s
}

// SigmaSettings tunes MethodSigmaShadow.
type SigmaSettings struct {
	// PlaneDistanceSensitivity is the normalized plane-distance
	// deviation [0.001, 1] used for geometry weighting.
	PlaneDistanceSensitivity float32

	// BlurRadiusScale multiplies the penumbra-derived blur radius [1, 4].
	BlurRadiusScale float32

	// MaxStabilizedFrameNum caps the temporal stabilization history
	// length [0, 63]. Zero disables stabilization blending.
	MaxStabilizedFrameNum int
}

// DefaultSigmaSettings returns the tuning an instance starts with.
func DefaultSigmaSettings() SigmaSettings {
	return SigmaSettings{
		PlaneDistanceSensitivity: 0.005,
		BlurRadiusScale:          2,
		MaxStabilizedFrameNum:    5,
	}
}

func (s SigmaSettings) normalized() SigmaSettings {
	s.PlaneDistanceSensitivity = clampFloat("PlaneDistanceSensitivity", s.PlaneDistanceSensitivity, 0.001, 1)
	s.BlurRadiusScale = clampFloat("BlurRadiusScale", s.BlurRadiusScale, 1, 4)
	s.MaxStabilizedFrameNum = clampInt("MaxStabilizedFrameNum", s.MaxStabilizedFrameNum, 0, 63)
	return s
}

// RelaxSettings tunes MethodRelaxDiffuse.
type RelaxSettings struct {
	// PrepassBlurRadius is the pre-accumulation blur radius in pixels
	// [0, 100]. Zero skips spatial pre-filtering inside the kernel.
	PrepassBlurRadius float32

	// MaxAccumulatedFrameNum caps the temporal history length [0, 63].
	MaxAccumulatedFrameNum int

	// MaxFastAccumulatedFrameNum caps the fast history length [0, 63].
	MaxFastAccumulatedFrameNum int

	// DepthThreshold is the relative depth deviation [0.001, 1] used for
	// edge-stopping in the A-trous passes.
	DepthThreshold float32

	CheckerboardMode CheckerboardMode

	EnableAntiFirefly bool

	// HasConfidenceInputs binds ResourceDiffConfidence instead of the
	// dummy placeholder.
	HasConfidenceInputs bool
}

// DefaultRelaxSettings returns the tuning an instance starts with.
func DefaultRelaxSettings() RelaxSettings {
	return RelaxSettings{
		PrepassBlurRadius:          30,
		MaxAccumulatedFrameNum:     30,
		MaxFastAccumulatedFrameNum: 8,
		DepthThreshold:             0.003,
	}
}

func (s RelaxSettings) normalized() RelaxSettings {
	s.PrepassBlurRadius = clampFloat("PrepassBlurRadius", s.PrepassBlurRadius, 0, 100)
	s.MaxAccumulatedFrameNum = clampInt("MaxAccumulatedFrameNum", s.MaxAccumulatedFrameNum, 0, 63)
	s.MaxFastAccumulatedFrameNum = clampInt("MaxFastAccumulatedFrameNum", s.MaxFastAccumulatedFrameNum, 0, 63)
	s.DepthThreshold = clampFloat("DepthThreshold", s.DepthThreshold, 0.001, 1)
	return s
}

func clampFloat(name string, v, lo, hi float32) float32 {
	if v < lo || v > hi {
		c := min(max(v, lo), hi)
		Logger().Warn("denoise: setting clamped", "setting", name, "value", v, "clamped", c)
		return c
	}
	return v
}

func clampInt(name string, v, lo, hi int) int {
	if v < lo || v > hi {
		c := min(max(v, lo), hi)
		Logger().Warn("denoise: setting clamped", "setting", name, "value", v, "clamped", c)
		return c
	}
	return v
}
