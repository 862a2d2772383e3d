// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package denoise

import (
	"github.com/gogpu/denoise/graph"
	"github.com/gogpu/denoise/pool"
	"github.com/gogpu/denoise/shader"
)

// Permutation axes. Bits are shared across methods; a method graph only
// declares the subset its passes react to, and ignores the rest.
const (
	// flagHistoryReset reseeds temporal history instead of blending.
	flagHistoryReset graph.Flags = 1 << iota

	// flagSplitScreen appends the noisy-versus-denoised debug pass.
	flagSplitScreen

	// flagValidation appends the diagnostics overlay pass.
	flagValidation

	// flagCheckerboard selects checkerboard-resolve kernels.
	flagCheckerboard

	// flagConfidence binds the history confidence inputs.
	flagConfidence

	// flagThresholdMix binds the disocclusion threshold mix input.
	flagThresholdMix

	// flagReconstruction enables hit distance pre-filtering.
	flagReconstruction

	// flag5x5 widens the reconstruction kernel from 3x3 to 5x5.
	flag5x5
)

// methodState is one method's compiled graph plus its current settings.
type methodState struct {
	desc MethodDesc
	g    *graph.MethodGraph

	reblur ReblurSettings
	sigma  SigmaSettings
	relax  RelaxSettings
}

// build declares the method's graph against the shared allocator. The
// allocator's BeginMethod block for this method must be open.
func (m *methodState) build(alloc *pool.Allocator, lib *shader.Library) error {
	var (
		g   *graph.MethodGraph
		err error
	)
	switch m.desc.Method {
	case MethodReblurDiffuseSpecularOcclusion:
		g, err = buildReblurOcclusionGraph(alloc, lib, m.desc.Width, m.desc.Height)
	case MethodSigmaShadow:
		g, err = buildSigmaShadowGraph(alloc, lib, m.desc.Width, m.desc.Height)
	case MethodRelaxDiffuse:
		g, err = buildRelaxDiffuseGraph(alloc, lib, m.desc.Width, m.desc.Height)
	default:
		return ErrUnsupportedMethod
	}
	if err != nil {
		return err
	}
	m.g = g
	return nil
}

// flags computes the frame's permutation bits from the common and
// per-method settings.
func (m *methodState) flags(cs *CommonSettings) graph.Flags {
	var f graph.Flags
	if cs.FrameIndex == 0 || cs.AccumulationMode != AccumulationModeContinue {
		f |= flagHistoryReset
	}
	if cs.SplitScreen > 0 {
		f |= flagSplitScreen
	}
	switch m.desc.Method {
	case MethodReblurDiffuseSpecularOcclusion:
		if cs.EnableValidation {
			f |= flagValidation
		}
		s := &m.reblur
		if s.HitDistanceReconstructionMode != HitDistanceReconstructionOff {
			f |= flagReconstruction
		}
		if s.HitDistanceReconstructionMode == HitDistanceReconstructionArea5x5 {
			f |= flag5x5
		}
		if s.HasConfidenceInputs {
			f |= flagConfidence
		}
		if s.HasDisocclusionThresholdMix {
			f |= flagThresholdMix
		}
		// CheckerboardMode rides in the constants block for this method;
		// no REBLUR pass permutes on it.
	case MethodRelaxDiffuse:
		s := &m.relax
		if s.CheckerboardMode != CheckerboardOff {
			f |= flagCheckerboard
		}
		if s.HasConfidenceInputs {
			f |= flagConfidence
		}
	}
	return f
}

// quality picks the kernel tier the frame requests.
func (m *methodState) quality() graph.Quality {
	if m.desc.Method == MethodReblurDiffuseSpecularOcclusion && m.reblur.EnablePerformanceMode {
		return graph.QualityPerformance
	}
	return graph.QualityDefault
}

// constantsSize is the blob size of every dispatch this method emits.
func (m *methodState) constantsSize() int {
	switch m.desc.Method {
	case MethodReblurDiffuseSpecularOcclusion:
		return reblurConstantsSize
	case MethodSigmaShadow:
		return sigmaConstantsSize
	default:
		return relaxConstantsSize
	}
}

// appendConstants packs the method-specific block following the common one.
func (m *methodState) appendConstants(b []byte) []byte {
	switch m.desc.Method {
	case MethodReblurDiffuseSpecularOcclusion:
		s := &m.reblur
		b = appendVec4(b, s.HitDistanceParameters[0], s.HitDistanceParameters[1],
			s.HitDistanceParameters[2], s.HitDistanceParameters[3])
		b = appendVec4(b, float32(s.MaxAccumulatedFrameNum), float32(s.MaxFastAccumulatedFrameNum),
			s.BlurRadius, s.DisocclusionThreshold)
		b = appendBool(b, s.EnableAntiFirefly)
		b = appendU32(b, uint32(s.CheckerboardMode))
		b = appendU32(b, uint32(s.HitDistanceReconstructionMode))
		return appendU32(b, 0)
	case MethodSigmaShadow:
		s := &m.sigma
		return appendVec4(b, s.PlaneDistanceSensitivity, s.BlurRadiusScale,
			float32(s.MaxStabilizedFrameNum), 0)
	default:
		s := &m.relax
		b = appendVec4(b, s.PrepassBlurRadius, float32(s.MaxAccumulatedFrameNum),
			float32(s.MaxFastAccumulatedFrameNum), s.DepthThreshold)
		b = appendBool(b, s.EnableAntiFirefly)
		b = appendU32(b, uint32(s.CheckerboardMode))
		b = appendU32(b, 0)
		return appendU32(b, 0)
	}
}
