// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package denoise

import (
	"encoding/binary"
	"math"
)

// Constants blob layout. Every dispatch starts with the common block;
// a method-specific block follows. All rows are 16-byte aligned so the
// blob can back a uniform buffer directly.
const (
	commonConstantsSize = 320
	reblurConstantsSize = commonConstantsSize + 48
	sigmaConstantsSize  = commonConstantsSize + 16
	relaxConstantsSize  = commonConstantsSize + 32
)

func appendF32(b []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
}

func appendU32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}

func appendVec4(b []byte, x, y, z, w float32) []byte {
	b = appendF32(b, x)
	b = appendF32(b, y)
	b = appendF32(b, z)
	return appendF32(b, w)
}

func appendMat4(b []byte, m [16]float32) []byte {
	for _, v := range m {
		b = appendF32(b, v)
	}
	return b
}

func appendBool(b []byte, v bool) []byte {
	if v {
		return appendU32(b, 1)
	}
	return appendU32(b, 0)
}

// appendCommonConstants packs the block shared by every dispatch:
//
//	vec4 screen   = {width, height, 1/width, 1/height}   (pass resolution)
//	vec4 params   = {splitScreen, denoisingRange, frameIndex, passOrdinal}
//	mat4 viewToClip, viewToClipPrev, worldToView, worldToViewPrev
//	vec4 motion   = {mvScale.x, mvScale.y, mvScale.z, jitter.x}
//	vec4 misc     = {jitter.y, accumulationMode, frameParity, 0}
//
// The frame index is carried as float32; the animated sampling patterns
// only consume its low bits, so the 24-bit mantissa is enough.
func appendCommonConstants(b []byte, cs *CommonSettings, width, height, passOrdinal int, parity bool) []byte {
	w, h := float32(width), float32(height)
	b = appendVec4(b, w, h, 1/w, 1/h)
	b = appendVec4(b, cs.SplitScreen, cs.DenoisingRange,
		float32(cs.FrameIndex&0xffffff), float32(passOrdinal))
	b = appendMat4(b, cs.ViewToClip)
	b = appendMat4(b, cs.ViewToClipPrev)
	b = appendMat4(b, cs.WorldToView)
	b = appendMat4(b, cs.WorldToViewPrev)
	b = appendVec4(b, cs.MotionVectorScale[0], cs.MotionVectorScale[1],
		cs.MotionVectorScale[2], cs.CameraJitter[0])
	b = appendF32(b, cs.CameraJitter[1])
	b = appendU32(b, uint32(cs.AccumulationMode))
	b = appendBool(b, parity)
	return appendU32(b, 0)
}
