// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

// TextureFormat specifies the texel format of a pool texture. The
// library is backend-agnostic; host adapters map these to their API's
// format enums.
type TextureFormat uint32

const (
	// TextureFormatUndefined is the zero value; reserving a slot with it
	// is a declaration bug.
	TextureFormatUndefined TextureFormat = iota

	// TextureFormatR8Unorm is 8-bit red channel only, normalized unsigned integer.
	TextureFormatR8Unorm

	// TextureFormatRG8Unorm is 8-bit RG, normalized unsigned integer.
	TextureFormatRG8Unorm

	// TextureFormatRGBA8Unorm is 8-bit RGBA, normalized unsigned integer.
	TextureFormatRGBA8Unorm

	// TextureFormatR16Float is 16-bit red channel only, floating point.
	TextureFormatR16Float

	// TextureFormatRG16Float is 16-bit RG, floating point.
	TextureFormatRG16Float

	// TextureFormatRGBA16Float is 16-bit RGBA, floating point.
	TextureFormatRGBA16Float

	// TextureFormatR32Float is 32-bit red channel only, floating point.
	TextureFormatR32Float

	// TextureFormatRG32Float is 32-bit RG, floating point.
	TextureFormatRG32Float

	// TextureFormatRGBA32Float is 32-bit RGBA, floating point.
	TextureFormatRGBA32Float
)

func (f TextureFormat) String() string {
	switch f {
	case TextureFormatR8Unorm:
		return "r8unorm"
	case TextureFormatRG8Unorm:
		return "rg8unorm"
	case TextureFormatRGBA8Unorm:
		return "rgba8unorm"
	case TextureFormatR16Float:
		return "r16float"
	case TextureFormatRG16Float:
		return "rg16float"
	case TextureFormatRGBA16Float:
		return "rgba16float"
	case TextureFormatR32Float:
		return "r32float"
	case TextureFormatRG32Float:
		return "rg32float"
	case TextureFormatRGBA32Float:
		return "rgba32float"
	default:
		return "undefined"
	}
}

// BytesPerTexel returns the texel size, used for pool footprint
// accounting. Undefined formats report 0.
func (f TextureFormat) BytesPerTexel() int {
	switch f {
	case TextureFormatR8Unorm:
		return 1
	case TextureFormatRG8Unorm, TextureFormatR16Float:
		return 2
	case TextureFormatRGBA8Unorm, TextureFormatRG16Float, TextureFormatR32Float:
		return 4
	case TextureFormatRGBA16Float, TextureFormatRG32Float:
		return 8
	case TextureFormatRGBA32Float:
		return 16
	default:
		return 0
	}
}
