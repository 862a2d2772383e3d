// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package denoise

// Library version. Build counts dispatch-description layout revisions;
// hosts caching pipelines across runs key on all three.
const (
	VersionMajor = 0
	VersionMinor = 4
	VersionBuild = 2
)

// Method identifies one supported denoising method.
type Method uint8

const (
	// MethodReblurDiffuseSpecularOcclusion denoises paired diffuse and
	// specular ambient-occlusion hit distances with the recurrent blur
	// family of kernels.
	MethodReblurDiffuseSpecularOcclusion Method = iota

	// MethodSigmaShadow denoises shadow penumbra signals.
	MethodSigmaShadow

	// MethodRelaxDiffuse denoises a noisy diffuse radiance + hit
	// distance signal with an A-trous filter chain.
	MethodRelaxDiffuse

	methodCount
)

func (m Method) String() string {
	switch m {
	case MethodReblurDiffuseSpecularOcclusion:
		return "reblur_diffuse_specular_occlusion"
	case MethodSigmaShadow:
		return "sigma_shadow"
	case MethodRelaxDiffuse:
		return "relax_diffuse"
	default:
		return "unknown"
	}
}

// Desc describes the library build: its version and the methods it can
// instantiate.
type Desc struct {
	VersionMajor int
	VersionMinor int
	VersionBuild int

	// SupportedMethods lists every method NewInstance accepts.
	SupportedMethods []Method
}

// libraryDesc is computed once; LibraryDesc hands out copies so callers
// cannot mutate the shared slice.
var libraryDesc = Desc{
	VersionMajor: VersionMajor,
	VersionMinor: VersionMinor,
	VersionBuild: VersionBuild,
	SupportedMethods: []Method{
		MethodReblurDiffuseSpecularOcclusion,
		MethodSigmaShadow,
		MethodRelaxDiffuse,
	},
}

// LibraryDesc returns the library version and supported method list.
func LibraryDesc() Desc {
	d := libraryDesc
	d.SupportedMethods = append([]Method(nil), libraryDesc.SupportedMethods...)
	return d
}
