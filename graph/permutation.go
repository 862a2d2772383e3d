// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import (
	"errors"
	"fmt"

	"github.com/gogpu/denoise/shader"
)

// Selection errors. Both indicate a graph declaration bug: Build
// verifies coverage over the declared axes, so a correctly built graph
// never produces them at frame time.
var (
	// ErrUncoveredPermutation is returned when no candidate of a pass
	// matches the requested flags and quality.
	ErrUncoveredPermutation = errors.New("graph: no variant covers permutation")

	// ErrAmbiguousPermutation is returned when two distinct variants
	// match with equal specificity.
	ErrAmbiguousPermutation = errors.New("graph: ambiguous variant selection")
)

// SelectVariant picks the shader variant a pass dispatches under the
// given dynamic flags and quality. It is a pure function of its
// arguments.
//
// When several candidates match, the most specific wins: the one whose
// mask constrains the most flag bits, with an exact quality match
// breaking ties against QualityAny. Two distinct variants at equal
// specificity are an error, never resolved by declaration order.
func SelectVariant(p *Pass, f Flags, q Quality) (shader.VariantID, error) {
	best := -1
	bestSpec := -1
	ambiguous := false
	for i, c := range p.Candidates {
		if f&c.Mask != c.Match {
			continue
		}
		if c.Quality != QualityAny && c.Quality != q {
			continue
		}
		switch spec := c.specificity(); {
		case spec > bestSpec:
			best, bestSpec, ambiguous = i, spec, false
		case spec == bestSpec && c.Variant != p.Candidates[best].Variant:
			ambiguous = true
		}
	}
	if best < 0 {
		return 0, fmt.Errorf("%w: pass %s flags %#x quality %s",
			ErrUncoveredPermutation, p.Name, f, q)
	}
	if ambiguous {
		return 0, fmt.Errorf("%w: pass %s flags %#x quality %s",
			ErrAmbiguousPermutation, p.Name, f, q)
	}
	return p.Candidates[best].Variant, nil
}
