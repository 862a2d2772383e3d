// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import "math/bits"

// Flags is a set of dynamic permutation axes. Each method assigns its
// own meaning to the bits; the graph machinery only combines and
// compares them. Flags are recomputed once per frame per method from
// the current settings and from capability facts fixed at construction.
type Flags uint32

// Count returns the number of set bits.
func (f Flags) Count() int { return bits.OnesCount32(uint32(f)) }

// Has reports whether all bits of mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// Quality selects between kernel quality tiers.
type Quality uint8

const (
	// QualityAny matches every requested quality. Candidates declared
	// with QualityAny are less specific than exact-quality ones.
	QualityAny Quality = iota

	// QualityDefault is the full-quality kernel tier.
	QualityDefault

	// QualityPerformance is the reduced-cost kernel tier.
	QualityPerformance
)

func (q Quality) String() string {
	switch q {
	case QualityAny:
		return "any"
	case QualityDefault:
		return "default"
	case QualityPerformance:
		return "performance"
	default:
		return "unknown"
	}
}
