// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import (
	"fmt"

	"github.com/gogpu/denoise/pool"
)

// Resource identifies an external resource kind in the host's user
// pool: an input the host supplies each frame (normals, view depth,
// motion vectors, noisy signal) or an output the host consumes.
// The concrete kinds are defined by the root denoise package.
type Resource int

// RefKind tags what a Ref points at.
type RefKind uint8

const (
	// RefDummy resolves to the shared placeholder texture. Used for
	// optional inputs absent under the current permutation.
	RefDummy RefKind = iota

	// RefExternalIn is a host-supplied per-frame input.
	RefExternalIn

	// RefExternalOut is a method result the host consumes. It may also
	// appear in an input position when a pass reads back its own
	// result from an earlier frame or pass.
	RefExternalOut

	// RefPermanent is a double-buffered pool slot persisting across frames.
	RefPermanent

	// RefTransient is a frame-scoped scratch pool slot.
	RefTransient
)

// Ref is one positional resource reference of a pass.
type Ref struct {
	Kind     RefKind
	Resource Resource       // external kinds only
	Slot     pool.SlotIndex // permanent/transient kinds only

	// Previous selects the "previous frame" half of a permanent pair
	// instead of the "current" one.
	Previous bool
}

func (r Ref) String() string {
	switch r.Kind {
	case RefDummy:
		return "dummy"
	case RefExternalIn:
		return fmt.Sprintf("in(%d)", r.Resource)
	case RefExternalOut:
		return fmt.Sprintf("out(%d)", r.Resource)
	case RefPermanent:
		if r.Previous {
			return fmt.Sprintf("permanent(%d,prev)", r.Slot)
		}
		return fmt.Sprintf("permanent(%d)", r.Slot)
	case RefTransient:
		return fmt.Sprintf("transient(%d)", r.Slot)
	default:
		return fmt.Sprintf("ref(kind=%d)", r.Kind)
	}
}

// In references a host-supplied external input.
func In(r Resource) Ref { return Ref{Kind: RefExternalIn, Resource: r} }

// Out references a host-consumed external output.
func Out(r Resource) Ref { return Ref{Kind: RefExternalOut, Resource: r} }

// Perm references the current half of a permanent slot pair.
func Perm(s pool.SlotIndex) Ref { return Ref{Kind: RefPermanent, Slot: s} }

// PermPrev references the previous-frame half of a permanent slot pair.
func PermPrev(s pool.SlotIndex) Ref { return Ref{Kind: RefPermanent, Slot: s, Previous: true} }

// Trans references a transient slot.
func Trans(s pool.SlotIndex) Ref { return Ref{Kind: RefTransient, Slot: s} }

// Input is one positional pass input. When Flag is zero the input is
// unconditional; otherwise the flag picks between two references so a
// single declaration covers both permutations without changing arity.
type Input struct {
	Flag  Flags // 0 means unconditional
	Set   Ref   // bound when Flag is zero or all its bits are set
	Clear Ref   // bound otherwise; a RefDummy Clear models an absent optional input
}

// Resolve returns the reference bound under the given dynamic flags.
func (in Input) Resolve(f Flags) Ref {
	if in.Flag == 0 || f&in.Flag == in.Flag {
		return in.Set
	}
	return in.Clear
}
