// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import (
	"errors"
	"fmt"

	"github.com/gogpu/denoise/pool"
	"github.com/gogpu/denoise/shader"
)

// Build-time configuration errors. All of them abort instance creation;
// none can surface once Build has succeeded.
var (
	// ErrNoCandidates is returned for a pass declared without variants.
	ErrNoCandidates = errors.New("graph: pass has no variant candidates")

	// ErrNoOutputs is returned for a pass declared without outputs.
	ErrNoOutputs = errors.New("graph: pass has no outputs")

	// ErrArityMismatch is returned when a candidate variant's binding
	// arity differs from the pass's declared inputs/outputs.
	ErrArityMismatch = errors.New("graph: variant arity does not match pass")

	// ErrPassAliasing is returned when one pass both reads and writes
	// the same physical resource.
	ErrPassAliasing = errors.New("graph: resource aliased within one pass")

	// ErrReadBeforeWrite is returned when a transient slot is read by a
	// pass before any earlier pass of the same frame wrote it.
	ErrReadBeforeWrite = errors.New("graph: transient slot read before write")

	// ErrForeignSlot is returned when a pass references a slot the
	// method never reserved.
	ErrForeignSlot = errors.New("graph: reference to slot not reserved by method")

	// ErrTooManyAxes guards the exhaustive coverage enumeration.
	ErrTooManyAxes = errors.New("graph: too many permutation axes")
)

const maxAxes = 16

// Builder assembles one method's graph. All declaration methods are
// chainable; errors stick to the builder and surface from Build, so a
// declaration block reads top to bottom without per-call checks.
type Builder struct {
	name   string
	alloc  *pool.Allocator
	lib    *shader.Library
	width  int
	height int

	axes      Flags
	passes    []Pass
	permanent []pool.SlotIndex
	transient []pool.SlotIndex

	err error
}

// NewBuilder starts a graph declaration for one method. The allocator
// must have an open BeginMethod block for the same method.
func NewBuilder(name string, alloc *pool.Allocator, lib *shader.Library, width, height int) *Builder {
	return &Builder{name: name, alloc: alloc, lib: lib, width: width, height: height}
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Axes declares the permutation bits reachable from the method's
// settings domain. Build verifies candidate coverage over every subset.
func (b *Builder) Axes(f Flags) *Builder {
	b.axes |= f
	return b
}

// Permanent reserves a double-buffered history slot for the method.
func (b *Builder) Permanent(name string, d pool.SlotDesc) pool.SlotIndex {
	idx, err := b.alloc.ReservePermanent(name, d)
	if err != nil {
		b.fail(fmt.Errorf("%s/%s: %w", b.name, name, err))
		return -1
	}
	b.permanent = append(b.permanent, idx)
	return idx
}

// Transient reserves a frame-scoped scratch slot for the method.
func (b *Builder) Transient(name string, d pool.SlotDesc) pool.SlotIndex {
	idx, err := b.alloc.ReserveTransient(name, d)
	if err != nil {
		b.fail(fmt.Errorf("%s/%s: %w", b.name, name, err))
		return -1
	}
	b.transient = append(b.transient, idx)
	return idx
}

// Pass opens the declaration of the next pass in execution order.
func (b *Builder) Pass(name string) *PassBuilder {
	b.passes = append(b.passes, Pass{Name: name, Downsample: 1})
	return &PassBuilder{b: b, p: &b.passes[len(b.passes)-1]}
}

// PassBuilder declares one pass. Obtained from Builder.Pass; finish
// with Done.
type PassBuilder struct {
	b *Builder
	p *Pass
}

// Downsample sets the pass resolution divisor (1 = full resolution).
func (pb *PassBuilder) Downsample(n int) *PassBuilder {
	if n < 1 {
		n = 1
	}
	pb.p.Downsample = n
	return pb
}

// When gates the pass on all given flags being set.
func (pb *PassBuilder) When(f Flags) *PassBuilder {
	pb.p.When |= f
	pb.b.axes |= f
	return pb
}

// Unless gates the pass on all given flags being clear.
func (pb *PassBuilder) Unless(f Flags) *PassBuilder {
	pb.p.Unless |= f
	pb.b.axes |= f
	return pb
}

// In declares the next unconditional input.
func (pb *PassBuilder) In(r Ref) *PassBuilder {
	pb.p.Inputs = append(pb.p.Inputs, Input{Set: r})
	return pb
}

// OptIn declares an input bound only when flag is set; otherwise its
// position is filled with the dummy texture.
func (pb *PassBuilder) OptIn(flag Flags, r Ref) *PassBuilder {
	pb.p.Inputs = append(pb.p.Inputs, Input{Flag: flag, Set: r, Clear: Ref{Kind: RefDummy}})
	pb.b.axes |= flag
	return pb
}

// SwitchIn declares an input that binds set when flag is set and clear
// otherwise, keeping the binding position stable across permutations.
func (pb *PassBuilder) SwitchIn(flag Flags, set, clear Ref) *PassBuilder {
	pb.p.Inputs = append(pb.p.Inputs, Input{Flag: flag, Set: set, Clear: clear})
	pb.b.axes |= flag
	return pb
}

// Out declares the next output.
func (pb *PassBuilder) Out(r Ref) *PassBuilder {
	pb.p.Outputs = append(pb.p.Outputs, r)
	return pb
}

// Candidate adds a shader variant covering the permutations where
// flags&mask == match at the given quality.
func (pb *PassBuilder) Candidate(match, mask Flags, q Quality, v shader.VariantID) *PassBuilder {
	pb.p.Candidates = append(pb.p.Candidates, Candidate{Match: match, Mask: mask, Quality: q, Variant: v})
	pb.b.axes |= mask
	return pb
}

// Always adds a single variant serving every permutation of the pass.
func (pb *PassBuilder) Always(v shader.VariantID) *PassBuilder {
	return pb.Candidate(0, 0, QualityAny, v)
}

// Done closes the pass declaration.
func (pb *PassBuilder) Done() *Builder {
	return pb.b
}

// Build validates the declared graph and returns it. Validation is
// exhaustive over the declared axes: binding arity per candidate,
// intra-pass aliasing, transient write-before-read ordering, and
// variant coverage for every reachable flag combination at both
// quality tiers.
func (b *Builder) Build() (*MethodGraph, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.axes.Count() > maxAxes {
		return nil, fmt.Errorf("%w: %s declares %d", ErrTooManyAxes, b.name, b.axes.Count())
	}

	for i := range b.passes {
		if err := b.validatePass(&b.passes[i]); err != nil {
			return nil, err
		}
	}
	if err := b.validateCombos(); err != nil {
		return nil, err
	}

	return &MethodGraph{
		Name:      b.name,
		Width:     b.width,
		Height:    b.height,
		Axes:      b.axes,
		Passes:    b.passes,
		Permanent: b.permanent,
		Transient: b.transient,
	}, nil
}

// validatePass checks the flag-independent pass invariants.
func (b *Builder) validatePass(p *Pass) error {
	if len(p.Candidates) == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNoCandidates, b.name, p.Name)
	}
	if len(p.Outputs) == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNoOutputs, b.name, p.Name)
	}

	for _, c := range p.Candidates {
		v, err := b.lib.Variant(c.Variant)
		if err != nil {
			return fmt.Errorf("%s/%s: %w", b.name, p.Name, err)
		}
		if v.NumInputs != len(p.Inputs) || v.NumOutputs != len(p.Outputs) {
			return fmt.Errorf("%w: %s/%s declares %d/%d, variant %s expects %d/%d",
				ErrArityMismatch, b.name, p.Name, len(p.Inputs), len(p.Outputs),
				v.Name, v.NumInputs, v.NumOutputs)
		}
	}

	for _, in := range p.Inputs {
		for _, r := range []Ref{in.Set, in.Clear} {
			if err := b.checkSlotOwned(p, r); err != nil {
				return err
			}
		}
	}
	for _, out := range p.Outputs {
		if err := b.checkSlotOwned(p, out); err != nil {
			return err
		}
		for _, in := range p.Inputs {
			for _, r := range []Ref{in.Set, in.Clear} {
				if sameResource(r, out) {
					return fmt.Errorf("%w: %s/%s on %s", ErrPassAliasing, b.name, p.Name, out)
				}
			}
		}
	}
	return nil
}

func (b *Builder) checkSlotOwned(p *Pass, r Ref) error {
	var owned []pool.SlotIndex
	switch r.Kind {
	case RefPermanent:
		owned = b.permanent
	case RefTransient:
		owned = b.transient
	default:
		return nil
	}
	for _, s := range owned {
		if s == r.Slot {
			return nil
		}
	}
	// Transient slots may be physically shared with other methods, but a
	// graph must only name the indices returned by its own reservations.
	return fmt.Errorf("%w: %s/%s references %s", ErrForeignSlot, b.name, p.Name, r)
}

// sameResource reports whether two refs resolve to the same physical
// texture. The current and previous halves of a permanent pair are
// distinct resources.
func sameResource(a, c Ref) bool {
	if a.Kind != c.Kind {
		return false
	}
	switch a.Kind {
	case RefExternalIn, RefExternalOut:
		return a.Resource == c.Resource
	case RefPermanent:
		return a.Slot == c.Slot && a.Previous == c.Previous
	case RefTransient:
		return a.Slot == c.Slot
	default:
		return false
	}
}

// validateCombos walks every subset of the declared axes and both
// quality tiers, checking variant coverage and transient ordering for
// the passes included under each combination.
func (b *Builder) validateCombos() error {
	var axisBits []Flags
	for bit := Flags(1); bit != 0; bit <<= 1 {
		if b.axes&bit != 0 {
			axisBits = append(axisBits, bit)
		}
	}

	written := make(map[pool.SlotIndex]bool)
	for combo := 0; combo < 1<<len(axisBits); combo++ {
		var f Flags
		for i, bit := range axisBits {
			if combo&(1<<i) != 0 {
				f |= bit
			}
		}

		clear(written)
		for i := range b.passes {
			p := &b.passes[i]
			if !p.Included(f) {
				continue
			}
			for _, q := range []Quality{QualityDefault, QualityPerformance} {
				if _, err := SelectVariant(p, f, q); err != nil {
					return fmt.Errorf("%s: %w", b.name, err)
				}
			}
			for _, in := range p.Inputs {
				r := in.Resolve(f)
				if r.Kind == RefTransient && !written[r.Slot] {
					return fmt.Errorf("%w: %s/%s reads %s under flags %#x",
						ErrReadBeforeWrite, b.name, p.Name, r, f)
				}
			}
			for _, out := range p.Outputs {
				if out.Kind == RefTransient {
					written[out.Slot] = true
				}
			}
		}
	}
	return nil
}
