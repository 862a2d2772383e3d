// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import (
	"github.com/gogpu/denoise/pool"
	"github.com/gogpu/denoise/shader"
)

// Candidate binds one shader variant to the permutation subset it
// serves. A candidate matches dynamic flags f when f&Mask == Match and
// its quality is QualityAny or equals the requested quality.
type Candidate struct {
	Match   Flags
	Mask    Flags
	Quality Quality
	Variant shader.VariantID
}

// specificity ranks matching candidates: caring about more flag bits
// wins, and an exact quality beats QualityAny at equal bit count.
func (c Candidate) specificity() int {
	s := c.Mask.Count() * 2
	if c.Quality != QualityAny {
		s++
	}
	return s
}

// Pass is one compute dispatch step of a method graph.
type Pass struct {
	// Name identifies the pass in logs and dispatch descriptions.
	Name string

	// Downsample divides the method resolution for this pass's grid,
	// e.g. 16 for per-tile passes. 1 means full resolution.
	Downsample int

	// When and Unless gate the pass per frame: it is emitted only if
	// all When bits are set and no Unless bit is set.
	When   Flags
	Unless Flags

	// Inputs and Outputs are positional and fixed at declaration; the
	// selected variant must declare exactly these arities.
	Inputs  []Input
	Outputs []Ref

	// Candidates are the shader variants covering this pass's
	// permutations.
	Candidates []Candidate
}

// Included reports whether the pass is emitted under the given flags.
func (p *Pass) Included(f Flags) bool {
	return f.Has(p.When) && f&p.Unless == 0
}

// MethodGraph is the immutable result of building one method: its
// passes in execution order plus the pool slots it reserved.
type MethodGraph struct {
	// Name is the owning method identifier.
	Name string

	// Width and Height are the method's configured resolution.
	Width  int
	Height int

	// Axes is the union of permutation bits reachable from the
	// method's settings domain. Coverage was verified over all subsets
	// of Axes at build time.
	Axes Flags

	// Passes in declared (execution) order.
	Passes []Pass

	// Permanent and Transient list the slots this method reserved, in
	// reservation order.
	Permanent []pool.SlotIndex
	Transient []pool.SlotIndex
}

// Variants returns every variant ID referenced by the graph, in first
// use order, without duplicates.
func (g *MethodGraph) Variants() []shader.VariantID {
	seen := make(map[shader.VariantID]bool)
	var out []shader.VariantID
	for i := range g.Passes {
		for _, c := range g.Passes[i].Candidates {
			if !seen[c.Variant] {
				seen[c.Variant] = true
				out = append(out, c.Variant)
			}
		}
	}
	return out
}

// Externals returns every external resource kind the graph may touch,
// split into inputs and outputs, each in first-use order. Optional
// inputs are included: whether they are bound in a given frame depends
// on that frame's flags.
func (g *MethodGraph) Externals() (inputs, outputs []Resource) {
	seenIn := make(map[Resource]bool)
	seenOut := make(map[Resource]bool)
	add := func(r Ref) {
		switch r.Kind {
		case RefExternalIn:
			if !seenIn[r.Resource] {
				seenIn[r.Resource] = true
				inputs = append(inputs, r.Resource)
			}
		case RefExternalOut:
			if !seenOut[r.Resource] {
				seenOut[r.Resource] = true
				outputs = append(outputs, r.Resource)
			}
		}
	}
	for i := range g.Passes {
		for _, in := range g.Passes[i].Inputs {
			add(in.Set)
			add(in.Clear)
		}
		for _, out := range g.Passes[i].Outputs {
			add(out)
		}
	}
	return inputs, outputs
}
