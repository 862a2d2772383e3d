// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graph

import (
	"errors"
	"testing"

	"github.com/gogpu/denoise/pool"
	"github.com/gogpu/denoise/shader"
)

const (
	fReset Flags = 1 << iota
	fWide
)

func newTestLib(t *testing.T) *shader.Library {
	t.Helper()
	return shader.NewLibrary()
}

func register(t *testing.T, lib *shader.Library, name string, ins, outs int) shader.VariantID {
	t.Helper()
	id, err := lib.Register(shader.Variant{
		Name: name, WGSL: "fn main() {}",
		TileWidth: 8, TileHeight: 8,
		NumInputs: ins, NumOutputs: outs,
	})
	if err != nil {
		t.Fatalf("Register(%s) = %v", name, err)
	}
	return id
}

func newTestAllocator(t *testing.T) *pool.Allocator {
	t.Helper()
	a := pool.NewAllocator()
	if err := a.BeginMethod("m", 128, 128); err != nil {
		t.Fatalf("BeginMethod() = %v", err)
	}
	return a
}

func TestBuilderBuildsValidGraph(t *testing.T) {
	lib := newTestLib(t)
	vProduce := register(t, lib, "k/produce", 1, 1)
	vConsume := register(t, lib, "k/consume", 2, 1)

	a := newTestAllocator(t)
	b := NewBuilder("m", a, lib, 128, 128)
	tmp := b.Transient("tmp", pool.SlotDesc{Format: pool.TextureFormatR16Float})
	perm := b.Permanent("history", pool.SlotDesc{Format: pool.TextureFormatR16Float})

	b.Pass("produce").
		In(In(0)).
		Out(Trans(tmp)).
		Always(vProduce).
		Done()
	b.Pass("consume").
		In(Trans(tmp)).
		In(PermPrev(perm)).
		Out(Perm(perm)).
		Always(vConsume).
		Done()

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	if len(g.Passes) != 2 {
		t.Fatalf("got %d passes, want 2", len(g.Passes))
	}
	if got := g.Variants(); len(got) != 2 || got[0] != vProduce || got[1] != vConsume {
		t.Errorf("Variants() = %v, want [%d %d] in first-use order", got, vProduce, vConsume)
	}
	ins, outs := g.Externals()
	if len(ins) != 1 || ins[0] != 0 {
		t.Errorf("external inputs = %v, want [0]", ins)
	}
	if len(outs) != 0 {
		t.Errorf("external outputs = %v, want none", outs)
	}
}

func TestBuilderArityMismatch(t *testing.T) {
	lib := newTestLib(t)
	v := register(t, lib, "k/one", 1, 1)

	a := newTestAllocator(t)
	b := NewBuilder("m", a, lib, 128, 128)
	tmp := b.Transient("tmp", pool.SlotDesc{Format: pool.TextureFormatR16Float})

	b.Pass("p").
		In(In(0)).
		In(In(1)). // variant expects one input
		Out(Trans(tmp)).
		Always(v).
		Done()

	if _, err := b.Build(); !errors.Is(err, ErrArityMismatch) {
		t.Errorf("Build() = %v, want ErrArityMismatch", err)
	}
}

func TestBuilderReadBeforeWrite(t *testing.T) {
	lib := newTestLib(t)
	v := register(t, lib, "k/one", 1, 1)

	a := newTestAllocator(t)
	b := NewBuilder("m", a, lib, 128, 128)
	tmp := b.Transient("tmp", pool.SlotDesc{Format: pool.TextureFormatR16Float})

	b.Pass("consume").In(Trans(tmp)).Out(Out(0)).Always(v).Done()
	b.Pass("produce").In(In(0)).Out(Trans(tmp)).Always(v).Done()

	if _, err := b.Build(); !errors.Is(err, ErrReadBeforeWrite) {
		t.Errorf("Build() = %v, want ErrReadBeforeWrite", err)
	}
}

func TestBuilderGatedWriterLeavesReaderUnfed(t *testing.T) {
	lib := newTestLib(t)
	v := register(t, lib, "k/one", 1, 1)

	a := newTestAllocator(t)
	b := NewBuilder("m", a, lib, 128, 128)
	tmp := b.Transient("tmp", pool.SlotDesc{Format: pool.TextureFormatR16Float})

	// The writer is skipped when fReset is clear, but the reader still
	// binds the slot: the combination walk must reject this.
	b.Pass("produce").When(fReset).In(In(0)).Out(Trans(tmp)).Always(v).Done()
	b.Pass("consume").In(Trans(tmp)).Out(Out(0)).Always(v).Done()

	if _, err := b.Build(); !errors.Is(err, ErrReadBeforeWrite) {
		t.Errorf("Build() = %v, want ErrReadBeforeWrite", err)
	}
}

func TestBuilderSwitchInCoversGatedWriter(t *testing.T) {
	lib := newTestLib(t)
	v := register(t, lib, "k/one", 1, 1)

	a := newTestAllocator(t)
	b := NewBuilder("m", a, lib, 128, 128)
	tmp := b.Transient("tmp", pool.SlotDesc{Format: pool.TextureFormatR16Float})

	// Same shape as above, but the reader switches to the external
	// input when the writer is skipped.
	b.Pass("produce").When(fReset).In(In(0)).Out(Trans(tmp)).Always(v).Done()
	b.Pass("consume").SwitchIn(fReset, Trans(tmp), In(0)).Out(Out(0)).Always(v).Done()

	if _, err := b.Build(); err != nil {
		t.Errorf("Build() = %v, want success", err)
	}
}

func TestBuilderUncoveredPermutation(t *testing.T) {
	lib := newTestLib(t)
	v := register(t, lib, "k/one", 1, 1)

	a := newTestAllocator(t)
	b := NewBuilder("m", a, lib, 128, 128)
	tmp := b.Transient("tmp", pool.SlotDesc{Format: pool.TextureFormatR16Float})

	// Only the fReset half of the axis is covered.
	b.Pass("p").
		In(In(0)).
		Out(Trans(tmp)).
		Candidate(fReset, fReset, QualityAny, v).
		Done()

	if _, err := b.Build(); !errors.Is(err, ErrUncoveredPermutation) {
		t.Errorf("Build() = %v, want ErrUncoveredPermutation", err)
	}
}

func TestBuilderAmbiguousPermutation(t *testing.T) {
	lib := newTestLib(t)
	v1 := register(t, lib, "k/one", 1, 1)
	v2 := register(t, lib, "k/two", 1, 1)

	a := newTestAllocator(t)
	b := NewBuilder("m", a, lib, 128, 128)
	tmp := b.Transient("tmp", pool.SlotDesc{Format: pool.TextureFormatR16Float})

	// Equal specificity, distinct variants, overlapping at fReset|fWide.
	b.Pass("p").
		In(In(0)).
		Out(Trans(tmp)).
		Always(v1).
		Candidate(fReset, fReset, QualityAny, v1).
		Candidate(fWide, fWide, QualityAny, v2).
		Done()

	if _, err := b.Build(); !errors.Is(err, ErrAmbiguousPermutation) {
		t.Errorf("Build() = %v, want ErrAmbiguousPermutation", err)
	}
}

func TestBuilderIntraPassAliasing(t *testing.T) {
	lib := newTestLib(t)
	v := register(t, lib, "k/one", 1, 1)

	a := newTestAllocator(t)
	b := NewBuilder("m", a, lib, 128, 128)
	tmp := b.Transient("tmp", pool.SlotDesc{Format: pool.TextureFormatR16Float})

	b.Pass("p").In(Trans(tmp)).Out(Trans(tmp)).Always(v).Done()

	if _, err := b.Build(); !errors.Is(err, ErrPassAliasing) {
		t.Errorf("Build() = %v, want ErrPassAliasing", err)
	}
}

func TestBuilderPermanentPairRolesDoNotAlias(t *testing.T) {
	lib := newTestLib(t)
	v := register(t, lib, "k/one", 1, 1)

	a := newTestAllocator(t)
	b := NewBuilder("m", a, lib, 128, 128)
	p := b.Permanent("history", pool.SlotDesc{Format: pool.TextureFormatR16Float})

	// Reading the previous half while writing the current one is the
	// normal temporal feedback pattern.
	b.Pass("p").In(PermPrev(p)).Out(Perm(p)).Always(v).Done()

	if _, err := b.Build(); err != nil {
		t.Errorf("Build() = %v, want success", err)
	}
}

func TestBuilderForeignSlot(t *testing.T) {
	lib := newTestLib(t)
	v := register(t, lib, "k/one", 1, 1)

	a := newTestAllocator(t)
	b := NewBuilder("m", a, lib, 128, 128)

	b.Pass("p").In(In(0)).Out(Trans(pool.SlotIndex(7))).Always(v).Done()

	if _, err := b.Build(); !errors.Is(err, ErrForeignSlot) {
		t.Errorf("Build() = %v, want ErrForeignSlot", err)
	}
}

func TestBuilderDeclarationErrors(t *testing.T) {
	lib := newTestLib(t)
	v := register(t, lib, "k/one", 1, 1)

	a := newTestAllocator(t)
	b := NewBuilder("m", a, lib, 128, 128)
	b.Pass("no_candidates").In(In(0)).Out(Out(0)).Done()
	if _, err := b.Build(); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("Build() = %v, want ErrNoCandidates", err)
	}

	a2 := newTestAllocator(t)
	b2 := NewBuilder("m", a2, lib, 128, 128)
	b2.Pass("no_outputs").In(In(0)).Always(v).Done()
	if _, err := b2.Build(); !errors.Is(err, ErrNoOutputs) {
		t.Errorf("Build() = %v, want ErrNoOutputs", err)
	}
}
