// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import (
	"errors"
	"testing"
)

func TestReservePermanentCreatesPairs(t *testing.T) {
	a := NewAllocator()
	if err := a.BeginMethod("m", 1920, 1080); err != nil {
		t.Fatalf("BeginMethod() = %v", err)
	}
	s0, err := a.ReservePermanent("history", SlotDesc{Format: TextureFormatRGBA16Float})
	if err != nil {
		t.Fatalf("ReservePermanent() = %v", err)
	}
	s1, err := a.ReservePermanent("view_z", SlotDesc{Format: TextureFormatR32Float})
	if err != nil {
		t.Fatalf("ReservePermanent() = %v", err)
	}
	a.EndMethod()
	if err := a.Finalize(); err != nil {
		t.Fatalf("Finalize() = %v", err)
	}

	if s0 != 0 || s1 != 1 {
		t.Errorf("slot indices = %d, %d, want 0, 1", s0, s1)
	}
	tex := a.PermanentTextures()
	if len(tex) != 4 {
		t.Fatalf("PermanentTextures() returned %d textures, want 4", len(tex))
	}
	if tex[0].Name != "m/history/0" || tex[1].Name != "m/history/1" {
		t.Errorf("pair names = %q, %q", tex[0].Name, tex[1].Name)
	}
	if tex[2].Format != TextureFormatR32Float {
		t.Errorf("tex[2].Format = %v, want r32float", tex[2].Format)
	}
	for _, tx := range tex {
		if tx.Width != 1920 || tx.Height != 1080 {
			t.Errorf("%s sized %dx%d, want 1920x1080", tx.Name, tx.Width, tx.Height)
		}
	}
}

func TestResolvePermanentParityRoles(t *testing.T) {
	a := NewAllocator()
	if err := a.BeginMethod("m", 64, 64); err != nil {
		t.Fatalf("BeginMethod() = %v", err)
	}
	s, err := a.ReservePermanent("h", SlotDesc{Format: TextureFormatR16Float})
	if err != nil {
		t.Fatalf("ReservePermanent() = %v", err)
	}
	a.EndMethod()
	if err := a.Finalize(); err != nil {
		t.Fatalf("Finalize() = %v", err)
	}

	resolve := func(parity, previous bool) int {
		idx, err := a.ResolvePermanent(s, parity, previous)
		if err != nil {
			t.Fatalf("ResolvePermanent(%v, %v) = %v", parity, previous, err)
		}
		return idx
	}

	// Within one frame, current and previous must differ.
	for _, parity := range []bool{false, true} {
		if resolve(parity, false) == resolve(parity, true) {
			t.Errorf("parity %v: current and previous resolve to the same texture", parity)
		}
	}
	// This frame's current becomes the next frame's previous.
	if resolve(false, false) != resolve(true, true) {
		t.Error("current texture does not carry over as next frame's previous")
	}
	if resolve(true, false) != resolve(false, true) {
		t.Error("current texture does not carry over as next frame's previous")
	}
}

func TestReserveTransientReusesAcrossMethods(t *testing.T) {
	a := NewAllocator()

	if err := a.BeginMethod("small", 640, 480); err != nil {
		t.Fatalf("BeginMethod() = %v", err)
	}
	t0, _ := a.ReserveTransient("tmp", SlotDesc{Format: TextureFormatR16Float})
	a.EndMethod()

	if err := a.BeginMethod("big", 1920, 1080); err != nil {
		t.Fatalf("BeginMethod() = %v", err)
	}
	t1, _ := a.ReserveTransient("tmp", SlotDesc{Format: TextureFormatR16Float})
	t2, _ := a.ReserveTransient("other_format", SlotDesc{Format: TextureFormatRG16Float})
	a.EndMethod()

	if err := a.Finalize(); err != nil {
		t.Fatalf("Finalize() = %v", err)
	}

	if t0 != t1 {
		t.Errorf("matching transient slots not shared: %d vs %d", t0, t1)
	}
	if t2 == t0 {
		t.Error("transient slot shared across formats")
	}

	tex := a.TransientTextures()
	if len(tex) != 2 {
		t.Fatalf("TransientTextures() returned %d, want 2", len(tex))
	}
	// Shared texture grows to the largest request.
	if tex[t0].Width != 1920 || tex[t0].Height != 1080 {
		t.Errorf("shared transient sized %dx%d, want 1920x1080", tex[t0].Width, tex[t0].Height)
	}
}

func TestReserveTransientNotSharedWithinMethod(t *testing.T) {
	a := NewAllocator()
	if err := a.BeginMethod("m", 128, 128); err != nil {
		t.Fatalf("BeginMethod() = %v", err)
	}
	t0, _ := a.ReserveTransient("a", SlotDesc{Format: TextureFormatR16Float})
	t1, _ := a.ReserveTransient("b", SlotDesc{Format: TextureFormatR16Float})
	if t0 == t1 {
		t.Error("two live reservations of one method mapped onto one texture")
	}
}

func TestSlotDownsampleRoundsUp(t *testing.T) {
	a := NewAllocator()
	if err := a.BeginMethod("m", 1920, 1080); err != nil {
		t.Fatalf("BeginMethod() = %v", err)
	}
	s, _ := a.ReserveTransient("tiles", SlotDesc{Format: TextureFormatR8Unorm, Downsample: 16})
	a.EndMethod()
	if err := a.Finalize(); err != nil {
		t.Fatalf("Finalize() = %v", err)
	}
	tex := a.TransientTextures()[s]
	if tex.Width != 120 || tex.Height != 68 {
		t.Errorf("tile texture sized %dx%d, want 120x68", tex.Width, tex.Height)
	}
}

func TestDegenerateResolutionStaysPositive(t *testing.T) {
	a := NewAllocator()
	if err := a.BeginMethod("m", 1, 1); err != nil {
		t.Fatalf("BeginMethod() = %v", err)
	}
	s, _ := a.ReserveTransient("tiles", SlotDesc{Format: TextureFormatR8Unorm, Downsample: 16})
	a.EndMethod()
	if err := a.Finalize(); err != nil {
		t.Fatalf("Finalize() = %v", err)
	}
	tex := a.TransientTextures()[s]
	if tex.Width < 1 || tex.Height < 1 {
		t.Errorf("tile texture sized %dx%d, want at least 1x1", tex.Width, tex.Height)
	}
}

func TestAllocatorErrors(t *testing.T) {
	a := NewAllocator()

	if _, err := a.ReservePermanent("h", SlotDesc{Format: TextureFormatR8Unorm}); !errors.Is(err, ErrNoMethod) {
		t.Errorf("ReservePermanent outside method = %v, want ErrNoMethod", err)
	}
	if err := a.BeginMethod("m", 0, 100); !errors.Is(err, ErrInvalidResolution) {
		t.Errorf("BeginMethod(0, 100) = %v, want ErrInvalidResolution", err)
	}

	if err := a.BeginMethod("m", 16, 16); err != nil {
		t.Fatalf("BeginMethod() = %v", err)
	}
	s, _ := a.ReservePermanent("h", SlotDesc{Format: TextureFormatR8Unorm})

	if _, err := a.ResolvePermanent(s, false, false); !errors.Is(err, ErrNotFinalized) {
		t.Errorf("ResolvePermanent before Finalize = %v, want ErrNotFinalized", err)
	}

	a.EndMethod()
	if err := a.Finalize(); err != nil {
		t.Fatalf("Finalize() = %v", err)
	}
	if err := a.Finalize(); !errors.Is(err, ErrFinalized) {
		t.Errorf("second Finalize() = %v, want ErrFinalized", err)
	}
	if _, err := a.ReserveTransient("t", SlotDesc{Format: TextureFormatR8Unorm}); !errors.Is(err, ErrFinalized) {
		t.Errorf("ReserveTransient after Finalize = %v, want ErrFinalized", err)
	}
	if _, err := a.ResolvePermanent(SlotIndex(99), false, false); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("ResolvePermanent(99) = %v, want ErrInvalidSlot", err)
	}
	if _, err := a.ResolveTransient(SlotIndex(-1)); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("ResolveTransient(-1) = %v, want ErrInvalidSlot", err)
	}
}
