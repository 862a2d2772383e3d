// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import (
	"errors"
	"fmt"
)

// Allocator errors.
var (
	// ErrFinalized is returned when a reservation is attempted after Finalize.
	ErrFinalized = errors.New("pool: allocator is already finalized")

	// ErrNotFinalized is returned when a slot is resolved before Finalize.
	ErrNotFinalized = errors.New("pool: allocator is not finalized")

	// ErrNoMethod is returned when a reservation is made outside a
	// BeginMethod/EndMethod block.
	ErrNoMethod = errors.New("pool: no method registration in progress")

	// ErrInvalidSlot is returned when a slot index is out of range.
	ErrInvalidSlot = errors.New("pool: slot index out of range")

	// ErrInvalidResolution is returned for non-positive method dimensions.
	ErrInvalidResolution = errors.New("pool: resolution must be positive")

	// ErrSlotMismatch is returned by Check when a finalized physical
	// texture does not satisfy one of the reservations mapped onto it.
	ErrSlotMismatch = errors.New("pool: physical texture does not satisfy reservation")
)

// SlotIndex identifies a reserved slot within its lifetime class.
// Permanent and transient slots are numbered independently.
type SlotIndex int

// SlotDesc describes an abstract texture slot requested by a pass graph.
type SlotDesc struct {
	// Format is the texel format of the slot.
	Format TextureFormat

	// Downsample divides the owning method's resolution. 1 (or 0) means
	// full resolution; 16 is typical for per-tile classification data.
	Downsample int

	// ArraySize is the number of array layers. 0 means 1.
	ArraySize int
}

func (d SlotDesc) normalized() SlotDesc {
	if d.Downsample < 1 {
		d.Downsample = 1
	}
	if d.ArraySize < 1 {
		d.ArraySize = 1
	}
	return d
}

// Texture is the resolved description of one physical pool texture.
// The host creates one texture per entry before the first frame.
type Texture struct {
	Name      string
	Format    TextureFormat
	Width     int
	Height    int
	ArraySize int
}

// reservation records one slot request made by a method graph.
type reservation struct {
	method    string
	name      string
	desc      SlotDesc
	width     int
	height    int
	physical  int
	permanent bool
}

// physicalSlot is one pool texture, sized to the maximum of all
// reservations mapped onto it.
type physicalSlot struct {
	name      string
	format    TextureFormat
	arraySize int
	width     int
	height    int
	inUse     bool // transient only: taken by the method being registered
}

// Allocator maps abstract per-pass slot requests onto the permanent and
// transient pools. It is not safe for concurrent use.
type Allocator struct {
	finalized bool

	method  string
	methodW int
	methodH int

	permanent    []physicalSlot
	transient    []physicalSlot
	reservations []reservation
}

// NewAllocator creates an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// BeginMethod starts slot registration for one method. Transient slots
// reserved by earlier methods become reusable.
func (a *Allocator) BeginMethod(name string, width, height int) error {
	if a.finalized {
		return ErrFinalized
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, width, height)
	}
	a.method = name
	a.methodW = width
	a.methodH = height
	for i := range a.transient {
		a.transient[i].inUse = false
	}
	return nil
}

// EndMethod finishes the current method's registration.
func (a *Allocator) EndMethod() {
	a.method = ""
	for i := range a.transient {
		a.transient[i].inUse = false
	}
}

func (a *Allocator) slotDims(d SlotDesc) (int, int) {
	w := (a.methodW + d.Downsample - 1) / d.Downsample
	h := (a.methodH + d.Downsample - 1) / d.Downsample
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// ReservePermanent reserves a double-buffered permanent slot. Permanent
// slots are never shared between methods: each holds one method's
// frame-to-frame history.
func (a *Allocator) ReservePermanent(name string, d SlotDesc) (SlotIndex, error) {
	if a.finalized {
		return 0, ErrFinalized
	}
	if a.method == "" {
		return 0, ErrNoMethod
	}
	d = d.normalized()
	w, h := a.slotDims(d)
	idx := len(a.permanent)
	a.permanent = append(a.permanent, physicalSlot{
		name:      a.method + "/" + name,
		format:    d.Format,
		arraySize: d.ArraySize,
		width:     w,
		height:    h,
	})
	a.reservations = append(a.reservations, reservation{
		method: a.method, name: name, desc: d, width: w, height: h,
		physical: idx, permanent: true,
	})
	return SlotIndex(idx), nil
}

// ReserveTransient reserves a frame-scoped scratch slot. A physical
// texture already created for an earlier method is reused when its
// format and array size match; its size grows to the maximum requested.
func (a *Allocator) ReserveTransient(name string, d SlotDesc) (SlotIndex, error) {
	if a.finalized {
		return 0, ErrFinalized
	}
	if a.method == "" {
		return 0, ErrNoMethod
	}
	d = d.normalized()
	w, h := a.slotDims(d)

	phys := -1
	for i := range a.transient {
		s := &a.transient[i]
		if s.inUse || s.format != d.Format || s.arraySize != d.ArraySize {
			continue
		}
		phys = i
		break
	}
	if phys < 0 {
		phys = len(a.transient)
		a.transient = append(a.transient, physicalSlot{
			name:      name,
			format:    d.Format,
			arraySize: d.ArraySize,
		})
	}
	s := &a.transient[phys]
	s.inUse = true
	if w > s.width {
		s.width = w
	}
	if h > s.height {
		s.height = h
	}
	a.reservations = append(a.reservations, reservation{
		method: a.method, name: name, desc: d, width: w, height: h, physical: phys,
	})
	return SlotIndex(phys), nil
}

// Finalize locks the pools and verifies that every physical texture
// satisfies all reservations mapped onto it.
func (a *Allocator) Finalize() error {
	if a.finalized {
		return ErrFinalized
	}
	a.method = ""
	for i := range a.transient {
		a.transient[i].inUse = false
	}
	a.finalized = true
	return a.check()
}

// check asserts the sizing invariant: a correctly computed pool always
// passes, so a failure here is a construction bug, never a runtime state.
func (a *Allocator) check() error {
	for _, r := range a.reservations {
		var s physicalSlot
		if r.permanent {
			s = a.permanent[r.physical]
		} else {
			s = a.transient[r.physical]
		}
		if s.format != r.desc.Format || s.arraySize != r.desc.ArraySize ||
			s.width < r.width || s.height < r.height {
			return fmt.Errorf("%w: %s/%s needs %dx%d %v, pool has %dx%d %v",
				ErrSlotMismatch, r.method, r.name, r.width, r.height, r.desc.Format,
				s.width, s.height, s.format)
		}
	}
	return nil
}

// Finalized reports whether Finalize has been called.
func (a *Allocator) Finalized() bool { return a.finalized }

// PermanentSlots returns the number of permanent slots. Each slot is
// backed by two physical textures (the current/previous pair).
func (a *Allocator) PermanentSlots() int { return len(a.permanent) }

// TransientSlots returns the number of physical transient textures.
func (a *Allocator) TransientSlots() int { return len(a.transient) }

// PermanentTextures lists the physical permanent textures in resolve
// order: two per slot, the pair members suffixed "/0" and "/1".
func (a *Allocator) PermanentTextures() []Texture {
	out := make([]Texture, 0, len(a.permanent)*2)
	for _, s := range a.permanent {
		for i := range 2 {
			out = append(out, Texture{
				Name:      fmt.Sprintf("%s/%d", s.name, i),
				Format:    s.format,
				Width:     s.width,
				Height:    s.height,
				ArraySize: s.arraySize,
			})
		}
	}
	return out
}

// TransientTextures lists the physical transient textures in resolve order.
func (a *Allocator) TransientTextures() []Texture {
	out := make([]Texture, 0, len(a.transient))
	for _, s := range a.transient {
		out = append(out, Texture{
			Name:      s.name,
			Format:    s.format,
			Width:     s.width,
			Height:    s.height,
			ArraySize: s.arraySize,
		})
	}
	return out
}

// ResolvePermanent returns the physical index (into the host's permanent
// texture list, as ordered by PermanentTextures) of one half of a
// permanent pair. parity is the frame parity bit; previous selects the
// texture playing the "previous frame" role instead of "current".
func (a *Allocator) ResolvePermanent(s SlotIndex, parity, previous bool) (int, error) {
	if !a.finalized {
		return 0, ErrNotFinalized
	}
	if s < 0 || int(s) >= len(a.permanent) {
		return 0, fmt.Errorf("%w: permanent %d", ErrInvalidSlot, s)
	}
	half := 0
	if parity != previous {
		half = 1
	}
	return int(s)*2 + half, nil
}

// ResolveTransient returns the physical index (into the host's transient
// texture list) of a transient slot. Transient content carries no
// cross-frame identity, so no parity is involved.
func (a *Allocator) ResolveTransient(s SlotIndex) (int, error) {
	if !a.finalized {
		return 0, ErrNotFinalized
	}
	if s < 0 || int(s) >= len(a.transient) {
		return 0, fmt.Errorf("%w: transient %d", ErrInvalidSlot, s)
	}
	return int(s), nil
}
