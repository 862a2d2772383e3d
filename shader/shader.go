// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"embed"
	"errors"
	"fmt"
)

//go:embed shaders/*.wgsl
var shaderFS embed.FS

// Registry errors.
var (
	// ErrDuplicateVariant is returned when a variant name is registered twice.
	ErrDuplicateVariant = errors.New("shader: variant already registered")

	// ErrUnknownVariant is returned for an out-of-range variant ID.
	ErrUnknownVariant = errors.New("shader: unknown variant")

	// ErrInvalidVariant is returned when a variant declaration is malformed.
	ErrInvalidVariant = errors.New("shader: invalid variant")
)

// VariantID identifies one registered shader variant within a Library.
type VariantID int

// Variant is one compute kernel permutation.
type Variant struct {
	// Name uniquely identifies the variant, e.g.
	// "reblur_occlusion/temporal_accumulation_reset".
	Name string

	// WGSL is the kernel source. Several variants of one kernel family
	// may share a source; permutation behavior is driven by constants.
	WGSL string

	// TileWidth and TileHeight are the workgroup footprint in pixels,
	// used to derive dispatch grid dimensions.
	TileWidth  int
	TileHeight int

	// NumInputs and NumOutputs fix the bind group arity. A pass
	// dispatching this variant must bind exactly this many input and
	// output textures, in declaration order.
	NumInputs  int
	NumOutputs int
}

func (v Variant) validate() error {
	if v.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidVariant)
	}
	if v.WGSL == "" {
		return fmt.Errorf("%w: %s has no source", ErrInvalidVariant, v.Name)
	}
	if v.TileWidth < 1 || v.TileHeight < 1 {
		return fmt.Errorf("%w: %s tile %dx%d", ErrInvalidVariant, v.Name, v.TileWidth, v.TileHeight)
	}
	if v.NumInputs < 0 || v.NumOutputs < 1 {
		return fmt.Errorf("%w: %s arity %d/%d", ErrInvalidVariant, v.Name, v.NumInputs, v.NumOutputs)
	}
	return nil
}

// Library is an ordered registry of shader variants. A Library is built
// once (typically the package default) and read-only afterwards; reads
// are safe for concurrent use.
type Library struct {
	variants []Variant
	byName   map[string]VariantID
}

// NewLibrary creates an empty variant registry.
func NewLibrary() *Library {
	return &Library{byName: make(map[string]VariantID)}
}

// Register adds a variant and returns its ID. IDs are dense and
// assigned in registration order.
func (l *Library) Register(v Variant) (VariantID, error) {
	if err := v.validate(); err != nil {
		return 0, err
	}
	if _, ok := l.byName[v.Name]; ok {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateVariant, v.Name)
	}
	id := VariantID(len(l.variants))
	l.variants = append(l.variants, v)
	l.byName[v.Name] = id
	return id, nil
}

// mustRegister is the init-time form of Register for built-in variants.
func (l *Library) mustRegister(v Variant) VariantID {
	id, err := l.Register(v)
	if err != nil {
		panic(err)
	}
	return id
}

// Variant returns the variant registered under id.
func (l *Library) Variant(id VariantID) (Variant, error) {
	if id < 0 || int(id) >= len(l.variants) {
		return Variant{}, fmt.Errorf("%w: id %d", ErrUnknownVariant, id)
	}
	return l.variants[id], nil
}

// Lookup returns the ID registered under name.
func (l *Library) Lookup(name string) (VariantID, bool) {
	id, ok := l.byName[name]
	return id, ok
}

// Len returns the number of registered variants.
func (l *Library) Len() int { return len(l.variants) }

// source loads an embedded WGSL file, panicking on a missing file: the
// built-in registry is assembled at package init from embedded data, so
// a failure is a packaging bug.
func source(file string) string {
	b, err := shaderFS.ReadFile("shaders/" + file)
	if err != nil {
		panic(fmt.Sprintf("shader: missing embedded source %s: %v", file, err))
	}
	return string(b)
}
