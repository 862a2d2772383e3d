// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gogpu/denoise/cache"
)

// Compile compiles WGSL source to SPIR-V words.
func Compile(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("shader: compile failed: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// Compiler compiles library variants to SPIR-V, memoizing results by
// variant name. Variants of one kernel family share a source, so the
// cache also collapses their compilations into one.
//
// Compiler is safe for concurrent use.
type Compiler struct {
	lib   *Library
	cache *cache.Cache[string, []uint32]
}

// NewCompiler creates a compiler over the given library.
func NewCompiler(lib *Library) *Compiler {
	return &Compiler{
		lib:   lib,
		cache: cache.New[string, []uint32](0, cache.StringHasher),
	}
}

// Compile returns the SPIR-V words for a variant. The returned slice is
// shared with the cache; callers must treat it as read-only.
func (c *Compiler) Compile(id VariantID) ([]uint32, error) {
	v, err := c.lib.Variant(id)
	if err != nil {
		return nil, err
	}
	words, err := c.cache.GetOrCreate(v.WGSL, func() ([]uint32, error) {
		return Compile(v.WGSL)
	})
	if err != nil {
		return nil, fmt.Errorf("shader: variant %s: %w", v.Name, err)
	}
	return words, nil
}

// CacheStats reports compile cache effectiveness.
func (c *Compiler) CacheStats() cache.Stats {
	return c.cache.Stats()
}
