// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package denoise

import (
	"fmt"

	"github.com/gogpu/denoise/graph"
	"github.com/gogpu/denoise/pool"
	"github.com/gogpu/denoise/shader"
)

// Capabilities carries construction-time device facts. Hosts fill it by
// hand or from a probe such as backend/wgpu.
type Capabilities struct {
	// MaxTextureDimension rejects method resolutions the device cannot
	// allocate. Zero means unlimited.
	MaxTextureDimension int
}

// MethodDesc requests one method at a fixed resolution.
type MethodDesc struct {
	Method Method
	Width  int
	Height int
}

// InstanceDesc configures NewInstance.
type InstanceDesc struct {
	// Methods to compile into this instance. Each method may appear once.
	Methods []MethodDesc

	// Library overrides the built-in shader registry. Nil selects
	// shader.Default().
	Library *shader.Library

	// Capabilities of the host device; the zero value accepts anything.
	Capabilities Capabilities
}

type instanceState uint8

const (
	stateIdle instanceState = iota
	stateGenerating
	stateDestroyed
)

// Instance is a compiled set of method pipelines sharing one resource
// pool. Create with NewInstance; an Instance is single-threaded.
type Instance struct {
	alloc    *pool.Allocator
	lib      *shader.Library
	methods  []*methodState
	byMethod map[Method]*methodState

	desc       Description
	pipelineOf map[shader.VariantID]int

	state  instanceState
	parity bool

	// dispatches and constArena are reused frame to frame. constArena is
	// sized at construction so per-dispatch constants slices never move.
	dispatches []DispatchDesc
	constArena []byte
}

// NewInstance compiles the requested methods: builds and validates every
// method graph, finalizes the shared pool, and compiles every referenced
// shader variant. Any failure returns an error and no instance.
func NewInstance(desc InstanceDesc) (*Instance, error) {
	if len(desc.Methods) == 0 {
		return nil, ErrNoMethods
	}
	lib := desc.Library
	if lib == nil {
		lib = shader.Default()
	}

	i := &Instance{
		alloc:      pool.NewAllocator(),
		lib:        lib,
		byMethod:   make(map[Method]*methodState, len(desc.Methods)),
		pipelineOf: make(map[shader.VariantID]int),
	}

	for _, md := range desc.Methods {
		if md.Method >= methodCount {
			return nil, fmt.Errorf("%w: %d", ErrUnsupportedMethod, md.Method)
		}
		if md.Width < 1 || md.Height < 1 {
			return nil, fmt.Errorf("%w: %s %dx%d", ErrInvalidResolution, md.Method, md.Width, md.Height)
		}
		if c := desc.Capabilities.MaxTextureDimension; c > 0 && (md.Width > c || md.Height > c) {
			return nil, fmt.Errorf("%w: %s %dx%d exceeds device maximum %d",
				ErrInvalidResolution, md.Method, md.Width, md.Height, c)
		}
		if _, dup := i.byMethod[md.Method]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMethod, md.Method)
		}

		ms := &methodState{
			desc:   md,
			reblur: DefaultReblurSettings(),
			sigma:  DefaultSigmaSettings(),
			relax:  DefaultRelaxSettings(),
		}
		if err := i.alloc.BeginMethod(md.Method.String(), md.Width, md.Height); err != nil {
			return nil, err
		}
		if err := ms.build(i.alloc, lib); err != nil {
			return nil, fmt.Errorf("denoise: %s: %w", md.Method, err)
		}
		i.alloc.EndMethod()
		i.methods = append(i.methods, ms)
		i.byMethod[md.Method] = ms
	}

	if err := i.alloc.Finalize(); err != nil {
		return nil, err
	}
	if err := i.describe(); err != nil {
		return nil, err
	}

	i.dispatches = make([]DispatchDesc, 0, i.desc.MaxDispatchCount)
	i.constArena = make([]byte, 0, i.desc.MaxDispatchCount*i.desc.ConstantsMaxSize)

	Logger().Info("denoise: instance created",
		"methods", len(i.methods),
		"permanent", len(i.desc.Permanent),
		"transient", len(i.desc.Transient),
		"pipelines", len(i.desc.Pipelines))
	return i, nil
}

// describe precomputes the host-facing Description, compiling every
// shader variant the method graphs reference.
func (i *Instance) describe() error {
	poolUsage := TextureUsageSampled | TextureUsageStorage
	for _, t := range i.alloc.PermanentTextures() {
		i.desc.Permanent = append(i.desc.Permanent, TextureDesc{
			Name: t.Name, Format: t.Format,
			Width: t.Width, Height: t.Height, ArraySize: t.ArraySize,
			Usage: poolUsage,
		})
	}
	for _, t := range i.alloc.TransientTextures() {
		i.desc.Transient = append(i.desc.Transient, TextureDesc{
			Name: t.Name, Format: t.Format,
			Width: t.Width, Height: t.Height, ArraySize: t.ArraySize,
			Usage: poolUsage,
		})
	}

	compiler := shader.NewCompiler(i.lib)
	for _, ms := range i.methods {
		size := ms.constantsSize()
		if size > i.desc.ConstantsMaxSize {
			i.desc.ConstantsMaxSize = size
		}
		i.desc.MaxDispatchCount += len(ms.g.Passes)

		for _, id := range ms.g.Variants() {
			if _, ok := i.pipelineOf[id]; ok {
				continue
			}
			v, err := i.lib.Variant(id)
			if err != nil {
				return err
			}
			words, err := compiler.Compile(id)
			if err != nil {
				return err
			}
			i.pipelineOf[id] = len(i.desc.Pipelines)
			i.desc.Pipelines = append(i.desc.Pipelines, PipelineDesc{
				Name:          v.Name,
				SPIRV:         words,
				NumInputs:     v.NumInputs,
				NumOutputs:    v.NumOutputs,
				TileWidth:     v.TileWidth,
				TileHeight:    v.TileHeight,
				ConstantsSize: size,
			})
		}
	}
	i.desc.DummyFormat = pool.TextureFormatRGBA8Unorm
	return nil
}

// Describe returns everything the host must create before the first
// frame. The nested SPIRV slices are shared; treat them as read-only.
// A destroyed instance returns the zero Description.
func (i *Instance) Describe() Description {
	if i.state == stateDestroyed {
		return Description{}
	}
	d := i.desc
	d.Permanent = append([]TextureDesc(nil), i.desc.Permanent...)
	d.Transient = append([]TextureDesc(nil), i.desc.Transient...)
	d.Pipelines = append([]PipelineDesc(nil), i.desc.Pipelines...)
	return d
}

// SetMethodSettings replaces one method's tuning. The settings value
// must be the method's type: ReblurSettings, SigmaSettings, or
// RelaxSettings. Out-of-range fields are clamped with a Warn log.
func (i *Instance) SetMethodSettings(m Method, settings any) error {
	if i.state == stateDestroyed {
		return ErrDestroyed
	}
	ms, ok := i.byMethod[m]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedMethod, m)
	}
	switch s := settings.(type) {
	case ReblurSettings:
		if m != MethodReblurDiffuseSpecularOcclusion {
			return fmt.Errorf("%w: ReblurSettings for %s", ErrKindMismatch, m)
		}
		ms.reblur = s.normalized()
	case SigmaSettings:
		if m != MethodSigmaShadow {
			return fmt.Errorf("%w: SigmaSettings for %s", ErrKindMismatch, m)
		}
		ms.sigma = s.normalized()
	case RelaxSettings:
		if m != MethodRelaxDiffuse {
			return fmt.Errorf("%w: RelaxSettings for %s", ErrKindMismatch, m)
		}
		ms.relax = s.normalized()
	default:
		return fmt.Errorf("%w: %T", ErrKindMismatch, settings)
	}
	return nil
}

// GenerateFrame compiles one frame into an ordered dispatch list. The
// returned slice and its constants blobs stay valid until the next
// GenerateFrame call on this instance.
//
// On error the instance is unchanged: history parity does not advance
// and the next call behaves as if this one never happened.
func (i *Instance) GenerateFrame(cs CommonSettings, rp *ResourcePool) ([]DispatchDesc, error) {
	switch i.state {
	case stateDestroyed:
		return nil, ErrDestroyed
	case stateGenerating:
		return nil, ErrNotReentrant
	}
	i.state = stateGenerating
	defer func() { i.state = stateIdle }()

	cs = cs.normalized()
	nextParity := !i.parity

	out := i.dispatches[:0]
	arena := i.constArena[:0]

	for _, ms := range i.methods {
		f := ms.flags(&cs)
		q := ms.quality()
		ordinal := 0
		for pi := range ms.g.Passes {
			p := &ms.g.Passes[pi]
			if !p.Included(f) {
				continue
			}
			id, err := graph.SelectVariant(p, f, q)
			if err != nil {
				return nil, fmt.Errorf("denoise: %s: %w", ms.desc.Method, err)
			}
			v, err := i.lib.Variant(id)
			if err != nil {
				return nil, err
			}

			d := DispatchDesc{
				Name:     ms.g.Name + "/" + p.Name,
				Pipeline: i.pipelineOf[id],
			}
			for _, in := range p.Inputs {
				bnd, err := i.bind(rp, in.Resolve(f), nextParity, AccessSampled)
				if err != nil {
					return nil, fmt.Errorf("denoise: %s input: %w", d.Name, err)
				}
				d.Inputs = append(d.Inputs, bnd)
			}
			for _, ref := range p.Outputs {
				bnd, err := i.bind(rp, ref, nextParity, AccessStorageWrite)
				if err != nil {
					return nil, fmt.Errorf("denoise: %s output: %w", d.Name, err)
				}
				d.Outputs = append(d.Outputs, bnd)
			}

			pw := ceilDiv(ms.desc.Width, p.Downsample)
			ph := ceilDiv(ms.desc.Height, p.Downsample)
			d.GridWidth = ceilDiv(pw, v.TileWidth)
			d.GridHeight = ceilDiv(ph, v.TileHeight)

			start := len(arena)
			arena = appendCommonConstants(arena, &cs, pw, ph, ordinal, nextParity)
			arena = ms.appendConstants(arena)
			d.Constants = arena[start:len(arena):len(arena)]

			out = append(out, d)
			ordinal++
		}
	}

	i.dispatches = out
	i.constArena = arena
	i.parity = nextParity
	Logger().Debug("denoise: frame generated",
		"frame", cs.FrameIndex, "dispatches", len(out), "parity", nextParity)
	return out, nil
}

// bind routes one graph reference to a host texture handle.
func (i *Instance) bind(rp *ResourcePool, r graph.Ref, parity bool, access AccessMode) (Binding, error) {
	if rp == nil {
		return Binding{}, ErrUnboundResource
	}
	switch r.Kind {
	case graph.RefDummy:
		if rp.Dummy == 0 {
			return Binding{}, fmt.Errorf("%w: dummy placeholder", ErrUnboundResource)
		}
		return Binding{Handle: rp.Dummy, Access: AccessSampled}, nil

	case graph.RefExternalIn, graph.RefExternalOut:
		h := rp.External[r.Resource]
		if h == 0 {
			return Binding{}, fmt.Errorf("%w: external %v", ErrUnboundResource, r)
		}
		return Binding{Handle: h, Access: access}, nil

	case graph.RefPermanent:
		idx, err := i.alloc.ResolvePermanent(r.Slot, parity, r.Previous)
		if err != nil {
			return Binding{}, err
		}
		if idx >= len(rp.Permanent) || rp.Permanent[idx] == 0 {
			return Binding{}, fmt.Errorf("%w: permanent texture %d", ErrUnboundResource, idx)
		}
		return Binding{Handle: rp.Permanent[idx], Access: access}, nil

	default: // graph.RefTransient
		idx, err := i.alloc.ResolveTransient(r.Slot)
		if err != nil {
			return Binding{}, err
		}
		if idx >= len(rp.Transient) || rp.Transient[idx] == 0 {
			return Binding{}, fmt.Errorf("%w: transient texture %d", ErrUnboundResource, idx)
		}
		return Binding{Handle: rp.Transient[idx], Access: access}, nil
	}
}

// Destroy releases the instance's bookkeeping. Further calls on the
// instance return ErrDestroyed. Destroy is idempotent.
func (i *Instance) Destroy() {
	if i.state == stateDestroyed {
		return
	}
	i.state = stateDestroyed
	i.methods = nil
	i.byMethod = nil
	i.dispatches = nil
	i.constArena = nil
	i.desc = Description{}
}

func ceilDiv(a, b int) int {
	if b < 1 {
		b = 1
	}
	n := (a + b - 1) / b
	if n < 1 {
		n = 1
	}
	return n
}
