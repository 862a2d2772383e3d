// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/denoise"
	"github.com/gogpu/denoise/pool"
)

// DeviceHandle provides GPU device access from the host application.
//
// Key principle: the denoiser RECEIVES the device from the host, it does
// NOT create one. DeviceHandle is an alias for gpucontext.DeviceProvider,
// keeping full compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

var (
	// ErrNilProvider is returned when a nil DeviceHandle is passed.
	ErrNilProvider = errors.New("wgpu: nil DeviceHandle")

	// ErrInvalidProvider is returned when the provider's device cannot
	// create textures.
	ErrInvalidProvider = errors.New("wgpu: device must implement TextureCreator")

	// ErrUnsupportedFormat is returned for an undefined pool format.
	ErrUnsupportedFormat = errors.New("wgpu: unsupported texture format")
)

// TextureCreator is the capability the host device must expose for
// Host to realize pool textures. Framework device types implement it;
// the returned object is opaque to this package.
type TextureCreator interface {
	CreateTexture(width, height int, format gputypes.TextureFormat) (any, error)
}

// convertTextureFormat maps a pool format to gputypes. Formats gputypes
// does not expose yet fall back to RGBA8Unorm; the pool stays functional
// at reduced history precision.
func convertTextureFormat(f pool.TextureFormat) (gputypes.TextureFormat, bool) {
	switch f {
	case pool.TextureFormatUndefined:
		return gputypes.TextureFormatUndefined, false
	case pool.TextureFormatR8Unorm:
		return gputypes.TextureFormatR8Unorm, true
	case pool.TextureFormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm, true
	default:
		return gputypes.TextureFormatRGBA8Unorm, true
	}
}

// Registry assigns stable resource handles to host texture objects, so
// dispatch descriptions can reference them without the core library
// knowing their types.
type Registry struct {
	next     denoise.ResourceHandle
	byHandle map[denoise.ResourceHandle]any
}

// NewRegistry creates an empty handle registry.
func NewRegistry() *Registry {
	return &Registry{byHandle: make(map[denoise.ResourceHandle]any)}
}

// Register assigns a new nonzero handle to a host texture.
func (r *Registry) Register(tex any) denoise.ResourceHandle {
	r.next++
	r.byHandle[r.next] = tex
	return r.next
}

// Resolve returns the texture registered under h.
func (r *Registry) Resolve(h denoise.ResourceHandle) (any, bool) {
	tex, ok := r.byHandle[h]
	return tex, ok
}

// Release forgets a handle. The host destroys the texture itself.
func (r *Registry) Release(h denoise.ResourceHandle) {
	delete(r.byHandle, h)
}

// Len returns the number of live handles.
func (r *Registry) Len() int { return len(r.byHandle) }

// Host realizes a denoise.Description against a host-provided device.
type Host struct {
	provider DeviceHandle
	creator  TextureCreator
	reg      *Registry
}

// NewHost wraps a host device provider. The provider's Device must
// implement TextureCreator.
func NewHost(provider DeviceHandle) (*Host, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	creator, ok := provider.Device().(TextureCreator)
	if !ok {
		return nil, ErrInvalidProvider
	}
	return &Host{provider: provider, creator: creator, reg: NewRegistry()}, nil
}

// Registry exposes the handle registry so the host can register its
// external textures (inputs and outputs) into the same handle space.
func (h *Host) Registry() *Registry { return h.reg }

// Realize creates every pool texture the description asks for, plus the
// 1x1 dummy placeholder, and returns a ResourcePool with the Permanent,
// Transient, and Dummy fields filled. The caller binds its external
// textures into the External map before the first GenerateFrame.
func (h *Host) Realize(desc denoise.Description) (*denoise.ResourcePool, error) {
	rp := &denoise.ResourcePool{
		External:  make(map[denoise.ResourceKind]denoise.ResourceHandle),
		Permanent: make([]denoise.ResourceHandle, 0, len(desc.Permanent)),
		Transient: make([]denoise.ResourceHandle, 0, len(desc.Transient)),
	}

	create := func(td denoise.TextureDesc) (denoise.ResourceHandle, error) {
		format, ok := convertTextureFormat(td.Format)
		if !ok {
			return 0, fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, td.Format, td.Name)
		}
		tex, err := h.creator.CreateTexture(td.Width, td.Height, format)
		if err != nil {
			return 0, fmt.Errorf("wgpu: creating %s: %w", td.Name, err)
		}
		return h.reg.Register(tex), nil
	}

	for _, td := range desc.Permanent {
		handle, err := create(td)
		if err != nil {
			return nil, err
		}
		rp.Permanent = append(rp.Permanent, handle)
	}
	for _, td := range desc.Transient {
		handle, err := create(td)
		if err != nil {
			return nil, err
		}
		rp.Transient = append(rp.Transient, handle)
	}

	dummy, err := create(denoise.TextureDesc{
		Name: "dummy", Format: desc.DummyFormat, Width: 1, Height: 1,
	})
	if err != nil {
		return nil, err
	}
	rp.Dummy = dummy

	denoise.Logger().Info("wgpu: pool realized",
		"permanent", len(rp.Permanent), "transient", len(rp.Transient))
	return rp, nil
}
