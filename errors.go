// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package denoise

import "errors"

// Instance errors. Construction errors abort NewInstance and leave no
// partial instance behind; the remaining sentinels classify per-call
// failures and never corrupt instance state.
var (
	// ErrNoMethods is returned when an instance is created without any
	// method requests.
	ErrNoMethods = errors.New("denoise: no methods requested")

	// ErrUnsupportedMethod is returned for a method this build does not
	// implement, or for a per-method call naming a method the instance
	// was not created with.
	ErrUnsupportedMethod = errors.New("denoise: unsupported method")

	// ErrDuplicateMethod is returned when the same method is requested
	// twice in one instance.
	ErrDuplicateMethod = errors.New("denoise: method requested twice")

	// ErrInvalidResolution is returned for non-positive method dimensions
	// or dimensions exceeding the declared device capabilities.
	ErrInvalidResolution = errors.New("denoise: invalid method resolution")

	// ErrKindMismatch is returned when SetMethodSettings receives a
	// settings value of the wrong type for the method.
	ErrKindMismatch = errors.New("denoise: settings type does not match method")

	// ErrUnboundResource is returned by GenerateFrame when the supplied
	// resource pool lacks a handle the frame's dispatches need.
	ErrUnboundResource = errors.New("denoise: required resource not bound")

	// ErrNotReentrant is returned when GenerateFrame is entered while a
	// previous call on the same instance is still running.
	ErrNotReentrant = errors.New("denoise: GenerateFrame is not reentrant")

	// ErrDestroyed is returned for any use of an instance after Destroy.
	ErrDestroyed = errors.New("denoise: instance is destroyed")
)
