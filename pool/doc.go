// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pool implements the resource pool allocator for denoising
// pipelines.
//
// The allocator owns two growing pools of abstract texture slots:
//
//   - Permanent slots hold state that must persist across frames, such as
//     history buffers. Each permanent slot is backed by a fixed pair of
//     physical textures so that history can ping-pong between "current"
//     and "previous" roles without a copy pass; a per-frame parity bit
//     selects which physical texture plays which role.
//
//   - Transient slots are scratch textures valid only within a single
//     frame. They are reused across methods whose passes never execute
//     concurrently: because methods run as sequential blocks in the
//     emitted dispatch order, a physical transient texture reserved by
//     one method can be handed to the next method without content
//     conflicts, so the allocator only has to avoid size and format
//     conflicts.
//
// Slots are reserved while method graphs are registered and resolved to
// physical indices only after Finalize, which sizes every physical
// texture to the maximum requested by any method sharing it.
package pool
