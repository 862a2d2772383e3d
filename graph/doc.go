// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package graph declares denoising method graphs: ordered sequences of
// compute passes with typed resource references and per-pass shader
// variant candidates.
//
// A graph is declared once at instance construction through a Builder
// and never mutated afterwards. Data dependencies are expressed through
// slot reuse: a pass's output slot is a later pass's input slot, and
// passes execute strictly in declaration order, so no runtime hazard
// tracking is needed.
//
// Pass inputs are positional. An input that is unavailable under some
// permutation still occupies its binding position and resolves to a
// dummy texture, so every variant of a pass sees the exact arity its
// bind group layout declares. Which variant runs is decided per frame
// by SelectVariant from dynamic feature flags and the quality mode; the
// Builder verifies at construction that every reachable flag
// combination is covered by exactly one most-specific candidate.
package graph
