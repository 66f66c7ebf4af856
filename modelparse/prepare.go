// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

package modelparse

import (
	"fmt"

	"github.com/crcforge/crcforge"
)

// Prepare builds the crcforge.Model that s describes, choosing the
// narrowest Algo[T] that fits width, or a WideAlgo for width>64. Callers
// that don't know (or care) which concrete register type backs the model
// -- cmd/crcgen, cmd/crccheck -- only ever need the Model interface.
func (s Spec) Prepare() (crcforge.Model, error) {
	if s.Width <= 0 {
		return nil, fmt.Errorf("modelparse: width %d out of range [1, 128]", s.Width)
	}
	if s.Width > 128 {
		return nil, fmt.Errorf("modelparse: width %d: %w", s.Width, crcforge.ErrTooWide)
	}
	if s.Width <= 64 {
		return s.prepareNarrow()
	}
	return crcforge.NewWideAlgo(s.Width, s.Poly.Hi, s.Poly.Lo, s.Init.Hi, s.Init.Lo,
		s.XorOut.Hi, s.XorOut.Lo, s.RefIn, s.RefOut)
}

func (s Spec) prepareNarrow() (crcforge.Model, error) {
	switch {
	case s.Width <= 8:
		return crcforge.NewAlgo[uint8](s.Width, uint8(s.Poly.Lo), uint8(s.Init.Lo), uint8(s.XorOut.Lo), s.RefIn, s.RefOut)
	case s.Width <= 16:
		return crcforge.NewAlgo[uint16](s.Width, uint16(s.Poly.Lo), uint16(s.Init.Lo), uint16(s.XorOut.Lo), s.RefIn, s.RefOut)
	case s.Width <= 32:
		return crcforge.NewAlgo[uint32](s.Width, uint32(s.Poly.Lo), uint32(s.Init.Lo), uint32(s.XorOut.Lo), s.RefIn, s.RefOut)
	default:
		return crcforge.NewAlgo[uint64](s.Width, s.Poly.Lo, s.Init.Lo, s.XorOut.Lo, s.RefIn, s.RefOut)
	}
}

// VerifyCheck reports whether the model built from s computes the
// expected check value, when s carries one (HasCheck). Grounded on
// original_source/crctest.c's self-check loop; used by cmd/crccheck.
func (s Spec) VerifyCheck(m crcforge.Model) (ok bool, want, got uint64) {
	if !s.HasCheck {
		return true, 0, 0
	}
	want = s.Check.Lo
	got = m.Check()
	return want == got, want, got
}

// VerifyResidue reports whether the model built from s computes the
// expected residue value, when s carries one (HasResidue).
func (s Spec) VerifyResidue(m crcforge.Model) (ok bool, want, got uint64) {
	if !s.HasResidue {
		return true, 0, 0
	}
	want = s.Residue.Lo
	got = m.Residue()
	return want == got, want, got
}
