// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

package crcforge

import "errors"

// WideAlgo is the double-word (65<=width<=128) realization of components
// B, C (double-word path) and F/G at double width. Per spec.md §3.1, width
// beyond one machine word disables the fast bytewise/wordwise tables
// entirely -- WideAlgo only ever evaluates bit-by-bit. Grounded on
// original_source/crcdbl.c and model.c's BIGREF-based reflected engine;
// like algo[T], the register is always kept in the always-reflected
// (LSB-first) representation, so only the BIGREF stepping body is needed
// (see SPEC_FULL.md §4.3).
type WideAlgo struct {
	width int // 65<=width<=128

	polyHi, polyLo T128 // reflected poly, split hi:lo
	initHi, initLo T128 // reflected init, raw register space (xorout applied only at Final)

	xoroutHi, xoroutLo T128
	refin, refout      bool

	name string
}

// T128 is an alias used to keep the hi/lo field declarations above legible;
// the halves are plain uint64s.
type T128 = uint64

// NewWideAlgo builds a double-word model. poly, init and xorout are given
// as (hi, lo) pairs in non-reflected, MSB-first form exactly like
// NewAlgo's single-word parameters, just split across two uint64s with hi
// holding bits [64, width) and lo holding bits [0, 64).
func NewWideAlgo(width int, polyHi, polyLo, initHi, initLo, xoroutHi, xoroutLo uint64, refin, refout bool) (*WideAlgo, error) {
	return newNamedWideAlgo(width, polyHi, polyLo, initHi, initLo, xoroutHi, xoroutLo, refin, refout, "")
}

func newNamedWideAlgo(width int, polyHi, polyLo, initHi, initLo, xoroutHi, xoroutLo uint64, refin, refout bool, name string) (*WideAlgo, error) {
	if width <= 64 || width > 128 {
		return nil, errors.New("crcforge: WideAlgo requires 65 <= width <= 128 -- use Algo[T] for width <= 64")
	}
	hiWidth := width - 64
	hiMask := onesU64(hiWidth)
	if polyHi > hiMask || initHi > hiMask || xoroutHi > hiMask {
		return nil, errors.New("crcforge: poly, init or xorout is outside of the range allowed by width")
	}
	if polyLo&1 == 0 {
		return nil, errors.New("crcforge: poly has no x^0 term: the least significant bit of poly must be 1")
	}

	rpHi, rpLo := reverseWide(polyHi, polyLo, width)
	riHi, riLo := reverseWide(initHi, initLo, width)

	a := &WideAlgo{
		width:    width,
		polyHi:   rpHi,
		polyLo:   rpLo,
		initHi:   riHi,
		initLo:   riLo,
		xoroutHi: xoroutHi,
		xoroutLo: xoroutLo,
		refin:    refin,
		refout:   refout,
		name:     name,
	}
	return a, nil
}

func (a *WideAlgo) Width() int   { return a.width }
func (a *WideAlgo) Name() string { return a.name }

// Check computes crc of "123456789" widened into a uint64; for width>64
// the high bits are unavoidably lost -- callers that need the full check
// value should call CalcFull directly.
func (a *WideAlgo) Check() uint64 {
	_, lo := a.CalcFull([]byte("123456789"))
	return lo
}

// Residue feeds width zero bits through a register whose output value is
// zero (xorout in register space) and returns the low 64 bits of the result
// without the final xorout (mirrors algo[T].Residue).
func (a *WideAlgo) Residue() uint64 {
	hi, lo := a.toRegFull(0, 0)
	for i := 0; i < a.width; i++ {
		tmp := lo & 1
		lo = (lo >> 1) | (hi << 63)
		hi >>= 1
		if tmp != 0 {
			lo ^= a.polyLo
			hi ^= a.polyHi
		}
	}
	_, resLo := a.fromRegFull(hi, lo)
	return resLo ^ a.xoroutLo
}

func (a *WideAlgo) CalcU64(data []byte) uint64 {
	_, lo := a.CalcFull(data)
	return lo
}

// CalcFull computes the CRC of data and returns the full (hi, lo) result.
func (a *WideAlgo) CalcFull(data []byte) (hi, lo uint64) {
	c := a.NewWideCRC()
	c.Update(data)
	return c.Final()
}

// WideCRC threads a running double-word register across chunked Update
// calls, mirroring CRC[T] for the narrow path.
type WideCRC struct {
	a      *WideAlgo
	hi, lo uint64 // raw working register, always-reflected
}

// NewWideCRC starts a fresh chunked computation for a.
func (a *WideAlgo) NewWideCRC() *WideCRC {
	return &WideCRC{a: a, hi: a.initHi, lo: a.initLo}
}

// Update folds data into the running register.
func (c *WideCRC) Update(data []byte) {
	c.hi, c.lo = c.a.bbbUpd128(c.hi, c.lo, data)
}

// Final applies the output transform (xorout, conditional reversal) and
// returns the finished CRC.
func (c *WideCRC) Final() (hi, lo uint64) {
	return c.a.fromRegFull(c.hi, c.lo)
}

// bbbUpd128 is the double-word bitwise engine, component C's wide path.
// Grounded on original_source/crcdbl.c's BIGREF macro -- the reflected-only
// inner step, since non-reflected wide CRCs reflect each input byte before
// folding it in rather than running a distinct shift direction (same
// duality as algo[T].bbbUpd).
func (a *WideAlgo) bbbUpd128(hi, lo uint64, data []byte) (rhi, rlo uint64) {
	hiMask := onesU64(a.width - 64)
	hi &= hiMask
	for _, b := range data {
		if !a.refin {
			b = reflectedBytes[b]
		}
		lo ^= uint64(b)
		for i := 0; i < 8; i++ {
			tmp := lo & 1
			lo = (lo >> 1) | (hi << 63)
			hi >>= 1
			if tmp != 0 {
				lo ^= a.polyLo
				hi ^= a.polyHi
			}
		}
	}
	hi &= hiMask
	return hi, lo
}

// toRegFull/fromRegFull mirror algo[T].toReg/fromReg for the double-word
// register, converting between the output representation Final()/CalcFull
// use and the raw working register bbbUpd128/zero-run stepping use.
func (a *WideAlgo) toRegFull(hi, lo uint64) (rhi, rlo uint64) {
	hi ^= a.xoroutHi
	lo ^= a.xoroutLo
	if a.refout {
		return hi & onesU64(a.width-64), lo
	}
	return reverseWide(hi, lo, a.width)
}

func (a *WideAlgo) fromRegFull(hi, lo uint64) (rhi, rlo uint64) {
	if !a.refout {
		hi, lo = reverseWide(hi, lo, a.width)
	}
	return (hi ^ a.xoroutHi) & onesU64(a.width-64), lo ^ a.xoroutLo
}

// Zeros feeds nBits zero bits into a register currently holding (hi, lo)
// (in CalcFull's output representation) and returns the new CRC. There is
// no cycle-detected table path for the wide register: per SPEC_FULL.md
// §4.6/§9 this is a deliberate scope reduction (spec.md's own Open
// Questions mark wide fast zero-runs as an optional extension, not
// required), so every bit is walked individually regardless of n.
func (a *WideAlgo) Zeros(hi, lo uint64, nBits uint64) (rhi, rlo uint64) {
	return a.zerosFull(hi, lo, nBits)
}

func (a *WideAlgo) zerosFull(hi, lo uint64, nBits uint64) (rhi, rlo uint64) {
	rhiReg, rloReg := a.toRegFull(hi, lo)
	for i := uint64(0); i < nBits; i++ {
		tmp := rloReg & 1
		rloReg = (rloReg >> 1) | (rhiReg << 63)
		rhiReg >>= 1
		if tmp != 0 {
			rloReg ^= a.polyLo
			rhiReg ^= a.polyHi
		}
	}
	return a.fromRegFull(rhiReg, rloReg)
}
