// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

package crcforge

import "math/bits"

// reverseBits returns the reversal of the low n bits of x; the upper bits of
// the result are zero. The CRC engines do not call it: they reverse with
// reflect directly (toReg/fromReg, crcInstance.Residue), only on output,
// so neither function is on a per-byte path.
//
// When n spans the full width of T, this defers to the math/bits butterfly
// intrinsics (Reverse8/16/32/64) -- the standard library's realization of
// the constant-time bit-reversal schedule, already used by this pack's
// mbsulliv-crc16 teacher for CRC-16 output reversal. Any other n (the common
// case, since width is arbitrary) falls back to reflect, a bit-at-a-time
// loop equivalent to the teacher's original reflect().
func reverseBits[T UInt](x T, n int) T {
	if n <= 0 {
		return 0
	}
	if n == bitSize[T]() {
		return reverseFull(x)
	}
	return reflect(x, n)
}

// reflect reverses the low n bits of val one bit at a time.
func reflect[T UInt](val T, n int) T {
	x := val & 1
	for i := 1; i < n; i++ {
		val >>= 1
		x <<= 1
		x |= val & 1
	}
	return x
}

func reverseFull[T UInt](x T) T {
	switch v := any(x).(type) {
	case uint8:
		return T(bits.Reverse8(v))
	case uint16:
		return T(bits.Reverse16(v))
	case uint32:
		return T(bits.Reverse32(v))
	case uint64:
		return T(bits.Reverse64(v))
	default:
		panic("crcforge: unreachable UInt type")
	}
}

func bitSize[T UInt]() int {
	var z T
	switch any(z).(type) {
	case uint8:
		return 8
	case uint16:
		return 16
	case uint32:
		return 32
	case uint64:
		return 64
	default:
		return 64
	}
}

// reverseWide returns the reversal of the low n bits of the 128-bit value
// (hi, lo), where hi holds bits 64..n-1 and lo holds bits 0..63. Ported from
// original_source/model.c's reverse_dbl: 1 <= n <= 128.
func reverseWide(hi, lo uint64, n int) (rhi, rlo uint64) {
	if n <= 64 {
		return 0, reflect(lo, n) & onesU64(n)
	}
	// Reverse the full 128-bit concatenation of hi:lo with math/bits, then
	// shift the result down so that only the requested low n bits of the
	// input end up occupying the top of the 128-bit reversal.
	rHi := bits.Reverse64(lo)
	rLo := bits.Reverse64(hi)
	shift := uint(128 - n)
	if shift == 0 {
		return rHi, rLo
	}
	outLo := (rLo >> shift) | (rHi << (64 - shift))
	outHi := rHi >> shift
	return outHi & onesU64(n-64), outLo
}

func onesU64(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	if n <= 0 {
		return 0
	}
	return (uint64(1) << uint(n)) - 1
}

// reflectedBytes[k] is the reversal of the low 8 bits of k -- the n=8 case of
// reverseBits, precomputed once since it is applied to every input byte of
// every non-reflected-input model.
var reflectedBytes [256]byte

func init() {
	for i := 0; i < 256; i++ {
		reflectedBytes[i] = bits.Reverse8(uint8(i))
	}
}
