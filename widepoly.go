// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

package crcforge

// multModPWide returns a(x)*b(x) mod p(x) for double-word (65..128 bit)
// residues, the wide analogue of poly.go's multModP. Requires a != 0.
// Walked in the reflected-only convention, same duality as bbbUpd128.
func multModPWide(aHi, aLo, bHi, bLo, polyHi, polyLo uint64, width int) (prodHi, prodLo uint64) {
	topBit := width - 1 // bit index of the top coefficient, within the 128-bit (hi:lo) pair
	for {
		set := bitAt(aHi, aLo, topBit)
		if set {
			prodHi ^= bHi
			prodLo ^= bLo
			if onlyBitAt(aHi, aLo, topBit) {
				break
			}
		}
		aHi, aLo = shl1(aHi, aLo)
		if bLo&1 != 0 {
			bLo = (bLo >> 1) | (bHi << 63)
			bHi >>= 1
			bLo ^= polyLo
			bHi ^= polyHi
		} else {
			bLo = (bLo >> 1) | (bHi << 63)
			bHi >>= 1
		}
	}
	return prodHi, prodLo
}

func bitAt(hi, lo uint64, n int) bool {
	if n < 64 {
		return lo&(uint64(1)<<uint(n)) != 0
	}
	return hi&(uint64(1)<<uint(n-64)) != 0
}

// onlyBitAt reports whether bit n is the only set bit at or below n (i.e.
// a's remaining lower bits, excluding n itself, are all zero) -- the wide
// analogue of the narrow multModP's `a&(top-1)==0` cycle-end test.
func onlyBitAt(hi, lo uint64, n int) bool {
	if n < 64 {
		return lo&((uint64(1)<<uint(n))-1) == 0
	}
	return lo == 0 && hi&((uint64(1)<<uint(n-64))-1) == 0
}

func shl1(hi, lo uint64) (rhi, rlo uint64) {
	rhi = (hi << 1) | (lo >> 63)
	rlo = lo << 1
	return
}

// x8nModPWide returns x^(8n) mod p(x) via binary exponentiation (repeated
// squaring, no cycle-detection cache -- see wide.go's doc comment on why
// WideAlgo skips the narrow path's table_comb scheme).
func (a *WideAlgo) x8nModPWide(n uint64) (hi, lo uint64) {
	// x^0 mod p(x) in the reflected representation: the top bit set.
	hi, lo = x0ModPWide(a.width)
	if n == 0 {
		return hi, lo
	}
	baseHi, baseLo := x1ModPWide(a.width) // x^1 mod p(x)
	// Square up to x^8 first (n counts bytes, i.e. groups of 8 bits).
	for i := 0; i < 3; i++ {
		baseHi, baseLo = multModPWide(baseHi, baseLo, baseHi, baseLo, a.polyHi, a.polyLo, a.width)
	}
	for n > 0 {
		if n&1 != 0 {
			hi, lo = multModPWide(baseHi, baseLo, hi, lo, a.polyHi, a.polyLo, a.width)
		}
		n >>= 1
		if n == 0 {
			break
		}
		baseHi, baseLo = multModPWide(baseHi, baseLo, baseHi, baseLo, a.polyHi, a.polyLo, a.width)
	}
	return hi, lo
}

func x0ModPWide(width int) (hi, lo uint64) {
	n := width - 1
	if n < 64 {
		return 0, uint64(1) << uint(n)
	}
	return uint64(1) << uint(n-64), 0
}

func x1ModPWide(width int) (hi, lo uint64) {
	n := width - 2
	if n < 0 {
		return 0, 0
	}
	if n < 64 {
		return 0, uint64(1) << uint(n)
	}
	return uint64(1) << uint(n-64), 0
}

// Combine returns crc(A||B) for double-word CRCs, given crc(A), crc(B) and
// len(B) in bytes, without rescanning A. Mirrors combine.go's Combine,
// generalised to the (hi, lo) register; there is no original_source
// counterpart (crc_combine there is single-width only -- see DESIGN.md),
// so x^(8*len2) is computed by plain binary exponentiation
// rather than a cached table walk.
func (a *WideAlgo) Combine(crcAHi, crcALo, crcBHi, crcBLo uint64, lenB uint64) (hi, lo uint64) {
	regAHi, regALo := a.toRegFull(crcAHi, crcALo)
	regAHi ^= a.initHi
	regALo ^= a.initLo
	regBHi, regBLo := a.toRegFull(crcBHi, crcBLo)

	zHi, zLo := a.x8nModPWide(lenB)
	prodHi, prodLo := multModPWide(zHi, zLo, regAHi, regALo, a.polyHi, a.polyLo, a.width)
	return a.fromRegFull(prodHi^regBHi, prodLo^regBLo)
}
