// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

package crcforge

const maxCombTable = 128

// buildCombineTable fills tableComb[k] = x^(2^k) mod p(x), stopping at the
// first repeated value. cycle is set to the number of entries that were
// filled in and back to the index the sequence returns to, or -1 if no
// cycle appeared within maxCombTable entries. Grounded on
// original_source/crc.c's crc_table_combine, specialised to the
// always-reflected polynomial representation (see model.go).
func (a *algo[T]) buildCombineTable() {
	a.combOnce.Do(func() {
		sq := x1ModP[T](a.width) // x^1 mod p(x), reflected form
		a.tableComb[0] = sq
		n := 1
		for n < maxCombTable {
			sq = multModP(sq, sq, a.refPoly, a.width)
			found := -1
			for j := 0; j < n; j++ {
				if a.tableComb[j] == sq {
					found = j
					break
				}
			}
			if found >= 0 {
				a.cycle, a.back = n, found
				return
			}
			a.tableComb[n] = sq
			n++
		}
		a.cycle, a.back = n, -1
	})
}

// x1ModP returns x^1 mod p(x) in the reflected representation used
// internally: 1<<(width-2), per original_source/crc.c. Widths below 2 are a
// degenerate edge case (a single-bit CRC has no meaningful zero-run/combine
// use) and fold to zero rather than shifting by a negative amount.
func x1ModP[T UInt](width int) T {
	if width < 2 {
		return 0
	}
	return T(1) << uint(width-2)
}

// x0ModP returns x^0 mod p(x) in the reflected representation: 1<<(width-1).
func x0ModP[T UInt](width int) T {
	return T(1) << uint(width-1)
}

// x8nModP returns x^(8n) mod p(x), per original_source/crc.c's x8nmodp. The
// starting table index consumes the three low (always-zero, since n counts
// *bytes*) bits of the bit-exponent by entering the doubling sequence at
// k=3 (x^(2^3) = x^8).
func (a *algo[T]) x8nModP(n uint64) T {
	a.buildCombineTable()
	xp := x0ModP[T](a.width)
	k := 3
	if a.cycle <= 3 {
		if a.cycle == 3 {
			k = a.back
		} else {
			k = a.cycle - 1
		}
	}
	for {
		if n&1 != 0 {
			xp = multModP(a.tableComb[k], xp, a.refPoly, a.width)
		}
		n >>= 1
		if n == 0 {
			break
		}
		k++
		if k == a.cycle {
			k = a.back
		}
	}
	return xp
}

// toReg converts a "final" (post-xorout, output-oriented) CRC value back
// into the always-reflected register space Update/UpdateBits/UpdateWord
// thread through. It is the exact inverse of crcInstance.Final/Residue.
func (a *algo[T]) toReg(final T) T {
	t := final ^ a.xorout
	if a.refout {
		return t
	}
	return reflect(t, a.width)
}

// fromReg is the inverse of toReg: register space back to final CRC space.
func (a *algo[T]) fromReg(reg T) T {
	var t T
	if a.refout {
		t = reg
	} else {
		t = reflect(reg, a.width)
	}
	return t ^ a.xorout
}

// Zeros returns the CRC obtained by feeding nBits zero bits through a
// register that currently holds crc (in the same output representation
// Final returns). Grounded on original_source/crc.c's crc_zeros: small
// bit-counts are walked one bit at a time, large ones use the O(log n)
// multModP/table_comb path.
func (a *algo[T]) Zeros(crc T, nBits uint64) T {
	reg := a.toReg(crc)
	if nBits < 128 {
		for i := uint64(0); i < nBits; i++ {
			if reg&1 != 0 {
				reg = (reg >> 1) ^ a.refPoly
			} else {
				reg >>= 1
			}
		}
		return a.fromReg(reg)
	}

	a.buildCombineTable()
	k := 0
	n := nBits
	for {
		if n&1 != 0 {
			reg = multModP(a.tableComb[k], reg, a.refPoly, a.width)
		}
		n >>= 1
		if n == 0 {
			break
		}
		k++
		if k == a.cycle {
			k = a.back
		}
	}
	return a.fromReg(reg)
}

// Combine returns crc(A||B) given crc(A), crc(B) and len(B) in bytes,
// without rescanning A. Grounded on original_source/crc.c's crc_combine.
func (a *algo[T]) Combine(crcA, crcB T, lenB uint64) T {
	a.buildCombineTable()
	regA := a.toReg(crcA) ^ a.refInit
	regB := a.toReg(crcB)
	z := a.x8nModP(lenB)
	reg := multModP(z, regA, a.refPoly, a.width) ^ regB
	return a.fromReg(reg)
}
