// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

package crcforge

// multModP returns a(x)*b(x) mod p(x), where p(x) is the CRC polynomial
// given in its reflected (always-internally-used) representation, refPoly.
// For speed, this requires that a not be zero. Grounded on
// original_source/crc.c's multmodp, walked in the reflected-polynomial
// branch only, since this package never represents a model's register in
// non-reflected form internally (see model.go's doc comment on algo[T]).
func multModP[T UInt](a, b, refPoly T, width int) T {
	top := T(1) << (width - 1)
	var prod T
	for {
		if a&top != 0 {
			prod ^= b
			if a&(top-1) == 0 {
				break
			}
		}
		a <<= 1
		if b&1 != 0 {
			b = (b >> 1) ^ refPoly
		} else {
			b >>= 1
		}
	}
	return prod
}
