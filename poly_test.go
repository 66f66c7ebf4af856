// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

package crcforge

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// bitwiseMulModP is a reference implementation of multModP that tests each
// bit of a by explicit index from the top down, instead of multModP's
// shift-and-early-break form, used only to cross-check multModP's output.
// Bit (width-1) of a pairs with b's unshifted state, matching multModP's
// own MSB-first scan order -- the reflected representation's register bit
// i is the coefficient of x^(width-1-i), not x^i.
func bitwiseMulModP[T UInt](a, b, refPoly T, width int) T {
	var prod T
	for i := width - 1; i >= 0; i-- {
		if a&(T(1)<<uint(i)) != 0 {
			prod ^= b
		}
		if b&1 != 0 {
			b = (b >> 1) ^ refPoly
		} else {
			b >>= 1
		}
	}
	return prod
}

func TestMultModPAgreesWithBitwiseReference(t *testing.T) {
	Convey("Given the reflected CRC-32/ISO-HDLC polynomial", t, func() {
		a, err := NewAlgo[uint32](32, 0x04c11db7, 0xffffffff, 0xffffffff, true, true)
		So(err, ShouldBeNil)
		impl := a.(*algo[uint32])

		Convey("multModP agrees with a bit-at-a-time reference for several operand pairs", func() {
			cases := [][2]uint32{
				{1, 1}, {0x80000000, 0x1}, {0x12345678, 0x9abcdef0}, {0xffffffff, 0x1},
			}
			for _, c := range cases {
				got := multModP(c[0], c[1], impl.refPoly, 32)
				want := bitwiseMulModP(c[0], c[1], impl.refPoly, 32)
				So(got, ShouldEqual, want)
			}
		})
	})
}

func TestX1ModPAndX0ModP(t *testing.T) {
	Convey("Given width 8", t, func() {
		Convey("x0ModP is the top bit and x1ModP is one below it", func() {
			So(x0ModP[uint8](8), ShouldEqual, uint8(0x80))
			So(x1ModP[uint8](8), ShouldEqual, uint8(0x40))
		})
	})

	Convey("Given width<2", t, func() {
		Convey("x1ModP is zero (there is no x^1 term)", func() {
			So(x1ModP[uint8](1), ShouldEqual, uint8(0))
			So(x1ModP[uint8](0), ShouldEqual, uint8(0))
		})
	})
}
