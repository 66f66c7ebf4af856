// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

package crcforge

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestZerosMatchesExplicitZeroBytes(t *testing.T) {
	Convey("Given CRC-32/ISO-HDLC", t, func() {
		a, err := NewAlgo[uint32](32, 0x04c11db7, 0xffffffff, 0xffffffff, true, true)
		So(err, ShouldBeNil)

		Convey("Zeros(crc(A), 8*n) equals crc(A || n zero bytes)", func() {
			rng := rand.New(rand.NewSource(7))
			a1 := make([]byte, 37)
			rng.Read(a1)
			for _, n := range []uint64{0, 1, 2, 7, 8, 100} {
				crcA := a.Calc(a1)
				viaZeros := a.Zeros(crcA, n*8)

				full := append(append([]byte{}, a1...), make([]byte, n)...)
				viaDirect := a.Calc(full)

				So(viaZeros, ShouldEqual, viaDirect)
			}
		})
	})
}

func TestCombineMatchesDirectConcatenation(t *testing.T) {
	Convey("Given CRC-16/KERMIT", t, func() {
		a, err := NewAlgo[uint16](16, 0x1021, 0x0000, 0x0000, true, true)
		So(err, ShouldBeNil)

		Convey("Combine(crc(A), crc(B), len(B)) equals crc(A||B)", func() {
			rng := rand.New(rand.NewSource(11))
			for _, lens := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {9, 9}, {1000, 37}, {5, 5000}} {
				partA := make([]byte, lens[0])
				partB := make([]byte, lens[1])
				rng.Read(partA)
				rng.Read(partB)

				crcA := a.Calc(partA)
				crcB := a.Calc(partB)
				combined := a.Combine(crcA, crcB, uint64(len(partB)))

				direct := a.Calc(append(append([]byte{}, partA...), partB...))
				So(combined, ShouldEqual, direct)
			}
		})
	})

	Convey("Given CRC-32/ISO-HDLC (non-trivial xorout and refin/refout)", t, func() {
		a, err := NewAlgo[uint32](32, 0x04c11db7, 0xffffffff, 0xffffffff, true, true)
		So(err, ShouldBeNil)

		Convey("Combine still agrees with direct concatenation", func() {
			rng := rand.New(rand.NewSource(13))
			partA := make([]byte, 123)
			partB := make([]byte, 45)
			rng.Read(partA)
			rng.Read(partB)

			crcA := a.Calc(partA)
			crcB := a.Calc(partB)
			combined := a.Combine(crcA, crcB, uint64(len(partB)))
			direct := a.Calc(append(append([]byte{}, partA...), partB...))
			So(combined, ShouldEqual, direct)
		})
	})

	Convey("Given a non-reflected model (CRC-8/SAE-J1850-derived parameters)", t, func() {
		a, err := NewAlgo[uint8](8, 0x1d, 0xff, 0xff, false, false)
		So(err, ShouldBeNil)

		Convey("Combine still agrees with direct concatenation", func() {
			rng := rand.New(rand.NewSource(17))
			partA := make([]byte, 19)
			partB := make([]byte, 31)
			rng.Read(partA)
			rng.Read(partB)

			crcA := a.Calc(partA)
			crcB := a.Calc(partB)
			combined := a.Combine(crcA, crcB, uint64(len(partB)))
			direct := a.Calc(append(append([]byte{}, partA...), partB...))
			So(combined, ShouldEqual, direct)
		})
	})
}
