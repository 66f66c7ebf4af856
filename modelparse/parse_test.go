// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

package modelparse

import (
	"errors"
	"testing"

	"github.com/crcforge/crcforge"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given a well-formed catalogue line", t, func() {
		line := `width=8 poly=0x07 init=0x00 refin=false refout=false xorout=0x00 check=0xf4 residue=0x00 name="CRC-8"`

		Convey("Parse succeeds and populates every field", func() {
			s, err := Parse(line)
			So(err, ShouldBeNil)
			So(s.Width, ShouldEqual, 8)
			So(s.Poly.Lo, ShouldEqual, uint64(0x07))
			So(s.RefIn, ShouldBeFalse)
			So(s.RefOut, ShouldBeFalse)
			So(s.Check.Lo, ShouldEqual, uint64(0xf4))
			So(s.Name, ShouldEqual, "CRC-8")
		})
	})

	Convey("Given abbreviated keys", t, func() {
		Convey("refi/refo resolve unambiguously", func() {
			s, err := Parse(`w=16 p=0x1021 i=0xffff refi=false refo=false x=0x0000 name=XMODEM-ish`)
			So(err, ShouldBeNil)
			So(s.Width, ShouldEqual, 16)
			So(s.RefIn, ShouldBeFalse)
		})

		Convey("a bare 'ref' prefix resolves to refin, since refout needs at least 4 characters", func() {
			s, err := Parse(`width=8 poly=0x07 ref=false`)
			So(err, ShouldBeNil)
			So(s.HasRefIn, ShouldBeTrue)
			So(s.HasRefOut, ShouldBeFalse)
			So(s.RefIn, ShouldBeFalse)
		})

		Convey("'res' is accepted for residue (>=3 chars) but 're' is not", func() {
			s, err := Parse(`width=8 poly=0x07 refin=false res=0x00`)
			So(err, ShouldBeNil)
			So(s.HasResidue, ShouldBeTrue)
			So(s.Residue.Lo, ShouldEqual, uint64(0))

			s, err = Parse(`width=8 poly=0x07 re=true`)
			So(err, ShouldBeNil)
			So(s.HasResidue, ShouldBeFalse)
			So(s.RefIn, ShouldBeTrue)
		})
	})

	Convey("Given only one of refin/refout", t, func() {
		Convey("the other copies it", func() {
			s, err := Parse(`width=8 poly=0x07 refin=true`)
			So(err, ShouldBeNil)
			So(s.RefIn, ShouldBeTrue)
			So(s.RefOut, ShouldBeTrue)
		})
	})

	Convey("Given defaulting rules", t, func() {
		Convey("init, xorout and residue default to zero", func() {
			s, err := Parse(`width=8 poly=0x07 refin=false refout=false`)
			So(err, ShouldBeNil)
			So(s.Init.Lo, ShouldEqual, uint64(0))
			So(s.XorOut.Lo, ShouldEqual, uint64(0))
			So(s.Residue.Lo, ShouldEqual, uint64(0))
		})
	})

	Convey("Given a negative literal", t, func() {
		Convey("it wraps two's-complement to width bits", func() {
			s, err := Parse(`width=8 poly=0x07 refin=false refout=false xorout=-1`)
			So(err, ShouldBeNil)
			So(s.XorOut.Lo, ShouldEqual, uint64(0xff))
		})
	})

	Convey("Given a quoted name with an embedded quote", t, func() {
		Convey("the \"\" escape unescapes to one literal quote", func() {
			s, err := Parse(`width=8 poly=0x07 refin=false refout=false name="a ""quoted"" name"`)
			So(err, ShouldBeNil)
			So(s.Name, ShouldEqual, `a "quoted" name`)
		})
	})

	Convey("Given multiple faults on one line", t, func() {
		Convey("every fault is reported, not just the first", func() {
			_, err := Parse(`poly=0x07 poly=0x09 bogus=1 width=9000`)
			So(err, ShouldNotBeNil)
			pe := err.(*ParseError)
			kinds := map[Kind]bool{}
			for _, f := range pe.Faults {
				kinds[f.Kind] = true
			}
			So(kinds[Repeated], ShouldBeTrue)
			So(kinds[Unknown], ShouldBeTrue)
			So(kinds[OutOfRange], ShouldBeTrue)
			So(kinds[Missing], ShouldBeTrue) // refin/refout never given
		})
	})

	Convey("Given a value that overflows width", t, func() {
		Convey("OutOfRange is reported", func() {
			_, err := Parse(`width=8 poly=0x107 refin=false refout=false`)
			So(err, ShouldNotBeNil)
			pe := err.(*ParseError)
			So(pe.Faults[0].Kind, ShouldEqual, OutOfRange)
		})
	})

	Convey("Given a 128-bit model", t, func() {
		Convey("poly/init split correctly across Hi/Lo", func() {
			s, err := Parse(`width=128 poly=0x0000000000000000000000000000008d refin=true refout=true`)
			So(err, ShouldBeNil)
			So(s.Poly.Hi, ShouldEqual, uint64(0))
			So(s.Poly.Lo, ShouldEqual, uint64(0x8d))
		})
	})
}

func TestPrepare(t *testing.T) {
	Convey("Given a parsed CRC-8 model", t, func() {
		s, err := Parse(`width=8 poly=0x07 init=0x00 refin=false refout=false xorout=0x00 check=0xf4 name="CRC-8"`)
		So(err, ShouldBeNil)

		Convey("Prepare builds a model whose Check matches", func() {
			m, err := s.Prepare()
			So(err, ShouldBeNil)
			ok, want, got := s.VerifyCheck(m)
			So(ok, ShouldBeTrue)
			So(got, ShouldEqual, want)
		})
	})

	Convey("Given a parsed 82-bit (wide) model", t, func() {
		s, err := Parse(`width=82 poly=0x0308c0111011401440411 init=0x000000000000000000000 refin=true refout=true xorout=0x000000000000000000000 name="CRC-82/DARC"`)
		So(err, ShouldBeNil)

		Convey("Prepare returns a *crcforge.WideAlgo-backed Model", func() {
			m, err := s.Prepare()
			So(err, ShouldBeNil)
			So(m.Width(), ShouldEqual, 82)
		})
	})

	Convey("Given a Spec built directly with a width beyond 128 bits", t, func() {
		s := Spec{Width: 200, Poly: BigUint{Lo: 1}, RefIn: true, RefOut: true}

		Convey("Prepare rejects it with ErrTooWide", func() {
			_, err := s.Prepare()
			So(err, ShouldNotBeNil)
			So(errors.Is(err, crcforge.ErrTooWide), ShouldBeTrue)
		})
	})
}
