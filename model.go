// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

// Package crcforge is an arbitrary-precision CRC calculator that can
// calculate CRCs of any bit width (between CRC-1 and CRC-128) and can
// process input of any bit length (the end of the input data doesn't have
// to be on a byte boundary).
//
// Whole bytes of the input data are processed with the help of a
// precalculated 256-element accelerator table (bytewise), or with N such
// tables processed one machine word at a time (wordwise, for width<=64). If
// the end of input isn't byte-aligned then the remaining (7 or fewer) bits
// are calculated into the CRC by a tableless bit-by-bit method (bitwise).
// All three agree bit-for-bit on every input.
//
// CRCs of 65 to 128 bits use a double-word (WideAlgo) register and only the
// bitwise algorithm; see wide.go.
//
// This package provides presets for, and has been tested against, the 100+
// CRC algorithms listed in Greg Cook's CRC catalogue:
// https://reveng.sourceforge.io/crc-catalogue/all.htm
package crcforge

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
)

// ErrTooWide is returned when a requested model's width exceeds 128 bits
// (2x the 64-bit word size this package is built around), per spec.md
// §7's TooWide error kind: such a model has no realization at all (neither
// Algo[T] nor WideAlgo) and must be skipped by the caller.
var ErrTooWide = errors.New("crcforge: width exceeds 128 bits, no realization available")

// UInt specifies the integer types that can be used for CRC calculations.
// The bit width of the chosen integer type has to be greater than or equal
// to the bit width used by the CRC algorithm.
// For example a CRC-17 algorithm requires uint32 or uint64.
type UInt interface {
	uint8 | uint16 | uint32 | uint64
}

// Model is the width-erased view of an Algo[T]/WideAlgo shared by the
// model parser and the code generator, neither of which knows the concrete
// register type ahead of time.
type Model interface {
	Width() int
	Name() string
	// Check computes the CRC of the nine ASCII bytes "123456789" -- the
	// catalogue self-check value (spec.md §3.1). It is computed on demand
	// rather than stored, so it is always correct for the model's actual
	// parameters instead of depending on a hand-entered catalogue constant.
	Check() uint64
	// Residue computes the catalogue residue: the register left after width
	// zero bits are fed through a register whose output value is zero (i.e.
	// that holds xorout), returned without the final xorout, as
	// CRC[T].Residue would. It is the value every valid codeword leaves
	// behind. Also computed on demand.
	Residue() uint64
	// CalcU64 computes the CRC of data and widens the result to uint64.
	// For WideAlgo models with width>64 the high bits are lost; callers
	// that need the full value should type-assert to *WideAlgo instead.
	CalcU64(data []byte) uint64
}

// A CRC instance is a lightweight "throw-away" object that can calculate the
// CRC of your chunked data with zero or more Update() calls.
type CRC[T UInt] interface {
	Update(data []byte)
	UpdateBits(data []byte, bitLen int)
	// UpdateWord runs the wordwise (slice-by-N) engine over data, per the
	// given byte order; see wordwise.go (component E). It is equivalent to,
	// but faster than, Update for long inputs.
	UpdateWord(data []byte, endian binary.ByteOrder)
	Final() T   // Final returns the final CRC value
	Residue() T // Residue returns the final CRC value without the xorout step
}

// Algo is a parametrized CRC algorithm. It can be shared and reused by
// goroutines to save on the resources spent on creating the related
// accelerator tables.
type Algo[T UInt] interface {
	Model
	NewCRC() CRC[T]                     // Calculate the CRC of chunked data
	Calc(data []byte) T                 // Calculate the CRC of a single chunk of data
	CalcBits(data []byte, bitLen int) T // Calculate the CRC of a single chunk of data

	// Zeros returns the CRC obtained by feeding nBits zero bits through a
	// register that currently holds crc. See combine.go (component G).
	Zeros(crc T, nBits uint64) T
	// Combine returns the CRC of A||B given crc(A), crc(B), and len(B) in
	// bytes, without rescanning A. See combine.go (component G).
	Combine(crcA, crcB T, lenB uint64) T
}

// NewAlgo creates a parametrized CRC algorithm instance - this involves the
// calculation of an accelerator table with 256 entries of type T. Ideally
// you create and share one Algo instance per CRC algorithm during the
// lifespan of the process. Width can be between 1...64 (inclusive) - it
// mustn't exceed the bit width of T. Poly and init are always in
// (unreflected) MSB-first format.
func NewAlgo[T UInt](width int, poly, init, xorout T, refin, refout bool) (Algo[T], error) {
	return newNamedAlgo[T](width, poly, init, xorout, refin, refout, "")
}

func newNamedAlgo[T UInt](width int, poly, init, xorout T, refin, refout bool, name string) (*algo[T], error) {
	if err := checkParams(width, poly, init, xorout); err != nil {
		return nil, err
	}
	a := &algo[T]{
		width:   width,
		refPoly: reflect(poly, width),
		refInit: reflect(init, width),
		xorout:  xorout,
		refin:   refin,
		refout:  refout,
		name:    name,
	}
	for i := 1; i < 256; i++ {
		a.table[i] = a.bbbUpd(T(i), 0, 8)
	}
	return a, nil
}

func checkParams[T UInt](width int, poly, init, xorout T) error {
	if width <= 0 || (T(1)<<(width-1)) == 0 {
		return errors.New("width must be greater than zero and less than or equal to the bit width of T")
	}
	m := (T(1) << width) - 1
	if poly > m || init > m || xorout > m {
		return errors.New("poly, init or xorout is outside of the range allowed by width")
	}
	if poly&1 == 0 {
		return fmt.Errorf("poly 0x%x has no x^0 term: the least significant bit of poly must be 1", poly)
	}
	return nil
}

// algo is the narrow (width<=64) realization of components B, C, D, F and G.
// The register it carries (refPoly/refInit, and every table entry) is
// always in the reflected, LSB-first representation: non-reflected models
// are realized by reflecting each input byte before folding it in rather
// than by processing the register MSB-first. See SPEC_FULL.md §9.
type algo[T UInt] struct {
	width   int // width>0 && width<=bitSize(T)
	refPoly T   // poly, always reflected
	refInit T   // init, always reflected
	xorout  T
	refin   bool
	refout  bool
	name    string
	table   [256]T

	wordOnce  sync.Once
	tableWord [maxWordBytes][256]T
	wordBytes int

	combOnce    sync.Once
	tableComb   [maxCombTable]T
	cycle, back int
}

func (a *algo[T]) Width() int   { return a.width }
func (a *algo[T]) Name() string { return a.name }

func (a *algo[T]) Check() uint64 {
	return uint64(a.Calc([]byte("123456789")))
}

// Residue feeds width zero bits through a register whose output value is
// zero (toReg(0): xorout in register space) and returns the result with the
// output reflection applied but without the final xorout, the same form
// crcInstance.Residue returns after a valid codeword.
func (a *algo[T]) Residue() uint64 {
	reg := a.toReg(0)
	for i := 0; i < a.width; i++ {
		if reg&1 != 0 {
			reg = (reg >> 1) ^ a.refPoly
		} else {
			reg >>= 1
		}
	}
	return uint64(a.fromReg(reg) ^ a.xorout)
}

func (a *algo[T]) CalcU64(data []byte) uint64 {
	return uint64(a.Calc(data))
}

func (a *algo[T]) NewCRC() CRC[T] {
	return &crcInstance[T]{a, a.refInit}
}

func (a *algo[T]) Calc(data []byte) T {
	return a.CalcBits(data, -1)
}

func (a *algo[T]) CalcBits(data []byte, bitLen int) T {
	c := a.NewCRC()
	c.UpdateBits(data, bitLen)
	return c.Final()
}

func (a *algo[T]) tblUpd(reg T, data []byte, bitLen int) (newReg T) {
	var n, bitsLeft int
	if bitLen < 0 {
		n, bitsLeft = len(data), 0
	} else if bitLen > (len(data) << 3) {
		panic("bitLen is greater than the number of bits in the input data")
	} else {
		n, bitsLeft = bitLen>>3, bitLen&7
	}

	for _, b := range data[:n] {
		if !a.refin {
			b = reflectedBytes[b]
		}
		reg = a.table[byte(reg)^b] ^ (reg >> 8)
	}

	if bitsLeft > 0 { // 7 or less input data bits remaining
		return a.bbbUpd(reg, data[n], bitsLeft)
	}
	return reg
}

// bbbUpd performs a bit-by-bit (tableless) update -- component C, the
// single-word bitwise engine.
func (a *algo[T]) bbbUpd(reg T, b byte, bitLen int) (newReg T) {
	if !a.refin {
		b = reflectedBytes[b]
	}
	b &= byte(1<<bitLen) - 1 // zeroing the unused bits
	reg ^= T(b)

	for i := 0; i < bitLen; i++ {
		if (reg & 1) != 0 {
			reg = (reg >> 1) ^ a.refPoly
		} else {
			reg >>= 1
		}
	}
	return reg
}

type crcInstance[T UInt] struct {
	a   *algo[T]
	reg T // reflected (LSB-first) CRC shift register
}

func (c *crcInstance[T]) Update(data []byte) {
	c.reg = c.a.tblUpd(c.reg, data, -1)
}

func (c *crcInstance[T]) UpdateBits(data []byte, bitLen int) {
	c.reg = c.a.tblUpd(c.reg, data, bitLen)
}

func (c *crcInstance[T]) UpdateWord(data []byte, endian binary.ByteOrder) {
	c.reg = c.a.updateWord(c.reg, data, endian)
}

func (c *crcInstance[T]) Final() T {
	return c.Residue() ^ c.a.xorout
}

func (c *crcInstance[T]) Residue() T {
	if c.a.refout {
		return c.reg
	}
	return reflect(c.reg, c.a.width)
}
