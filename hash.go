// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

package crcforge

import (
	"encoding/binary"
	"hash"
)

// Hash adapts an Algo[T] to the standard library's hash.Hash interface,
// so a crcforge model can be used anywhere that interface is expected
// (e.g. io.MultiWriter, hash/crc32-shaped call sites). Grounded on
// _examples/mbsulliv-crc16/hash.go's Hash16 and
// _examples/snksoft-crc/crc.go's Hash, both of which wrap a CRC
// computation behind hash.Hash; this port generalizes the pattern to any
// width via Algo[T] instead of a single hardcoded width.
type Hash[T UInt] struct {
	algo Algo[T]
	crc  CRC[T]
}

// NewHash wraps algo as a hash.Hash. The returned value also exposes
// SumT, a typed accessor that avoids the byte-slice round trip Sum does.
func NewHash[T UInt](algo Algo[T]) *Hash[T] {
	h := &Hash[T]{algo: algo}
	h.Reset()
	return h
}

func (h *Hash[T]) Write(p []byte) (int, error) {
	h.crc.Update(p)
	return len(p), nil
}

func (h *Hash[T]) Reset() {
	h.crc = h.algo.NewCRC()
}

// Size is the width of T in bytes, i.e. the length Sum appends -- not
// necessarily the model's bit width, which may be narrower (callers that
// need the exact bit width should use SumT and mask/shift themselves).
func (h *Hash[T]) Size() int { return bitSize[T]() / 8 }

// BlockSize is 1: crcforge processes input byte by byte (and, internally,
// bit by bit at the tail), so there is no preferred write granularity.
func (h *Hash[T]) BlockSize() int { return 1 }

// SumT returns the current checksum without going through Sum's
// byte-slice representation.
func (h *Hash[T]) SumT() T { return h.crc.Final() }

// Sum appends the big-endian bytes of the current checksum to b, per
// hash.Hash's convention (matches encoding/binary's BigEndian.PutUint*,
// the same choice hash/crc32 and hash/crc64 make in the standard
// library).
func (h *Hash[T]) Sum(b []byte) []byte {
	v := uint64(h.crc.Final())
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return append(b, buf[8-h.Size():]...)
}

var _ hash.Hash = (*Hash[uint32])(nil)
