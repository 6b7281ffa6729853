// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wire implements the 68-byte frame envelope exchanged between a
// requester and a responder over a raw link-layer transport: marker byte,
// bit-packed header, byte-stuffed content, CRC-8 trailer and one pad byte.
// It carries no notion of sessions, windows or retransmission; it only
// turns a MessageType/index/payload triple into FrameSize bytes and back.
package wire

import (
	"encoding/binary"
	"io"

	"github.com/brineloop/l2xfer/pkg/crc8"
)

const (
	// FrameSize is the total size in bytes of one frame on the wire.
	FrameSize = 68
	// HeaderLen is the size in bytes of the bit-packed size/index/type header.
	HeaderLen = 2
	// ContentLen is the number of bytes available for a frame's content.
	ContentLen = 63

	// Marker is the fixed first byte of every frame.
	Marker byte = 0x7E

	// ModIndex is the modulus of the 5-bit sequence index space.
	ModIndex = 32

	// WindowSize is the steady-state sliding window width, W in the design.
	WindowSize = 5

	// Sentinel1 and Sentinel2 are the content bytes that trigger byte
	// stuffing: a literal occurrence is followed on the wire by StuffByte.
	Sentinel1 byte = 0x81
	Sentinel2 byte = 0x88
	// StuffByte is the literal byte inserted immediately after a sentinel
	// byte in the content stream.
	StuffByte byte = 0xFF
)

// Frame is one 68-byte envelope as it appears on the wire.
type Frame [FrameSize]byte

func isSentinel(b byte) bool { return b == Sentinel1 || b == Sentinel2 }

func packHeader(size, index uint8, typ MessageType) (hi, lo byte) {
	w := uint16(size&0x3F) | uint16(index&0x1F)<<6 | uint16(typ&0x1F)<<11
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], w)
	return b[0], b[1]
}

func unpackHeader(b0, b1 byte) (size, index uint8, typ MessageType) {
	w := binary.LittleEndian.Uint16([]byte{b0, b1})
	size = uint8(w & 0x3F)
	index = uint8((w >> 6) & 0x1F)
	typ = MessageType((w >> 11) & 0x1F)
	return
}

// Encode builds a Frame carrying typ/index and payload, applying byte
// stuffing while copying payload into the content area. Payload must fit
// in ContentLen bytes after stuffing overhead; use ReadStuffedChunk to
// produce a payload slice that is already bounded correctly.
func Encode(typ MessageType, index uint8, payload []byte) (Frame, error) {
	var f Frame
	f[0] = Marker

	size := 0
	for _, b := range payload {
		if size >= ContentLen {
			return Frame{}, ErrTooLong
		}
		f[HeaderLen+1+size] = b
		size++
		if isSentinel(b) && size < ContentLen {
			f[HeaderLen+1+size] = StuffByte
			size++
		}
	}

	f[1], f[2] = packHeader(uint8(size), index, typ)
	f[FrameSize-2] = crc8.Checksum(f[1 : HeaderLen+1+size])
	return f, nil
}

// Decode validates f and extracts its type, index and content payload,
// unstuffing it when typ carries one. Unstuffing reproduces the reference
// decoder's behavior exactly: on a sentinel byte, the following byte is
// always dropped regardless of its value (see DESIGN.md).
func Decode(f Frame) (typ MessageType, index uint8, payload []byte, err error) {
	if f[0] != Marker {
		return 0, 0, nil, ErrBadMarker
	}
	size, index, typ := unpackHeader(f[1], f[2])
	if int(size) > ContentLen {
		return 0, 0, nil, ErrTooLong
	}
	sum := crc8.Checksum(f[1 : HeaderLen+1+int(size)])
	if sum != f[FrameSize-2] {
		return 0, 0, nil, ErrBadCRC
	}
	content := f[HeaderLen+1 : HeaderLen+1+int(size)]
	if !typ.CarriesPayload() {
		return typ, index, nil, nil
	}
	return typ, index, unstuff(content), nil
}

func unstuff(content []byte) []byte {
	out := make([]byte, 0, len(content))
	for i := 0; i < len(content); i++ {
		b := content[i]
		out = append(out, b)
		if isSentinel(b) {
			i++ // drop the byte immediately following a sentinel unconditionally
		}
	}
	return out
}

// ReadStuffedChunk reads one frame's worth of content from r, applying byte
// stuffing as it goes, the same incremental read-and-stuff loop the
// reference implementation runs per outbound frame. It stops when the
// content area is full or r is exhausted.
//
// eof is true when r returned io.EOF while filling this chunk; content may
// still hold trailing bytes read before the EOF was observed. A nil
// content slice together with eof==true means r had nothing left at all.
func ReadStuffedChunk(r io.Reader) (content []byte, eof bool, err error) {
	buf := make([]byte, 0, ContentLen)
	var b [1]byte
	for len(buf) < ContentLen {
		n, rerr := r.Read(b[:])
		if n == 0 {
			if rerr == io.EOF {
				eof = true
				break
			}
			if rerr != nil {
				return nil, false, rerr
			}
			continue
		}
		buf = append(buf, b[0])
		if isSentinel(b[0]) && len(buf) < ContentLen {
			buf = append(buf, StuffByte)
		}
	}
	if len(buf) == 0 {
		return nil, eof, nil
	}
	return buf, eof, nil
}

// EncodeSize encodes n as a fixed 8-byte little-endian value, the
// DESCRIPTOR payload format (fixing the reference's sizeof-size bug: a
// fixed width means both sides agree on the encoding regardless of the
// size_t width of whatever built either binary).
func EncodeSize(n uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, n)
	return b
}

// DecodeSize decodes a DESCRIPTOR payload produced by EncodeSize.
func DecodeSize(payload []byte) uint64 {
	var b [8]byte
	copy(b[:], payload)
	return binary.LittleEndian.Uint64(b[:])
}
