// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package crc8 computes the 8-bit checksum carried in the trailer of every
// wire frame exchanged between a requester and a responder.
package crc8

// Polynomial is the generator polynomial, CRC-8/SMBUS (x^8+x^2+x+1, no
// reflection, zero initial value). original_source/server/src/crc8.h only
// declares crc8(); no implementation body is present anywhere in the
// reference sources, so the polynomial is this package's own choice.
const Polynomial = 0x07

var table [256]byte

func init() {
	for i := 0; i < 256; i++ {
		c := byte(i)
		for j := 0; j < 8; j++ {
			if c&0x80 != 0 {
				c = (c << 1) ^ Polynomial
			} else {
				c <<= 1
			}
		}
		table[i] = c
	}
}

// Checksum returns the CRC-8 of data, starting from a zero register.
func Checksum(data []byte) byte {
	var c byte
	for _, b := range data {
		c = table[c^b]
	}
	return c
}

// Valid reports whether data checksums to want.
func Valid(data []byte, want byte) bool {
	return Checksum(data) == want
}
