// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

import "errors"

// Sentinel errors returned by the codec, following the teacher's
// package-level error-value convention (errors.go in code.hybscloud.com/framer).
var (
	// ErrBadMarker is returned when the first byte of a frame is not Marker.
	ErrBadMarker = errors.New("wire: bad marker byte")
	// ErrBadCRC is returned when a frame's trailer checksum does not match
	// the checksum computed over its header and content.
	ErrBadCRC = errors.New("wire: crc mismatch")
	// ErrTooLong is returned when a payload (after byte stuffing) cannot fit
	// in the 63-byte content area of a single frame.
	ErrTooLong = errors.New("wire: payload too long for one frame")
)
