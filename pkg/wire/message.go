// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wire

// MessageType identifies the 5-bit type field carried in every frame header.
type MessageType uint8

// Message types, values fixed by the wire format.
const (
	TypeACK        MessageType = 0x00
	TypeNACK       MessageType = 0x01
	TypeLS         MessageType = 0x0A
	TypeDownload   MessageType = 0x0B
	TypeShow       MessageType = 0x10
	TypeDescriptor MessageType = 0x11
	TypeData       MessageType = 0x12
	TypeEnd        MessageType = 0x1E
	TypeError      MessageType = 0x1F
)

func (t MessageType) String() string {
	switch t {
	case TypeACK:
		return "ACK"
	case TypeNACK:
		return "NACK"
	case TypeLS:
		return "LS"
	case TypeDownload:
		return "DOWNLOAD"
	case TypeShow:
		return "SHOW"
	case TypeDescriptor:
		return "DESCRIPTOR"
	case TypeData:
		return "DATA"
	case TypeEnd:
		return "END"
	case TypeError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// IsAck reports whether t is TypeACK.
func (t MessageType) IsAck() bool { return t == TypeACK }

// IsNack reports whether t is TypeNACK.
func (t MessageType) IsNack() bool { return t == TypeNACK }

// IsLs reports whether t is TypeLS.
func (t MessageType) IsLs() bool { return t == TypeLS }

// IsDownload reports whether t is TypeDownload.
func (t MessageType) IsDownload() bool { return t == TypeDownload }

// IsShow reports whether t is TypeShow.
func (t MessageType) IsShow() bool { return t == TypeShow }

// IsDescriptor reports whether t is TypeDescriptor.
func (t MessageType) IsDescriptor() bool { return t == TypeDescriptor }

// IsData reports whether t is TypeData.
func (t MessageType) IsData() bool { return t == TypeData }

// IsEnd reports whether t is TypeEnd.
func (t MessageType) IsEnd() bool { return t == TypeEnd }

// IsError reports whether t is TypeError.
func (t MessageType) IsError() bool { return t == TypeError }

// IsRequest reports whether t opens a new session (LS or DOWNLOAD), the
// Go equivalent of the reference's iscontext() predicate.
func (t MessageType) IsRequest() bool { return t == TypeLS || t == TypeDownload }

// CarriesPayload reports whether a frame of this type carries a
// byte-stuffed content payload that must be unstuffed on decode.
func (t MessageType) CarriesPayload() bool {
	switch t {
	case TypeData, TypeShow, TypeError, TypeDownload, TypeDescriptor:
		return true
	default:
		return false
	}
}
