package wire

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	f, err := Encode(TypeData, 7, []byte("hello world"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	typ, idx, payload, err := Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if typ != TypeData || idx != 7 {
		t.Fatalf("got type=%v index=%d", typ, idx)
	}
	if !bytes.Equal(payload, []byte("hello world")) {
		t.Fatalf("payload mismatch: %q", payload)
	}
}

func TestEncodeDecodeEmptyPayload(t *testing.T) {
	f, err := Encode(TypeACK, 0, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	typ, _, payload, err := Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if typ != TypeACK || len(payload) != 0 {
		t.Fatalf("expected empty ACK payload, got %q", payload)
	}
}

func TestDecodeBadMarker(t *testing.T) {
	f, _ := Encode(TypeACK, 0, nil)
	f[0] = 0x00
	if _, _, _, err := Decode(f); !errors.Is(err, ErrBadMarker) {
		t.Fatalf("expected ErrBadMarker, got %v", err)
	}
}

func TestDecodeBadCRC(t *testing.T) {
	f, _ := Encode(TypeData, 1, []byte("x"))
	f[FrameSize-2] ^= 0xFF
	if _, _, _, err := Decode(f); !errors.Is(err, ErrBadCRC) {
		t.Fatalf("expected ErrBadCRC, got %v", err)
	}
}

func TestByteStuffingRoundTrip(t *testing.T) {
	payload := []byte{0x01, Sentinel1, 0x02, Sentinel2, 0x03}
	f, err := Encode(TypeData, 0, payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	_, _, got, err := Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %v, want %v", got, payload)
	}
}

func TestStuffingDropsEscapeAtBoundary(t *testing.T) {
	// A sentinel as the very last allowed content byte has no room to
	// write its escape byte, so the escape is dropped per the stuffing
	// overflow rule (matching add_byte_to_pkg's bounds check).
	payload := make([]byte, ContentLen-1)
	for i := range payload {
		payload[i] = 0x05
	}
	payload = append(payload, Sentinel1)
	f, err := Encode(TypeData, 0, payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	size, _, _ := unpackHeader(f[1], f[2])
	if int(size) != ContentLen {
		t.Fatalf("expected content to fill exactly, got size=%d", size)
	}
}

func TestEncodeTooLong(t *testing.T) {
	payload := bytes.Repeat([]byte{0x05}, ContentLen+1)
	if _, err := Encode(TypeData, 0, payload); !errors.Is(err, ErrTooLong) {
		t.Fatalf("expected ErrTooLong, got %v", err)
	}
}

func TestUnstuffAsymmetricSkip(t *testing.T) {
	// The reference unstuffer skips the byte following a sentinel
	// unconditionally. Construct raw content where that byte is NOT the
	// StuffByte, and confirm it's still dropped.
	raw := []byte{Sentinel1, 0x42, 0x99}
	got := unstuff(raw)
	want := []byte{Sentinel1, 0x99}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

type scriptedReader struct {
	steps []struct {
		b   []byte
		err error
	}
	step, off int
}

func (s *scriptedReader) Read(p []byte) (int, error) {
	if s.step >= len(s.steps) {
		return 0, io.EOF
	}
	cur := s.steps[s.step]
	n := copy(p, cur.b[s.off:])
	s.off += n
	var err error
	if s.off >= len(cur.b) {
		err = cur.err
		s.step++
		s.off = 0
	}
	return n, err
}

func TestReadStuffedChunkFillsContent(t *testing.T) {
	data := bytes.Repeat([]byte{0x09}, ContentLen+10)
	r := bytes.NewReader(data)
	content, eof, err := ReadStuffedChunk(r)
	if err != nil {
		t.Fatalf("ReadStuffedChunk: %v", err)
	}
	if eof {
		t.Fatalf("did not expect eof on a full chunk")
	}
	if len(content) != ContentLen {
		t.Fatalf("got %d bytes, want %d", len(content), ContentLen)
	}
}

func TestReadStuffedChunkShortEOF(t *testing.T) {
	r := &scriptedReader{steps: []struct {
		b   []byte
		err error
	}{
		{b: []byte{0x01, 0x02, 0x03}, err: io.EOF},
	}}
	content, eof, err := ReadStuffedChunk(r)
	if err != nil {
		t.Fatalf("ReadStuffedChunk: %v", err)
	}
	if !eof {
		t.Fatalf("expected eof")
	}
	if !bytes.Equal(content, []byte{0x01, 0x02, 0x03}) {
		t.Fatalf("got %v", content)
	}
}

func TestReadStuffedChunkAtExactEOF(t *testing.T) {
	r := bytes.NewReader(nil)
	content, eof, err := ReadStuffedChunk(r)
	if err != nil {
		t.Fatalf("ReadStuffedChunk: %v", err)
	}
	if !eof || content != nil {
		t.Fatalf("expected (nil, true), got (%v, %v)", content, eof)
	}
}

func TestEncodeDecodeSizeRoundTrip(t *testing.T) {
	want := uint64(1<<40 + 17)
	got := DecodeSize(EncodeSize(want))
	if got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}
