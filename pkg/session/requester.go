// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"github.com/brineloop/l2xfer/pkg/wire"
)

// Type identifies which operation a session performs.
type Type uint8

const (
	TypeDownload Type = iota
	TypeLS
)

// Outcome summarizes how a Requester's Run finished.
type Outcome struct {
	// Completed is true when the session ran to a normal END.
	Completed bool
	// ServerError holds the responder's ERROR message, if one was received
	// instead of a normal handshake reply. When non-empty, Completed is
	// false and the requester already sent its acknowledging ACK.
	ServerError string
	// BytesReceived is the number of payload bytes delivered to Sink: DATA
	// bytes for a DOWNLOAD, entry-name bytes for an LS.
	BytesReceived uint64
}

// DiskSpaceChecker reports whether enough free space exists to accept a
// download of the given announced size. A nil checker disables the
// precheck (every DESCRIPTOR is accepted).
type DiskSpaceChecker func(requiredBytes uint64) bool

// Requester drives one LS or DOWNLOAD session as C5 describes: request,
// handshake, then a sliding-window receive loop producing exactly one
// ACK or NACK per window round.
type Requester struct {
	tp   Transport
	opts Options
	typ  Type
	name string
	sink Sink
	disk DiskSpaceChecker

	expectedIndex uint8
	windowSize    int
	skip          bool
	reply         wire.Frame
	completed     bool
	bytesReceived uint64
}

// NewRequester builds a Requester for typ. name is the DOWNLOAD filename
// (ignored for LS). sink receives DATA payloads or SHOW entries.
func NewRequester(tp Transport, typ Type, name string, sink Sink, opts ...Option) *Requester {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Requester{tp: tp, opts: o, typ: typ, name: name, sink: sink}
}

// WithDiskSpaceChecker installs a precheck run against a DOWNLOAD's
// announced DESCRIPTOR size before the requester accepts it.
func (r *Requester) WithDiskSpaceChecker(check DiskSpaceChecker) *Requester {
	r.disk = check
	return r
}

func ackFrame() wire.Frame {
	f, _ := wire.Encode(wire.TypeACK, 0, nil)
	return f
}

func nackFrame(index uint8) wire.Frame {
	f, _ := wire.Encode(wire.TypeNACK, index, nil)
	return f
}

func (r *Requester) buildRequest() wire.Frame {
	if r.typ == TypeDownload {
		f, _ := wire.Encode(wire.TypeDownload, 0, []byte(r.name))
		return f
	}
	f, _ := wire.Encode(wire.TypeLS, 0, nil)
	return f
}

// Run sends the initial request, performs the handshake, and then drives
// the window loop to completion.
func (r *Requester) Run() (Outcome, error) {
	req := r.buildRequest()
	for {
		if err := r.tp.Send(req); err != nil {
			return Outcome{}, err
		}
		f, err := r.tp.Recv(0)
		if err != nil {
			return Outcome{}, err
		}
		typ, idx, payload, derr := wire.Decode(f)
		if derr != nil {
			continue
		}

		if typ.IsError() {
			_ = r.tp.Send(ackFrame())
			return Outcome{ServerError: string(payload)}, nil
		}

		if r.typ == TypeLS && typ.IsAck() {
			break
		}

		if r.typ == TypeDownload && typ.IsDescriptor() {
			if idx != 0 {
				continue
			}
			size := wire.DecodeSize(payload)
			if r.disk != nil && !r.disk(size) {
				if err := r.tp.Send(nackFrame(r.expectedIndex)); err != nil {
					return Outcome{}, err
				}
				continue
			}
			if err := r.tp.Send(ackFrame()); err != nil {
				return Outcome{}, err
			}
			break
		}
		// Anything else at this stage is ignored; the request is resent.
	}

	if err := r.windowLoop(); err != nil {
		return Outcome{}, err
	}
	return Outcome{Completed: r.completed, BytesReceived: r.bytesReceived}, nil
}

// windowLoop implements C5's steady-state receive loop: window_size is 1
// for the first round after the handshake (the first SHOW for LS; for
// DOWNLOAD, whose DESCRIPTOR Run has already acknowledged, the first DATA
// frame) and WindowSize afterward.
func (r *Requester) windowLoop() error {
	r.windowSize = 1
	for !r.completed {
		if err := r.runRound(); err != nil {
			return err
		}
		r.windowSize = r.opts.WindowSize
	}
	return nil
}

func (r *Requester) runRound() error {
	r.skip = false
	r.reply = ackFrame()

	count := 0
	for count < r.windowSize {
		f, err := r.tp.Recv(0)
		if err != nil {
			return err
		}
		typ, idx, payload, derr := wire.Decode(f)
		if derr != nil {
			continue // framing error: silently dropped, not tallied
		}
		count++
		if r.skip {
			continue
		}
		r.dispatch(typ, idx, payload)
		if r.completed {
			break
		}
	}
	return r.tp.Send(r.reply)
}

func (r *Requester) dispatch(typ wire.MessageType, idx uint8, payload []byte) {
	switch {
	case typ.IsData():
		r.dispatchPayload(idx, payload, r.sink.WriteData)
	case typ.IsShow():
		r.dispatchPayload(idx, payload, func(p []byte) error { return r.sink.ShowEntry(string(p)) })
	case typ.IsDescriptor():
		if idx != 0 {
			r.armNack()
			return
		}
		r.armAck()
	case typ.IsEnd():
		r.completed = true
		r.armAck()
	default:
		r.armNack()
	}
}

func (r *Requester) dispatchPayload(idx uint8, payload []byte, deliver func([]byte) error) {
	if idx != r.expectedIndex {
		r.armNack()
		return
	}
	if err := deliver(payload); err != nil {
		r.armNack()
		return
	}
	if len(payload) > 0 {
		r.bytesReceived += uint64(len(payload))
	}
	r.expectedIndex = (r.expectedIndex + 1) % wire.ModIndex
	r.armAck()
}

func (r *Requester) armAck() {
	r.reply = ackFrame()
}

// armNack arms a NACK carrying the expected index and enters quiet mode
// for the remainder of this window round, per the sequence-error policy.
func (r *Requester) armNack() {
	r.reply = nackFrame(r.expectedIndex)
	r.skip = true
}
