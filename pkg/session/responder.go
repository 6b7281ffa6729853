// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"errors"

	"github.com/brineloop/l2xfer/pkg/asset"
	"github.com/brineloop/l2xfer/pkg/transport"
	"github.com/brineloop/l2xfer/pkg/wire"
)

// Responder drives one LS or DOWNLOAD session from the serving side, as
// C6 describes: open the requested resource, send an initial reply, then
// run the fill/send/await-reply loop until the requester signals
// completion, finally running the finalization handshake.
type Responder struct {
	tp   Transport
	opts Options

	typ      Type
	producer Producer

	window     []wire.Frame
	windowFill int
	nextIndex  uint8
	end        bool
	completed  bool
	bytesSent  uint64
}

// NewResponder constructs a Responder bound to tp.
func NewResponder(tp Transport, opts ...Option) *Responder {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Responder{tp: tp, opts: o, window: make([]wire.Frame, o.WindowSize)}
}

// Open resolves reqPayload against root for typ and prepares the initial
// reply. It must be called once, before Serve.
func (r *Responder) Open(root asset.Root, typ Type, reqPayload []byte) error {
	r.typ = typ
	switch typ {
	case TypeDownload:
		f, size, err := root.OpenFile(string(reqPayload))
		if err != nil {
			return ErrResourceUnavailable
		}
		r.producer = newFileProducer(f)
		frame, encErr := wire.Encode(wire.TypeDescriptor, 0, wire.EncodeSize(uint64(size)))
		if encErr != nil {
			return encErr
		}
		r.window[0] = frame
		r.windowFill = 1
		r.nextIndex = 0 // the first DATA frame reuses index 0; DESCRIPTOR consumes no index (invariant 4)
		return nil
	case TypeLS:
		lister, err := root.List()
		if err != nil {
			return ErrResourceUnavailable
		}
		r.producer = newLsProducer(lister)
		return r.fillWindow(0)
	default:
		return ErrResourceUnavailable
	}
}

// InitialHandshakeFrame returns the single frame sent to accept an LS
// session before entering Serve's window loop (a bare ACK). DOWNLOAD has
// no equivalent: Serve's first sendWindow call sends the DESCRIPTOR
// already placed in window[0] by Open.
func (r *Responder) InitialHandshakeFrame() (wire.Frame, bool) {
	if r.typ == TypeLS {
		return ackFrame(), true
	}
	return wire.Frame{}, false
}

func (r *Responder) fillWindow(start int) error {
	limit := r.producer.FillLimit(len(r.window))
	i := start
	for ; i < limit; i++ {
		payload, eof, err := r.producer.Produce()
		if err != nil {
			return err
		}
		if payload == nil && eof {
			r.end = true
			break
		}
		f, encErr := wire.Encode(r.producer.MessageType(), r.nextIndex, payload)
		if encErr != nil {
			return encErr
		}
		r.window[i] = f
		r.bytesSent += uint64(len(payload))
		r.nextIndex = (r.nextIndex + 1) % wire.ModIndex
		if eof {
			r.end = true
			i++
			break
		}
	}
	r.windowFill = i
	if r.end && r.windowFill == 0 {
		// nothing left to send and nothing outstanding: the session ends
		// without another DATA/SHOW frame (an exact content-length multiple,
		// or a directory with nothing left to list).
		r.completed = true
	}
	return nil
}

func (r *Responder) findIndex(index uint8) (pos int, found bool) {
	for i := 0; i < r.windowFill; i++ {
		_, idx, _, err := wire.Decode(r.window[i])
		if err == nil && idx == index {
			return i, true
		}
	}
	return 0, false
}

func (r *Responder) onAck() error {
	if r.end {
		r.completed = true
		return nil
	}
	return r.fillWindow(0)
}

func (r *Responder) onNack(index uint8) error {
	pos, found := r.findIndex(index)
	if !found {
		if r.end {
			r.completed = true
			return nil
		}
		return r.fillWindow(0)
	}
	if pos == 0 {
		return nil // resend unchanged
	}
	copy(r.window[0:r.windowFill-pos], r.window[pos:r.windowFill])
	r.windowFill -= pos
	if r.end {
		return nil
	}
	return r.fillWindow(r.windowFill)
}

// Serve runs the fill/send/await-reply loop until the session completes,
// then runs the finalization handshake and closes the producer.
func (r *Responder) Serve() error {
	defer r.producer.Close()

	for !r.completed {
		if err := r.sendWindow(); err != nil {
			return err
		}
		f, err := r.tp.Recv(r.opts.ReplyTimeout)
		if err != nil {
			if errors.Is(err, transport.ErrWouldBlock) {
				continue // timeout: resend the window unchanged
			}
			return err
		}
		typ, idx, _, derr := wire.Decode(f)
		if derr != nil {
			continue
		}
		switch {
		case typ.IsAck():
			if err := r.onAck(); err != nil {
				return err
			}
		case typ.IsNack():
			if err := r.onNack(idx); err != nil {
				return err
			}
		default:
			// unexpected reply type: ignored, window resent next round
		}
	}

	return r.finalize(wire.TypeEnd, nil)
}

func (r *Responder) sendWindow() error {
	for i := 0; i < r.windowFill; i++ {
		if err := r.tp.Send(r.window[i]); err != nil {
			return err
		}
	}
	return nil
}

// finalize sends typ/payload up to FinalizeAttempts times, waiting
// ReplyTimeout for a confirming ACK between attempts, matching
// process_context_end's DELTA-bounded retry loop.
func (r *Responder) finalize(typ wire.MessageType, payload []byte) error {
	frame, err := wire.Encode(typ, 0, payload)
	if err != nil {
		return err
	}
	for attempt := 0; attempt < r.opts.FinalizeAttempts; attempt++ {
		if err := r.tp.Send(frame); err != nil {
			return err
		}
		f, err := r.tp.Recv(r.opts.ReplyTimeout)
		if err != nil {
			if errors.Is(err, transport.ErrWouldBlock) {
				continue
			}
			return err
		}
		if t, _, _, derr := wire.Decode(f); derr == nil && t.IsAck() {
			return nil
		}
	}
	return ErrAborted
}

// Reject runs the finalization handshake with an ERROR frame, used when
// Open fails.
func (r *Responder) Reject(message string) error {
	return r.finalize(wire.TypeError, []byte(message))
}
