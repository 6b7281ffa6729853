// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package transport implements the raw link-layer frame transport that the
// CORE protocol (pkg/session) treats as an injected collaborator: it turns
// wire.Frame values into Ethernet frames on a promiscuous AF_PACKET raw
// socket and back, the Go equivalent of original_source/{client,server}/src/socket.c.
package transport

import (
	"time"

	"github.com/brineloop/l2xfer/pkg/wire"
)

// Conn is the frame-level transport C5/C6 sessions are driven through.
//
// Send transmits one frame. Recv waits up to timeout for a valid-marker
// frame: timeout<=0 blocks indefinitely and returns the first frame read
// off the link without marker filtering (matching pkgrecv_notimeout);
// timeout>0 polls, discarding frames whose marker byte isn't wire.Marker,
// and returns ErrWouldBlock once timeout elapses with nothing valid seen.
type Conn interface {
	Send(f wire.Frame) error
	Recv(timeout time.Duration) (wire.Frame, error)
	Close() error
}
