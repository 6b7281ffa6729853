// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"time"

	"github.com/brineloop/l2xfer/pkg/wire"
)

// Transport is the frame-level collaborator a Requester or Responder is
// driven through. It mirrors pkg/transport.Conn structurally so the real
// transport.Conn satisfies it without an adapter, while letting tests
// substitute a scripted in-memory fake.
type Transport interface {
	Send(f wire.Frame) error
	Recv(timeout time.Duration) (wire.Frame, error)
}
