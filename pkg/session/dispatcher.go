// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"errors"

	"github.com/brineloop/l2xfer/pkg/asset"
	"github.com/brineloop/l2xfer/pkg/wire"
)

// invalidOperationMessage is the ERROR payload sent when a request cannot
// be opened, matching server/src/main.c's ERROR_MSG.
const invalidOperationMessage = "Invalid Operation."

// ServeForever accepts one session at a time on tp: it blocks for a
// request frame (LS or DOWNLOAD), opens it against root, and runs that
// session to completion before accepting the next one, the Go equivalent
// of server/src/main.c's accept loop (C7). It returns the first session
// error other than ErrAborted (a transport error, or a failure reading the
// served asset).
func ServeForever(tp Transport, root asset.Root, opts ...Option) error {
	for {
		err := serveOne(tp, root, opts...)
		if err == nil || errors.Is(err, ErrAborted) {
			continue // a single failed or abandoned session never brings down the dispatcher
		}
		return err
	}
}

func serveOne(tp Transport, root asset.Root, opts ...Option) error {
	f, err := tp.Recv(0)
	if err != nil {
		return err
	}
	typ, _, payload, derr := wire.Decode(f)
	if derr != nil || !typ.IsRequest() {
		return nil // framing error or non-request frame: ignored
	}

	sessType := TypeLS
	if typ.IsDownload() {
		sessType = TypeDownload
	}

	r := NewResponder(tp, opts...)
	if err := r.Open(root, sessType, payload); err != nil {
		return r.Reject(invalidOperationMessage)
	}

	if ack, ok := r.InitialHandshakeFrame(); ok {
		if err := tp.Send(ack); err != nil {
			return err
		}
	}

	return r.Serve()
}
