// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock is returned by Conn.Recv when a deadline elapses without a
// matching frame arriving. It re-exports iox.ErrWouldBlock the same way
// the teacher's framer.go re-exports it, so callers never import iox
// directly to perform an errors.Is check.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrUnsupportedPlatform is returned by Open on operating systems that
// don't support AF_PACKET raw sockets.
var ErrUnsupportedPlatform = errors.New("transport: raw link-layer sockets are not supported on this platform")
