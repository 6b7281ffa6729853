// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"time"

	"github.com/brineloop/l2xfer/pkg/wire"
)

// Options configures a Requester or Responder, following the teacher's
// functional-options pattern (options.go in code.hybscloud.com/framer):
// W=5 and T_reply=5000ms are defaults here, not hardcoded constants.
type Options struct {
	WindowSize       int
	ReplyTimeout     time.Duration
	FinalizeAttempts int
}

var defaultOptions = Options{
	WindowSize:       wire.WindowSize,
	ReplyTimeout:     5 * time.Second,
	FinalizeAttempts: 40,
}

// Option configures a Requester or Responder.
type Option func(*Options)

// WithWindowSize overrides the steady-state sliding window width.
func WithWindowSize(n int) Option {
	return func(o *Options) { o.WindowSize = n }
}

// WithReplyTimeout overrides how long the responder waits for a reply
// before resending the current window, and how long the finalization
// handshake waits for a confirming ACK between retries.
func WithReplyTimeout(d time.Duration) Option {
	return func(o *Options) { o.ReplyTimeout = d }
}

// WithFinalizeAttempts overrides DELTA, the number of times the
// finalization handshake resends its END/ERROR frame before giving up.
func WithFinalizeAttempts(n int) Option {
	return func(o *Options) { o.FinalizeAttempts = n }
}
