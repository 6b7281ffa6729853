// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package transport

// Open is unavailable outside Linux: AF_PACKET raw sockets are a
// Linux-specific facility, and original_source/{client,server}/src/socket.c
// assumes the same.
func Open(iface string, opts ...Option) (Conn, error) {
	return nil, ErrUnsupportedPlatform
}
