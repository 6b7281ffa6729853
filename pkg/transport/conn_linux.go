// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package transport

import (
	"errors"
	"net"
	"time"

	"golang.org/x/sys/unix"

	"github.com/brineloop/l2xfer/pkg/wire"
)

const ethHeaderLen = 14

// conn is a promiscuous AF_PACKET/SOCK_RAW socket bound to one interface,
// the Go equivalent of socket_create()/socket_close() in
// original_source/{client,server}/src/socket.c.
type conn struct {
	fd      int
	ifindex int
	srcMAC  [6]byte
	opts    Options
}

// Open binds a raw socket to iface in promiscuous mode and returns a Conn
// ready to exchange wire.Frame values with any other host on the segment.
func Open(iface string, opts ...Option) (Conn, error) {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}

	ifi, err := net.InterfaceByName(iface)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(htons(unix.ETH_P_ALL)))
	if err != nil {
		return nil, err
	}

	addr := &unix.SockaddrLinklayer{
		Protocol: htons(unix.ETH_P_ALL),
		Ifindex:  ifi.Index,
	}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return nil, err
	}

	mreq := unix.PacketMreq{
		Ifindex: int32(ifi.Index),
		Type:    unix.PACKET_MR_PROMISC,
	}
	if err := unix.SetsockoptPacketMreq(fd, unix.SOL_PACKET, unix.PACKET_ADD_MEMBERSHIP, &mreq); err != nil {
		unix.Close(fd)
		return nil, err
	}

	var srcMAC [6]byte
	copy(srcMAC[:], ifi.HardwareAddr)

	return &conn{fd: fd, ifindex: ifi.Index, srcMAC: srcMAC, opts: o}, nil
}

func htons(v int) uint16 {
	return uint16(v<<8) | uint16(v>>8)
}

func (c *conn) Close() error {
	return unix.Close(c.fd)
}

func (c *conn) Send(f wire.Frame) error {
	buf := make([]byte, ethHeaderLen+wire.FrameSize)
	copy(buf[0:6], c.opts.DestMAC[:])
	copy(buf[6:12], c.srcMAC[:])
	buf[12] = byte(c.opts.EtherType >> 8)
	buf[13] = byte(c.opts.EtherType)
	copy(buf[ethHeaderLen:], f[:])

	to := &unix.SockaddrLinklayer{
		Ifindex:  c.ifindex,
		Halen:    6,
		Protocol: htons(unix.ETH_P_ALL),
	}
	copy(to.Addr[:6], c.opts.DestMAC[:])

	return unix.Sendto(c.fd, buf, 0, to)
}

func (c *conn) Recv(timeout time.Duration) (wire.Frame, error) {
	if timeout <= 0 {
		if err := c.setRecvTimeout(0); err != nil {
			return wire.Frame{}, err
		}
		return c.recvOne()
	}

	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return wire.Frame{}, ErrWouldBlock
		}
		if err := c.setRecvTimeout(remaining); err != nil {
			return wire.Frame{}, err
		}
		f, err := c.recvOne()
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
				return wire.Frame{}, ErrWouldBlock
			}
			return wire.Frame{}, err
		}
		if f[0] == wire.Marker {
			return f, nil
		}
		// Marker mismatch: discard and keep polling until the deadline.
	}
}

func (c *conn) setRecvTimeout(d time.Duration) error {
	tv := unix.NsecToTimeval(d.Nanoseconds())
	return unix.SetsockoptTimeval(c.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv)
}

func (c *conn) recvOne() (wire.Frame, error) {
	buf := make([]byte, ethHeaderLen+wire.FrameSize)
	for {
		n, _, err := unix.Recvfrom(c.fd, buf, 0)
		if err != nil {
			return wire.Frame{}, err
		}
		if n < ethHeaderLen {
			continue
		}
		etherType := uint16(buf[12])<<8 | uint16(buf[13])
		if etherType != c.opts.EtherType {
			continue
		}
		if n < ethHeaderLen+wire.FrameSize {
			continue
		}
		var f wire.Frame
		copy(f[:], buf[ethHeaderLen:ethHeaderLen+wire.FrameSize])
		return f, nil
	}
}
