// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package transport

// DefaultEtherType is the EtherType used to tag frames on the wire when
// none is configured. 0x88B5 is one of the two EtherTypes IEEE 802
// reserves for local experimentation, which keeps a raw socket bound with
// ETH_P_ALL from confusing our frames with ordinary IPv4/IPv6/ARP traffic
// sharing the same link.
const DefaultEtherType = 0x88B5

// BroadcastMAC is the destination address used when no peer address is
// configured, appropriate for the point-to-point link this protocol
// assumes (see spec Non-goals: no multi-peer multiplexing).
var BroadcastMAC = [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// Options configures a Conn.
type Options struct {
	EtherType uint16
	DestMAC   [6]byte
}

var defaultOptions = Options{
	EtherType: DefaultEtherType,
	DestMAC:   BroadcastMAC,
}

// Option configures Open, following the teacher's functional-options
// pattern (options.go in code.hybscloud.com/framer).
type Option func(*Options)

// WithEtherType overrides the EtherType frames are tagged with.
func WithEtherType(et uint16) Option {
	return func(o *Options) { o.EtherType = et }
}

// WithDestMAC overrides the destination hardware address frames are sent to.
func WithDestMAC(mac [6]byte) Option {
	return func(o *Options) { o.DestMAC = mac }
}
