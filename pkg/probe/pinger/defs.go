package pinger

import (
	"errors"
	"net/netip"
)

const (
	ProtocolICMP     = 1
	ProtocolIPv6ICMP = 58

	// Echo header sizes. IPv4 carries identifier and sequence,
	// IPv6 echo in this design carries type, code and checksum only.
	MinPacketSizeIPv4 = 8
	MinPacketSizeIPv6 = 4

	// DefaultPacketSize is echo header plus zeroed payload
	DefaultPacketSize = 16

	// RecvBufferSize is kernel side socket receive buffering (SO_RCVBUF)
	RecvBufferSize = 4096

	// largest reply we are interested in reading
	replyBufferSize = 1500
)

type ProtocolVersion int

const (
	ProtocolIpv4 = ProtocolVersion(4)
	ProtocolIpv6 = ProtocolVersion(6)
)

func (pv ProtocolVersion) String() string {
	switch pv {
	case ProtocolIpv4:
		return "IPv4"
	case ProtocolIpv6:
		return "IPv6"
	default:
		return "unknown"
	}
}

// ProtocolOf returns address family of a destination.
// IPv4-mapped IPv6 addresses are treated as IPv4.
func ProtocolOf(addr netip.Addr) ProtocolVersion {
	if addr.Unmap().Is4() {
		return ProtocolIpv4
	}
	return ProtocolIpv6
}

// MinPacketSize returns the smallest buffer an echo request fits into
func MinPacketSize(proto ProtocolVersion) int {
	switch proto {
	case ProtocolIpv4:
		return MinPacketSizeIPv4
	case ProtocolIpv6:
		return MinPacketSizeIPv6
	default:
		return 0
	}
}

var (
	ErrBufferTooSmall   = errors.New("packet buffer too small")
	ErrChannelOpen      = errors.New("could not open channel")
	ErrPermissionDenied = errors.New("permission denied")
	ErrSend             = errors.New("send failed")
	ErrIO               = errors.New("receive failed")
	ErrInvalidInput     = errors.New("invalid input")
)
