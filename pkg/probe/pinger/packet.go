package pinger

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

const (
	offsetType     = 0
	offsetCode     = 1
	offsetChecksum = 2
	offsetID       = 4
	offsetSeq      = 6
)

// BuildEcho writes an echo request for the given protocol into buf.
// Whole buf is the packet: header followed by payload bytes.
// Replies are not correlated by identifier or sequence, so both are zero.
// buf is not modified if it is too small.
func BuildEcho(buf []byte, proto ProtocolVersion) error {
	minSize := MinPacketSize(proto)
	if minSize == 0 {
		return fmt.Errorf("%w: protocol %d", ErrInvalidInput, proto)
	}
	if len(buf) < minSize {
		return fmt.Errorf("%w: %s echo needs %d bytes, got %d",
			ErrBufferTooSmall, proto, minSize, len(buf))
	}

	switch proto {
	case ProtocolIpv4:
		buf[offsetType] = byte(ipv4.ICMPTypeEcho)
		buf[offsetCode] = 0
		binary.BigEndian.PutUint16(buf[offsetID:], 0)
		binary.BigEndian.PutUint16(buf[offsetSeq:], 0)
	case ProtocolIpv6:
		buf[offsetType] = byte(ipv6.ICMPTypeEchoRequest)
		buf[offsetCode] = 0
	}

	binary.BigEndian.PutUint16(buf[offsetChecksum:], 0)
	binary.BigEndian.PutUint16(buf[offsetChecksum:], Checksum(buf))

	return nil
}

// Checksum calculates Internet checksum (RFC 1071).
// Odd length data is padded with a zero byte.
func Checksum(b []byte) uint16 {
	var sum uint32

	for i := 0; i+1 < len(b); i += 2 {
		sum += uint32(b[i])<<8 | uint32(b[i+1])
	}
	if len(b)%2 == 1 {
		sum += uint32(b[len(b)-1]) << 8
	}

	for sum>>16 != 0 {
		sum = sum&0xffff + sum>>16
	}

	return ^uint16(sum)
}
