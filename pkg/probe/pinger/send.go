package pinger

import (
	"fmt"
	"net"
	"net/netip"
)

// Sender transmits prepared echo requests
type Sender struct {
	proto ProtocolVersion
	conn  RawConn
}

func (s *Sender) Proto() ProtocolVersion {
	return s.proto
}

// Send writes pkt to addr. Failures are not retried.
func (s *Sender) Send(pkt []byte, addr netip.Addr) error {
	if ProtocolOf(addr) != s.proto {
		return fmt.Errorf("%w: %s address %s on %s channel",
			ErrInvalidInput, ProtocolOf(addr), addr, s.proto)
	}

	dst := &net.IPAddr{IP: addr.Unmap().AsSlice(), Zone: addr.Zone()}
	if _, err := s.conn.WriteTo(pkt, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrSend, err)
	}

	return nil
}
