package pinger

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"github.com/SyntropyNet/syntropy-pinger/internal/logger"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
	"golang.org/x/sys/unix"
)

const pkgName = "Pinger. "

// RawConn is the part of a raw ICMP socket the channel uses.
// *net.IPConn satisfies it.
type RawConn interface {
	WriteTo(b []byte, dst net.Addr) (int, error)
	ReadFrom(b []byte) (int, net.Addr, error)
	SetReadDeadline(t time.Time) error
	Close() error
}

// NetworkTransport hides platform specific raw socket mechanics
type NetworkTransport interface {
	Listen(ctx context.Context, proto ProtocolVersion) (RawConn, error)
	SetTTL(conn RawConn, ttl int) error
}

// RawTransport opens privileged raw ICMP sockets.
// Kernel side receive buffer is limited to RecvBufferSize and
// the kernel is asked to deliver only echo replies.
type RawTransport struct{}

func (RawTransport) Listen(ctx context.Context, proto ProtocolVersion) (RawConn, error) {
	var network, address string
	switch proto {
	case ProtocolIpv4:
		network, address = "ip4:icmp", "0.0.0.0"
	case ProtocolIpv6:
		network, address = "ip6:ipv6-icmp", "::"
	default:
		return nil, fmt.Errorf("%w: protocol %d", ErrInvalidInput, proto)
	}

	lc := net.ListenConfig{Control: setRecvBuffer}
	pc, err := lc.ListenPacket(ctx, network, address)
	if err != nil {
		return nil, err
	}

	conn, ok := pc.(*net.IPConn)
	if !ok {
		pc.Close()
		return nil, fmt.Errorf("unexpected connection type %T", pc)
	}

	// ICMP filters are Linux only. Replies are type checked on receive anyway.
	if err := setEchoReplyFilter(conn, proto); err != nil {
		logger.Debug().Println(pkgName, proto, "icmp filter not installed:", err)
	}

	return conn, nil
}

func (RawTransport) SetTTL(conn RawConn, ttl int) error {
	pc, ok := conn.(net.PacketConn)
	if !ok {
		return fmt.Errorf("%w: connection %T does not support TTL", ErrInvalidInput, conn)
	}
	return ipv4.NewPacketConn(pc).SetTTL(ttl)
}

func setRecvBuffer(network, address string, rc syscall.RawConn) error {
	var sockErr error
	err := rc.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, RecvBufferSize)
	})
	if err != nil {
		return err
	}
	return sockErr
}

func setEchoReplyFilter(conn *net.IPConn, proto ProtocolVersion) error {
	if proto == ProtocolIpv4 {
		var f ipv4.ICMPFilter
		f.SetAll(true)
		f.Accept(ipv4.ICMPTypeEchoReply)
		return ipv4.NewPacketConn(conn).SetICMPFilter(&f)
	}

	var f ipv6.ICMPFilter
	f.SetAll(true)
	f.Accept(ipv6.ICMPTypeEchoReply)
	return ipv6.NewPacketConn(conn).SetICMPFilter(&f)
}

// Channel is a raw socket bound to a single address family.
// Sender and Receiver share the socket and must not be used concurrently
// from several goroutines.
type Channel struct {
	Sender   *Sender
	Receiver *Receiver

	proto ProtocolVersion
	conn  RawConn
}

// Open creates a channel for proto. TTL is applied to IPv4 only,
// IPv6 always uses the platform default hop limit.
func Open(ctx context.Context, transport NetworkTransport, proto ProtocolVersion, ttl int) (*Channel, error) {
	if MinPacketSize(proto) == 0 {
		return nil, fmt.Errorf("%w: protocol %d", ErrInvalidInput, proto)
	}

	conn, err := transport.Listen(ctx, proto)
	if err != nil {
		return nil, openError(err)
	}

	if proto == ProtocolIpv4 {
		if err = transport.SetTTL(conn, ttl); err != nil {
			conn.Close()
			return nil, openError(err)
		}
	}

	logger.Debug().Println(pkgName, proto, "channel opened, ttl", ttl)

	return &Channel{
		Sender:   &Sender{proto: proto, conn: conn},
		Receiver: &Receiver{proto: proto, conn: conn},
		proto:    proto,
		conn:     conn,
	}, nil
}

func openError(err error) error {
	if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	if errors.Is(err, ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrChannelOpen, err)
}

func (ch *Channel) Proto() ProtocolVersion {
	return ch.proto
}

func (ch *Channel) Close() error {
	return ch.conn.Close()
}
