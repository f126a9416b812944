package pinger

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

type ReplyEvent int

const (
	TimedOut ReplyEvent = iota
	Received
)

func (re ReplyEvent) String() string {
	if re == Received {
		return "received"
	}
	return "timed out"
}

// Receiver is receiving side of a Channel
type Receiver struct {
	proto ProtocolVersion
	conn  RawConn
}

func (r *Receiver) Proto() ProtocolVersion {
	return r.proto
}

// Waiter waits for echo replies on a Receiver.
// Its address family is always the one of the receiver it was made from.
type Waiter struct {
	proto ProtocolVersion
	conn  RawConn
	buf   []byte
}

func NewWaiter(r *Receiver) *Waiter {
	return &Waiter{
		proto: r.proto,
		conn:  r.conn,
		buf:   make([]byte, replyBufferSize),
	}
}

func (w *Waiter) Proto() ProtocolVersion {
	return w.proto
}

// Wait blocks until an echo reply arrives or timeout elapses.
// Timeout is a normal outcome and is not reported as an error.
// Other ICMP messages are skipped without extending the deadline.
func (w *Waiter) Wait(timeout time.Duration) (ReplyEvent, error) {
	if err := w.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return TimedOut, fmt.Errorf("%w: %w", ErrIO, err)
	}

	for {
		n, _, err := w.conn.ReadFrom(w.buf)
		if err != nil {
			if isTimeout(err) {
				return TimedOut, nil
			}
			return TimedOut, fmt.Errorf("%w: %w", ErrIO, err)
		}

		var match bool
		switch w.proto {
		case ProtocolIpv4:
			match = isEchoReply(ProtocolICMP, ipv4.ICMPTypeEchoReply, w.buf[:n])
		case ProtocolIpv6:
			match = isEchoReply(ProtocolIPv6ICMP, ipv6.ICMPTypeEchoReply, w.buf[:n])
		}

		if match {
			return Received, nil
		}
	}
}

func isEchoReply(proto int, want icmp.Type, b []byte) bool {
	m, err := icmp.ParseMessage(proto, b)
	if err != nil {
		return false
	}
	return m.Type == want
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var neterr net.Error
	return errors.As(err, &neterr) && neterr.Timeout()
}
