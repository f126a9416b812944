package probe

import (
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/SyntropyNet/syntropy-pinger/internal/env"
	"github.com/SyntropyNet/syntropy-pinger/pkg/probe/pinger"
)

const pkgName = "Probe. "

var ErrRunning = errors.New("prober is already running")

type State uint32

const (
	StateIdle State = iota
	StateSending
	StateAwaitingReply
	StateRecorded
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateAwaitingReply:
		return "awaiting reply"
	case StateRecorded:
		return "recorded"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config controls probing session.
// Count 0 means probe until stopped.
type Config struct {
	TTL        int
	Timeout    time.Duration
	Interval   time.Duration
	Count      uint64
	PacketSize int
}

func DefaultConfig() Config {
	return Config{
		TTL:        env.DefaultTTL,
		Timeout:    env.DefaultTimeout,
		Interval:   env.ProbeInterval,
		PacketSize: pinger.DefaultPacketSize,
	}
}

// Replies are parsed as full echo messages, thus even IPv6 requests
// must leave room for identifier and sequence in the reply.
func (cfg *Config) validate() error {
	switch {
	case cfg.TTL < 0 || cfg.TTL > env.MaxTTL:
		return fmt.Errorf("%w: ttl %d", pinger.ErrInvalidInput, cfg.TTL)
	case cfg.Timeout <= 0:
		return fmt.Errorf("%w: timeout %s", pinger.ErrInvalidInput, cfg.Timeout)
	case cfg.Interval < 0:
		return fmt.Errorf("%w: interval %s", pinger.ErrInvalidInput, cfg.Interval)
	case cfg.PacketSize < pinger.MinPacketSizeIPv4:
		return fmt.Errorf("%w: packet size %d", pinger.ErrInvalidInput, cfg.PacketSize)
	}
	return nil
}

// Observation is a single probe cycle outcome.
// Rtt is set for received probes only. AvgRtt and Loss are session totals.
type Observation struct {
	Addr     netip.Addr
	Seq      uint64
	Received bool
	Rtt      uint64
	AvgRtt   uint64
	Loss     float64
}

// PingClient gets notified after every probe cycle.
// Implementations must not retain the observation pointer.
type PingClient interface {
	PingProcess(obs *Observation)
}
