package probe

import (
	"context"
	"errors"
	"net/netip"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SyntropyNet/syntropy-pinger/internal/logger"
	"github.com/SyntropyNet/syntropy-pinger/pkg/probe/pingdata"
	"github.com/SyntropyNet/syntropy-pinger/pkg/probe/pinger"
	"github.com/SyntropyNet/syntropy-pinger/pkg/scontext"
	"github.com/SyntropyNet/syntropy-pinger/pkg/slock"
	"github.com/SyntropyNet/syntropy-pinger/pkg/state"
)

// Prober sends echo requests to a single destination one after another
// and accumulates statistics.
type Prober struct {
	sync.RWMutex
	stats pingdata.PingStats
	seq   uint64

	state   state.StateMachine[State]
	lock    slock.AtomicServiceLock
	ctx     *scontext.StartStopContext
	stopped atomic.Bool

	dst     netip.Addr
	cfg     Config
	ch      *pinger.Channel
	waiter  *pinger.Waiter
	pkt     []byte
	clients []PingClient
}

// New opens a channel for dst address family. Channel setup errors are fatal.
func New(ctx context.Context, transport pinger.NetworkTransport, dst netip.Addr,
	cfg Config, clients ...PingClient) (*Prober, error) {
	if !dst.IsValid() {
		return nil, pinger.ErrInvalidInput
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	dst = dst.Unmap()
	ch, err := pinger.Open(ctx, transport, pinger.ProtocolOf(dst), cfg.TTL)
	if err != nil {
		return nil, err
	}

	p := &Prober{
		ctx:     scontext.New(ctx),
		dst:     dst,
		cfg:     cfg,
		ch:      ch,
		waiter:  pinger.NewWaiter(ch.Receiver),
		pkt:     make([]byte, cfg.PacketSize),
		clients: clients,
	}
	p.state.SetState(StateIdle)

	return p, nil
}

// Run blocks until count is reached, context is cancelled, Stop is called
// or a fatal error happens. Stop conditions are checked between cycles only,
// thus shutdown may take up to reply timeout.
func (p *Prober) Run() error {
	if !p.lock.TryLock() {
		return ErrRunning
	}
	defer p.lock.TryUnlock()

	ctx, err := p.ctx.Start()
	if err != nil {
		if errors.Is(err, scontext.ErrParentStopped) {
			p.state.SetState(StateStopped)
			return nil
		}
		return err
	}
	defer p.ctx.Stop()
	defer p.state.SetState(StateStopped)

	logger.Debug().Println(pkgName, "probing", p.dst, p.cfg)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		if p.stopped.Load() || ctx.Err() != nil {
			return nil
		}

		if err := p.cycle(); err != nil {
			logger.Error().Println(pkgName, p.dst, err)
			return err
		}

		if p.countReached() {
			return nil
		}

		// timer is always fired and drained here, so Reset is safe
		if timer == nil {
			timer = time.NewTimer(p.cfg.Interval)
		} else {
			timer.Reset(p.cfg.Interval)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}

func (p *Prober) cycle() error {
	p.state.SetState(StateSending)
	if err := pinger.BuildEcho(p.pkt, p.ch.Proto()); err != nil {
		return err
	}

	sent := time.Now()
	if err := p.ch.Sender.Send(p.pkt, p.dst); err != nil {
		return err
	}

	p.state.SetState(StateAwaitingReply)
	event, err := p.waiter.Wait(p.cfg.Timeout)
	if err != nil {
		return err
	}
	rtt := time.Since(sent)

	p.Lock()
	p.seq++
	obs := Observation{
		Addr: p.dst,
		Seq:  p.seq,
	}
	if event == pinger.Received {
		p.stats.Received(rtt)
		obs.Received = true
		obs.Rtt = uint64(rtt.Milliseconds())
	} else {
		p.stats.Lost()
	}
	obs.AvgRtt = p.stats.AvgRtt()
	obs.Loss = p.stats.Loss()
	p.Unlock()

	p.state.SetState(StateRecorded)
	logger.Debug().Println(pkgName, p.dst, "seq", obs.Seq, event, rtt)

	for _, c := range p.clients {
		c.PingProcess(&obs)
	}

	return nil
}

func (p *Prober) countReached() bool {
	if p.cfg.Count == 0 {
		return false
	}
	p.RLock()
	defer p.RUnlock()
	return p.stats.Sent() >= p.cfg.Count
}

// Stop asks prober to terminate after the current cycle.
// Stop is permanent: Run called after Stop returns immediately.
func (p *Prober) Stop() {
	p.stopped.Store(true)
	p.ctx.Stop()
}

// Stats returns a snapshot of accumulated statistics
func (p *Prober) Stats() pingdata.PingStats {
	p.RLock()
	defer p.RUnlock()
	return p.stats
}

func (p *Prober) State() State {
	return p.state.GetState()
}

func (p *Prober) Destination() netip.Addr {
	return p.dst
}

// Close releases the channel. Must not be called while Run is active.
func (p *Prober) Close() error {
	return p.ch.Close()
}
