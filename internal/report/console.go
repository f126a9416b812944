// Report prints probe results to a terminal
package report

import (
	"fmt"
	"io"
	"net/netip"
	"sync"

	"github.com/SyntropyNet/syntropy-pinger/pkg/probe"
	"github.com/SyntropyNet/syntropy-pinger/pkg/probe/pingdata"
)

// Console writes a line per probe cycle
type Console struct {
	sync.Mutex
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Start(addr netip.Addr) {
	c.Lock()
	defer c.Unlock()
	fmt.Fprintf(c.w, "Sending pings to %s...\n", addr)
}

func (c *Console) PingProcess(obs *probe.Observation) {
	c.Lock()
	defer c.Unlock()
	fmt.Fprintln(c.w, Line(obs))
}

// Summary prints session totals
func (c *Console) Summary(addr netip.Addr, stats pingdata.PingStats) {
	c.Lock()
	defer c.Unlock()
	fmt.Fprintf(c.w, "--- %s ping statistics ---\n", addr)
	fmt.Fprintf(c.w, "%d packets transmitted, %d received, %.2f%% packet loss, %dms average rtt\n",
		stats.Sent(), stats.Recv(), stats.Loss()*100, stats.AvgRtt())
}

// Line formats single observation
func Line(obs *probe.Observation) string {
	if obs.Received {
		return fmt.Sprintf("Response received: %dms rtt, %d average rtt, %.2f%% total loss",
			obs.Rtt, obs.AvgRtt, obs.Loss*100)
	}
	return fmt.Sprintf("Response timed out: %d average rtt, %.2f%% total loss",
		obs.AvgRtt, obs.Loss*100)
}
