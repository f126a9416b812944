package report

import (
	"bytes"
	"net/netip"
	"testing"
	"time"

	"github.com/SyntropyNet/syntropy-pinger/pkg/probe"
	"github.com/SyntropyNet/syntropy-pinger/pkg/probe/pingdata"
)

func TestLine(t *testing.T) {
	tests := []struct {
		obs  probe.Observation
		want string
	}{
		{
			probe.Observation{Received: true, Rtt: 12, AvgRtt: 10, Loss: 0},
			"Response received: 12ms rtt, 10 average rtt, 0.00% total loss",
		},
		{
			probe.Observation{Received: false, AvgRtt: 20, Loss: 1.0 / 3},
			"Response timed out: 20 average rtt, 33.33% total loss",
		},
		{
			probe.Observation{Received: false, Loss: 1},
			"Response timed out: 0 average rtt, 100.00% total loss",
		},
	}

	for _, tt := range tests {
		if got := Line(&tt.obs); got != tt.want {
			t.Errorf("got %q, expected %q", got, tt.want)
		}
	}
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	addr := netip.MustParseAddr("192.0.2.7")
	c := NewConsole(&buf)

	var stats pingdata.PingStats
	stats.Received(10 * time.Millisecond)
	stats.Lost()

	c.Start(addr)
	c.PingProcess(&probe.Observation{Addr: addr, Received: true, Rtt: 10, AvgRtt: 10})
	c.Summary(addr, stats)

	want := "Sending pings to 192.0.2.7...\n" +
		"Response received: 10ms rtt, 10 average rtt, 0.00% total loss\n" +
		"--- 192.0.2.7 ping statistics ---\n" +
		"2 packets transmitted, 1 received, 50.00% packet loss, 10ms average rtt\n"
	if buf.String() != want {
		t.Errorf("Unexpected output:\n%s", buf.String())
	}
}
