package exporter

import (
	"sync"

	"github.com/SyntropyNet/syntropy-pinger/pkg/probe"
	"github.com/prometheus/client_golang/prometheus"
)

type destInfo struct {
	sent     uint64
	received uint64
	lastRtt  uint64
	avgRtt   uint64
	loss     float64
}

// Collector keeps latest probe results per destination.
// It is a probe.PingClient and a prometheus.Collector.
type Collector struct {
	sync.Mutex
	entries map[string]*destInfo
}

func NewCollector() *Collector {
	return &Collector{
		entries: make(map[string]*destInfo),
	}
}

func (c *Collector) PingProcess(obs *probe.Observation) {
	c.Lock()
	defer c.Unlock()

	key := obs.Addr.String()
	entry, ok := c.entries[key]
	if !ok {
		entry = &destInfo{}
		c.entries[key] = entry
	}

	entry.sent++
	if obs.Received {
		entry.received++
		entry.lastRtt = obs.Rtt
	}
	entry.avgRtt = obs.AvgRtt
	entry.loss = obs.Loss
}

var (
	labels      = []string{"destination"}
	descLatency = prometheus.NewDesc(
		"pinger_latency_ms",
		"Average round trip time to destination",
		labels, nil,
	)
	descLoss = prometheus.NewDesc(
		"pinger_packet_loss",
		"Packet loss ratio to destination",
		labels, nil,
	)
	descSent = prometheus.NewDesc(
		"pinger_packets_sent_total",
		"Echo requests sent to destination",
		labels, nil,
	)
	descReceived = prometheus.NewDesc(
		"pinger_packets_received_total",
		"Echo replies received from destination",
		labels, nil,
	)
	descLastRtt = prometheus.NewDesc(
		"pinger_last_rtt_ms",
		"Last received round trip time to destination",
		labels, nil,
	)
)

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.Lock()
	defer c.Unlock()

	for dst, entry := range c.entries {
		ch <- prometheus.MustNewConstMetric(descLatency, prometheus.GaugeValue, float64(entry.avgRtt), dst)
		ch <- prometheus.MustNewConstMetric(descLoss, prometheus.GaugeValue, entry.loss, dst)
		ch <- prometheus.MustNewConstMetric(descSent, prometheus.CounterValue, float64(entry.sent), dst)
		ch <- prometheus.MustNewConstMetric(descReceived, prometheus.CounterValue, float64(entry.received), dst)
		ch <- prometheus.MustNewConstMetric(descLastRtt, prometheus.GaugeValue, float64(entry.lastRtt), dst)
	}
}
