package pingdata

import (
	"fmt"
	"time"
)

// Destination ping statistics.
// RTT is accounted in whole milliseconds for received probes only.
type PingStats struct {
	tx       uint64
	rx       uint64
	totalRtt uint64
}

// Reset statistics to zero values
func (s *PingStats) Reset() {
	s.tx = 0
	s.rx = 0
	s.totalRtt = 0
}

// Received accounts a probe that got its reply after rtt
func (s *PingStats) Received(rtt time.Duration) {
	s.tx++
	s.rx++
	s.totalRtt += uint64(rtt.Milliseconds())
}

// Lost accounts a timed out probe
func (s *PingStats) Lost() {
	s.tx++
}

func (s PingStats) Valid() bool {
	return s.tx > 0 && s.tx >= s.rx
}

// Sent returns transmitted probes count
func (s PingStats) Sent() uint64 {
	return s.tx
}

// Recv returns received replies count
func (s PingStats) Recv() uint64 {
	return s.rx
}

// TotalRtt returns sum of received probes RTT in miliseconds
func (s PingStats) TotalRtt() uint64 {
	return s.totalRtt
}

// AvgRtt returns average RTT in miliseconds, 0 if nothing was received
func (s PingStats) AvgRtt() uint64 {
	if s.rx == 0 {
		return 0
	}
	return s.totalRtt / s.rx
}

// Loss returns lost probes ratio [0..1]. No probes sent means no loss.
func (s PingStats) Loss() float64 {
	if s.tx == 0 {
		return 0
	}
	return 1 - float64(s.rx)/float64(s.tx)
}

// Latency returns average latency in miliseconds
func (s PingStats) Latency() float32 {
	if s.Valid() && s.rx > 0 {
		return float32(s.totalRtt) / float32(s.rx)
	}
	return 0
}

func (s PingStats) String() string {
	return fmt.Sprintf("tx=%d, rx=%d, totalRtt=%dms, avgRtt=%dms, loss=%.2f%%",
		s.tx, s.rx, s.totalRtt, s.AvgRtt(), s.Loss()*100)
}
