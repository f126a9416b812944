package controller

import (
	"encoding/json"
	"io"

	"github.com/SyntropyNet/syntropy-pinger/internal/logger"
	"github.com/SyntropyNet/syntropy-pinger/pkg/common"
	"github.com/SyntropyNet/syntropy-pinger/pkg/probe"
)

const cmd = "PING_RESULT"

type pingResultEntry struct {
	IP       string  `json:"ip"`
	Seq      uint64  `json:"seq"`
	Received bool    `json:"received"`
	Rtt      *uint64 `json:"rtt_ms,omitempty"`
	AvgRtt   uint64  `json:"avg_rtt_ms"`
	Loss     float64 `json:"packet_loss"`
}

type pingResultMessage struct {
	common.MessageHeader
	Data pingResultEntry `json:"data"`
}

// Reporter sends every observation to controller
type Reporter struct {
	w io.Writer
}

func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) PingProcess(obs *probe.Observation) {
	msg := pingResultMessage{
		MessageHeader: common.NewHeader(cmd),
		Data: pingResultEntry{
			IP:       obs.Addr.String(),
			Seq:      obs.Seq,
			Received: obs.Received,
			AvgRtt:   obs.AvgRtt,
			Loss:     obs.Loss,
		},
	}

	if obs.Received {
		rtt := obs.Rtt
		msg.Data.Rtt = &rtt
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		logger.Error().Println(pkgName, "json marshal", err)
		return
	}

	// A failing controller must not break probing
	if _, err = r.w.Write(raw); err != nil {
		logger.Warning().Println(pkgName, cmd, err)
	}
}
