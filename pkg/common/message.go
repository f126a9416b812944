package common

import (
	"time"

	"github.com/SyntropyNet/syntropy-pinger/internal/env"
)

// Generic message struct (common part for all messages)
type MessageHeader struct {
	ID        string `json:"id"`
	MsgType   string `json:"type"`
	Timestamp string `json:"executed_at,omitempty"`
}

// NewHeader creates a pinger initiated message header
func NewHeader(msgType string) MessageHeader {
	mh := MessageHeader{
		ID:      env.MessageDefaultID,
		MsgType: msgType,
	}
	mh.Now()
	return mh
}

func (mh *MessageHeader) Now() {
	mh.Timestamp = time.Now().Format(env.TimeFormat)
}
