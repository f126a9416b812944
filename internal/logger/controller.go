package logger

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/SyntropyNet/syntropy-pinger/internal/env"
)

const cmd = "LOGGER"

type loggerMessage struct {
	ID        string `json:"id"`
	MsgType   string `json:"type"`
	Timestamp string `json:"executed_at,omitempty"`
	Data      struct {
		Level   string `json:"severity"`
		Message string `json:"message"`
	} `json:"data"`
}

type controllerLogger struct {
	wr    io.Writer
	level string
}

// NewControllerWriter wraps log lines into controller JSON messages.
// Pass the result to New or SetupGlobalLogger.
func NewControllerWriter(w io.Writer) io.Writer {
	return &controllerLogger{wr: w}
}

func (l *controllerLogger) withLevel(level int) *controllerLogger {
	return &controllerLogger{wr: l.wr, level: logLevelString(level)}
}

func (l *controllerLogger) Write(b []byte) (n int, err error) {
	msg := loggerMessage{
		ID:        env.MessageDefaultID,
		MsgType:   cmd,
		Timestamp: time.Now().Format(env.TimeFormat),
	}

	msg.Data.Message = strings.TrimRight(string(b), "\n")
	msg.Data.Level = l.level
	raw, err := json.Marshal(msg)
	if err != nil {
		return 0, err
	}

	if _, err = l.wr.Write(raw); err != nil {
		return 0, err
	}
	return len(b), nil
}
