package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/SyntropyNet/syntropy-pinger/internal/env"
	"github.com/SyntropyNet/syntropy-pinger/pkg/probe"
	"github.com/gorilla/websocket"
)

func TestReporterMessage(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.PingProcess(&probe.Observation{
		Addr:     netip.MustParseAddr("192.0.2.1"),
		Seq:      2,
		Received: true,
		Rtt:      15,
		AvgRtt:   12,
		Loss:     0.5,
	})

	var msg map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &msg); err != nil {
		t.Fatalf("Invalid json: %s", err)
	}

	if msg["id"] != env.MessageDefaultID || msg["type"] != cmd {
		t.Errorf("Invalid header %v", msg)
	}
	if _, err := time.Parse(env.TimeFormat, msg["executed_at"].(string)); err != nil {
		t.Errorf("Invalid timestamp: %s", err)
	}

	data := msg["data"].(map[string]interface{})
	if data["ip"] != "192.0.2.1" || data["rtt_ms"] != 15.0 || data["avg_rtt_ms"] != 12.0 ||
		data["packet_loss"] != 0.5 || data["received"] != true || data["seq"] != 2.0 {
		t.Errorf("Invalid data %v", data)
	}
}

func TestReporterTimeout(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).PingProcess(&probe.Observation{
		Addr: netip.MustParseAddr("2001:db8::1"),
		Loss: 1,
	})

	if strings.Contains(buf.String(), "rtt_ms\"") {
		t.Errorf("Timed out probe must not carry rtt: %s", buf.String())
	}
}

type failWriter struct{}

func (failWriter) Write(b []byte) (int, error) {
	return 0, errors.New("broken")
}

func TestReporterWriteFailure(t *testing.T) {
	// must not panic
	NewReporter(failWriter{}).PingProcess(&probe.Observation{})
}

func TestDialWrite(t *testing.T) {
	received := make(chan []byte, 1)
	headers := make(chan http.Header, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_, msg, err := conn.ReadMessage()
		if err == nil {
			received <- msg
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	cc, err := Dial(context.Background(), Config{URL: url, Token: "secret", AgentName: "test"})
	if err != nil {
		t.Fatalf("Dial failed: %s", err)
	}

	h := <-headers
	if h.Get("authorization") != "secret" || h.Get("x-devicename") != "test" {
		t.Errorf("Missing headers %v", h)
	}

	if _, err := cc.Write([]byte("hello")); err != nil {
		t.Fatalf("Write failed: %s", err)
	}

	select {
	case msg := <-received:
		if string(msg) != "hello" {
			t.Errorf("Unexpected message %q", msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("Message not delivered")
	}

	if err := cc.Close(); err != nil {
		t.Errorf("Close failed: %s", err)
	}
	if err := cc.Close(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Second close expected ErrNotRunning, got %v", err)
	}
	if _, err := cc.Write([]byte("late")); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Write after close expected ErrNotRunning, got %v", err)
	}
}

func TestReporterZeroRtt(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).PingProcess(&probe.Observation{
		Addr:     netip.MustParseAddr("127.0.0.1"),
		Seq:      1,
		Received: true,
	})

	var msg pingResultMessage
	if err := json.Unmarshal(buf.Bytes(), &msg); err != nil {
		t.Fatalf("Invalid json: %s", err)
	}
	if msg.Data.Rtt == nil || *msg.Data.Rtt != 0 {
		t.Errorf("Received probe must carry rtt even if it is 0ms: %s", buf.String())
	}
}
