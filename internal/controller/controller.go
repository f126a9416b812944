// Controller reports probe results to a remote websocket controller
package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/SyntropyNet/syntropy-pinger/internal/logger"
	"github.com/SyntropyNet/syntropy-pinger/pkg/state"
	"github.com/gorilla/websocket"
)

const pkgName = "Controller. "

type connState uint32

const (
	stopped connState = iota
	running
)

var ErrNotRunning = errors.New("controller is not running")

type Config struct {
	URL       string
	Token     string
	AgentName string
	Version   string
}

// Controller is a write-only websocket connection
type Controller struct {
	sync.Mutex
	state state.StateMachine[connState]
	ws    *websocket.Conn
}

// Dial connects to controller. URL without scheme defaults to wss.
func Dial(ctx context.Context, cfg Config) (*Controller, error) {
	addr := cfg.URL
	if !strings.Contains(addr, "://") {
		addr = (&url.URL{Scheme: "wss", Host: addr, Path: "/"}).String()
	}

	headers := http.Header{}
	// Without these headers connection will be ignored silently
	headers.Set("authorization", cfg.Token)
	headers.Set("x-devicename", cfg.AgentName)
	headers.Set("x-devicestatus", "OK")
	headers.Set("x-agenttype", "Linux")
	headers.Set("x-agentversion", cfg.Version)

	ws, resp, err := websocket.DefaultDialer.DialContext(ctx, addr, headers)
	if err != nil {
		var httpCode int
		if resp != nil {
			httpCode = resp.StatusCode
		}
		return nil, fmt.Errorf("websocket dial %s: %w (HTTP: %d)", addr, err, httpCode)
	}
	logger.Debug().Println(pkgName, "connected to", addr)

	cc := &Controller{ws: ws}
	cc.state.SetState(running)
	return cc, nil
}

func (cc *Controller) Write(b []byte) (n int, err error) {
	if cc.state.GetState() != running {
		return 0, ErrNotRunning
	}

	// gorilla/websocket supports one concurrent writer only
	cc.Lock()
	defer cc.Unlock()

	err = cc.ws.WriteMessage(websocket.TextMessage, b)
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

// Close cleanly closes websocket connection
func (cc *Controller) Close() error {
	if !cc.state.ChangeState(running, stopped) {
		return ErrNotRunning
	}

	cc.Lock()
	defer cc.Unlock()

	err := cc.ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil {
		logger.Debug().Println(pkgName, "write close:", err)
	}
	return cc.ws.Close()
}
