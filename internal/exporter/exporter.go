// Exporter publishes probe results to Prometheus
package exporter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/SyntropyNet/syntropy-pinger/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	pkgName = "PrometheusExporter. "
	cmd     = "EXPORTER"

	httpTimeout = 5 * time.Second
)

// Exporter serves registered collectors on /metrics
type Exporter struct {
	port uint16
	reg  *prometheus.Registry
	addr net.Addr
}

func New(port uint16, collectors ...prometheus.Collector) (*Exporter, error) {
	e := &Exporter{
		port: port,
		reg:  prometheus.NewRegistry(),
	}

	for _, c := range collectors {
		if err := e.reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	return e, nil
}

func (e *Exporter) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.reg, promhttp.HandlerOpts{}))
	return mux
}

// Run binds the port and serves metrics in background until ctx is cancelled.
// Port 0 picks a free port, see Addr.
func (e *Exporter) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", e.port))
	if err != nil {
		return fmt.Errorf("%s listen: %w", cmd, err)
	}
	e.addr = ln.Addr()
	logger.Debug().Println(pkgName, "serving metrics on", e.addr)

	srv := &http.Server{
		Handler:      e.Handler(),
		ReadTimeout:  httpTimeout,
		WriteTimeout: httpTimeout,
	}

	go func() {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Println(pkgName, err)
		}
	}()

	go func() {
		<-ctx.Done()
		logger.Debug().Println(pkgName, "stopping", cmd)
		srv.Close()
	}()

	return nil
}

// Addr returns bound address. Valid after successful Run.
func (e *Exporter) Addr() net.Addr {
	return e.addr
}

func (e *Exporter) Name() string {
	return cmd
}
