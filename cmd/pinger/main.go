package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/SyntropyNet/syntropy-pinger/internal/config"
	"github.com/SyntropyNet/syntropy-pinger/internal/controller"
	"github.com/SyntropyNet/syntropy-pinger/internal/exporter"
	"github.com/SyntropyNet/syntropy-pinger/internal/logger"
	"github.com/SyntropyNet/syntropy-pinger/internal/report"
	"github.com/SyntropyNet/syntropy-pinger/internal/resolver"
	"github.com/SyntropyNet/syntropy-pinger/pkg/probe"
	"github.com/SyntropyNet/syntropy-pinger/pkg/probe/pinger"
)

const fullAppName = "Syntropy Pinger. "

type options struct {
	host    string
	ttl     int
	ttlSet  bool
	family  resolver.Family
	count   uint
	timeout int
	version bool
}

// parseArgs validates command line. Invalid usage is reported as ErrInvalidInput.
func parseArgs(args []string, output io.Writer) (*options, error) {
	var ttlShort, ttlLong string
	var only4, only6 bool
	opts := options{}

	fs := flag.NewFlagSet(fullAppName, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&ttlShort, "t", "", "Set the IPv4 time to live (0-255)")
	fs.StringVar(&ttlLong, "ttl", "", "Same as -t")
	fs.BoolVar(&only4, "4", false, "Use IPv4 only")
	fs.BoolVar(&only6, "6", false, "Use IPv6 only")
	fs.UintVar(&opts.count, "c", 0, "Stop after sending count probes (0 - unlimited)")
	fs.IntVar(&opts.timeout, "W", 0, "Time to wait for a reply, in milliseconds")
	fs.BoolVar(&opts.version, "version", false, "Show version and exit")
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: pinger [options] <address>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", pinger.ErrInvalidInput, err)
	}
	if opts.version {
		return &opts, nil
	}

	if only4 && only6 {
		return nil, fmt.Errorf("%w: the '-4' and '-6' flags cannot be used together", pinger.ErrInvalidInput)
	}
	switch {
	case only4:
		opts.family = resolver.FamilyV4
	case only6:
		opts.family = resolver.FamilyV6
	}

	ttlStr := ttlShort
	if ttlLong != "" {
		ttlStr = ttlLong
	}
	if ttlStr != "" {
		ttl, err := config.ParseTTL(ttlStr)
		if err != nil {
			return nil, err
		}
		opts.ttl = ttl
		opts.ttlSet = true
	}

	if opts.timeout < 0 {
		return nil, fmt.Errorf("%w: timeout %d", pinger.ErrInvalidInput, opts.timeout)
	}

	if fs.NArg() != 1 {
		return nil, fmt.Errorf("%w: exactly one address is required", pinger.ErrInvalidInput)
	}
	opts.host = fs.Arg(0)

	return &opts, nil
}

func applyOptions(opts *options) {
	if opts.ttlSet {
		config.SetTTL(opts.ttl)
	}
	if opts.count > 0 {
		config.SetCount(opts.count)
	}
	config.SetTimeout(opts.timeout)
}

func probeConfig() probe.Config {
	cfg := probe.DefaultConfig()
	cfg.TTL = config.GetTTL()
	cfg.Timeout = config.GetTimeout()
	cfg.Count = uint64(config.GetCount())
	return cfg
}

func run(ctx context.Context, opts *options, stdout io.Writer) error {
	addr, err := resolver.Resolve(ctx, opts.host, opts.family)
	if err != nil {
		return err
	}

	console := report.NewConsole(stdout)
	clients := []probe.PingClient{console}

	if config.MetricsExporterEnabled() {
		collector := exporter.NewCollector()
		exp, err := exporter.New(config.MetricsExporterPort(), collector)
		if err != nil {
			return err
		}
		if err = exp.Run(ctx); err != nil {
			return err
		}
		clients = append(clients, collector)
	}

	if config.ControllerEnabled() {
		cc, err := controller.Dial(ctx, controller.Config{
			URL:       config.GetControllerURL(),
			Token:     config.GetControllerToken(),
			AgentName: config.GetAgentName(),
			Version:   config.GetFullVersion(),
		})
		if err != nil {
			// Probing is still useful without remote reporting
			logger.Warning().Println(fullAppName, "controller disabled:", err)
		} else {
			defer cc.Close()
			logger.SetupGlobalLogger(config.GetDebugLevel(), os.Stderr, logger.NewControllerWriter(cc))
			clients = append(clients, controller.NewReporter(cc))
		}
	}

	console.Start(addr)

	prober, err := probe.New(ctx, pinger.RawTransport{}, addr, probeConfig(), clients...)
	if err != nil {
		return err
	}
	defer prober.Close()

	err = prober.Run()
	console.Summary(addr, prober.Stats())

	return err
}

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	execName := os.Args[0]

	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			exitCode = 1
		}
		return
	}
	if opts.version {
		fmt.Printf("%s (%s):\t%s\n\n", fullAppName, execName, config.GetFullVersion())
		return
	}

	config.Init()
	logger.SetupGlobalLogger(config.GetDebugLevel(), os.Stderr)
	applyOptions(opts)
	logger.Info().Println(fullAppName, execName, config.GetFullVersion(), "started.")

	// Stop probing on SIGINT or SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		exitCode = 1
		return
	}
	logger.Info().Println(fullAppName, "terminating")
}
