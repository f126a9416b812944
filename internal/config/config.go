package config

import "time"

const pkgName = "PingerConfig. "

// This struct is used to cache pinger configuration parsed from
// exported shell variables. Command line flags override some of them.
type configCache struct {
	debugLevel int
	agentName  string

	ttl     uint
	timeout time.Duration
	count   uint

	exporterPort uint16

	controller struct {
		url   string
		token string
	}
}

var cache configCache
