package config

import (
	"os"
	"time"

	"github.com/SyntropyNet/syntropy-pinger/internal/env"
	"github.com/SyntropyNet/syntropy-pinger/internal/logger"
)

const maxPort = 65535

// Init parses environment variables. Invalid values fall back to defaults.
func Init() {
	var tmpval uint
	var tmpstr string

	initString(&tmpstr, "PINGER_LOG_LEVEL", "")
	cache.debugLevel = logger.ParseLevel(tmpstr, logger.WarningLevel)

	initAgentName()

	initUint(&cache.ttl, "PINGER_TTL", env.DefaultTTL)
	if cache.ttl > env.MaxTTL {
		logger.Warning().Println(pkgName, "PINGER_TTL out of range, using", env.DefaultTTL)
		cache.ttl = env.DefaultTTL
	}

	initUint(&tmpval, "PINGER_TIMEOUT", uint(env.DefaultTimeout.Milliseconds()))
	if tmpval == 0 {
		tmpval = uint(env.DefaultTimeout.Milliseconds())
	}
	cache.timeout = time.Duration(tmpval) * time.Millisecond

	initUint(&cache.count, "PINGER_COUNT", 0)

	initUint(&tmpval, "PINGER_EXPORTER_PORT", 0)
	if tmpval <= maxPort {
		cache.exporterPort = uint16(tmpval)
	} else {
		cache.exporterPort = 0
	}

	initString(&cache.controller.token, "PINGER_CONTROLLER_TOKEN", "")
	initString(&cache.controller.url, "PINGER_CONTROLLER_URL", "")
	if cache.controller.url == "" && cache.controller.token != "" {
		cache.controller.url = env.DefaultControllerURL
	}
}

func initAgentName() {
	var err error
	initString(&cache.agentName, "PINGER_AGENT_NAME", "")
	if cache.agentName != "" {
		return
	}

	// Fallback to hostname, if shell variable `PINGER_AGENT_NAME` is missing
	cache.agentName, err = os.Hostname()
	if err != nil {
		cache.agentName = "UnknownSyntropyPinger"
	}
}
