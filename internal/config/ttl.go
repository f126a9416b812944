package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/SyntropyNet/syntropy-pinger/internal/env"
	"github.com/SyntropyNet/syntropy-pinger/pkg/probe/pinger"
)

// ParseTTL validates command line TTL value
func ParseTTL(str string) (int, error) {
	val, err := strconv.ParseUint(str, 10, 8)
	if err != nil || val > env.MaxTTL {
		return 0, fmt.Errorf("%w: The value for the 'ttl' flag must be an integer between 0 and %d",
			pinger.ErrInvalidInput, env.MaxTTL)
	}
	return int(val), nil
}

// SetTTL overrides environment TTL
func SetTTL(ttl int) {
	if ttl >= 0 && ttl <= env.MaxTTL {
		cache.ttl = uint(ttl)
	}
}

// SetTimeout overrides environment reply timeout
func SetTimeout(timeout int) {
	if timeout > 0 {
		cache.timeout = time.Duration(timeout) * time.Millisecond
	}
}

// SetCount overrides environment probes count
func SetCount(count uint) {
	cache.count = count
}
