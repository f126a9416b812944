// Env packet describes all settings, common to whole application
package env

import "time"

const (
	// Controller is expecting ISO8601 time format
	// RFC3339 is a stricter version of ISO8601, so it is safe to use it.
	TimeFormat = time.RFC3339
	// Default value for pinger initiated messages to controller
	MessageDefaultID = "-"

	// Pause between two consecutive probes
	ProbeInterval = 500 * time.Millisecond
	// How long to wait for an echo reply
	DefaultTimeout = time.Second
	// Outgoing IPv4 TTL
	DefaultTTL = 64
	// Highest valid TTL value
	MaxTTL = 255

	// Default controller address, used when only token is configured
	DefaultControllerURL = "controller-prod-platform-agents.syntropystack.com"
)
