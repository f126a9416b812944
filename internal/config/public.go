package config

import "time"

func GetDebugLevel() int {
	return cache.debugLevel
}

func GetAgentName() string {
	return cache.agentName
}

func GetTTL() int {
	return int(cache.ttl)
}

func GetTimeout() time.Duration {
	return cache.timeout
}

// GetCount returns probes count to send. 0 means unlimited.
func GetCount() uint {
	return cache.count
}

func MetricsExporterEnabled() bool {
	return cache.exporterPort > 0
}

func MetricsExporterPort() uint16 {
	return cache.exporterPort
}

func ControllerEnabled() bool {
	return cache.controller.token != ""
}

func GetControllerURL() string {
	return cache.controller.url
}

func GetControllerToken() string {
	return cache.controller.token
}
