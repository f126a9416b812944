package config

// Set with -ldflags "-X" at build time
var (
	version    = "0.0.0"
	subversion = "local"
)

func GetVersion() string {
	return version
}

func GetFullVersion() string {
	if subversion != "" {
		return version + "-" + subversion
	}
	return version
}
