package buildconfig

// Set at build time via -ldflags "-X .../buildconfig.version=... -X .../buildconfig.commit=..."
var (
	version = "dev"
	commit  = "unknown"
)

// Version returns the build version string.
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from.
func Commit() string {
	return commit
}

// Info returns both fields for diagnostic payloads.
func Info() map[string]string {
	return map[string]string{
		"version": version,
		"commit":  commit,
	}
}
