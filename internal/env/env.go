package env

const AppName = "pngr"

// Set at build time through -ldflags.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
