package version

const (
	Version     = "0.4.0"
	Name        = "ctrlcore"
	Description = "Application-layer control core for an e-bike hub-motor controller: rider-input pipeline, LCD protocol, cruise control"
	Copyright   = "© 2026 ebike-foss contributors"
	License     = "GPL-3.0-or-later"
	Attribution = "Control law ported from the EGG OpenSource EBike firmware (Casainho) as carried in BMSBattery S-series controller firmware"
	URL         = "https://github.com/ebike-foss/ctrlcore"
)

// Injected at build time via -ldflags
var (
	GitHash   = "dev"
	BuildTime = "unknown"
)

// FullVersion returns version string with git hash and build time.
func FullVersion() string {
	return Version + " (" + GitHash + ") built " + BuildTime
}
