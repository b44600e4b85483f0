package version

import (
	"fmt"
	"runtime"
)

// Values for these are injected by the build.
var (
	version   = "edge"
	component = "trellis"

	userAgent string
)

// Version returns the Trellis version. This is either a semantic version
// number or else, in the case of unreleased code, the string "edge".
func Version() string {
	if version == "edge" {
		return version
	}

	return fmt.Sprintf("v%s", version)
}

func Component() string {
	return component
}

func SetComponent(name string) {
	component = name
	userAgent = ""
}

// UserAgent identifies the component on every outbound HTTP request.
func UserAgent() string {
	if userAgent == "" {
		userAgent = fmt.Sprintf("Trellis/%s %s/%s (%s)", Version(), Component(), Version(), runtime.GOOS)
	}
	return userAgent
}
