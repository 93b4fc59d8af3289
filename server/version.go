package server

import "runtime/debug"

// gitHash returns the commit the binary is build from.
// The info is not available for `go run` and `go test`.
func gitHash() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return setting.Value
			}
		}
	}

	return "unknown"
}
