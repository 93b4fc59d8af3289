package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Version returns a `version` command to be added to any cobra (root) command.
func Version(name string) *cobra.Command {
	short := "Print " + name + " version"
	if strings.TrimSpace(name) == "" {
		short = "Print version"
	}

	var asJSON bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: short,
		Long:  ``,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hash, ts := getVersionHashAndTimestamp()

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(buildInfo{ //nolint:wrapcheck // nothing to add
					Name:      strings.TrimSpace(name),
					Hash:      hash,
					Time:      ts,
					GoVersion: runtime.Version(),
				})
			}

			prefix := "version"
			if strings.TrimSpace(name) != "" {
				prefix = name + " version"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s from %s (%s)\n", prefix, hash, ts, runtime.Version())

			return nil
		},
	}

	versionCmd.Flags().BoolVar(&asJSON, "json", false, "print the version as JSON")

	return versionCmd
}

type buildInfo struct {
	Name      string `json:"name,omitempty"`
	Hash      string `json:"hash"`
	Time      string `json:"time"`
	GoVersion string `json:"goVersion"`
}

// getVersionHashAndTimestamp returns the last git hash and commit timestamp.
// A binary build from uncommitted changes has no meaningful hash, it is reported as @latest.
func getVersionHashAndTimestamp() (string, string) {
	var (
		hash, ts string
		modified bool
	)

	// called from a Go test info.Settings are always empty: []
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				hash = setting.Value
			case "vcs.time":
				ts = setting.Value
			case "vcs.modified":
				modified = setting.Value == "true"
			}
		}
	}

	if modified || hash == "" {
		return "@latest", time.Now().UTC().Format(time.RFC3339)
	}

	return hash, ts
}
