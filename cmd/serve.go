package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color" //nolint:misspell
	"github.com/spf13/cobra"

	"github.com/go-arrower/kernel"
	"github.com/go-arrower/kernel/server"
)

func newServeCmd(conf *kernel.Config, osSignal <-chan os.Signal) *cobra.Command {
	return &cobra.Command{
		Use:                   "serve",
		Short:                 "Serve the key values and the environment over HTTP",
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			blue := color.New(color.FgBlue, color.Bold).FprintfFunc()
			yellow := color.New(color.FgYellow, color.Bold).FprintfFunc()

			version, _ := getVersionHashAndTimestamp()
			blue(cmd.OutOrStdout(), "%s version %s\n", conf.ApplicationName, version)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			go func() {
				select {
				case <-osSignal:
					yellow(cmd.OutOrStdout(), "shutting down\n")
					cancel()
				case <-ctx.Done():
				}
			}()

			dc, err := server.New(ctx, conf, server.WithLogWriter(cmd.OutOrStdout()))
			if err != nil {
				return fmt.Errorf("could not initialise server: %w", err)
			}

			blue(cmd.OutOrStdout(), "environment %s, store %s, serving on :%d\n",
				conf.Environment, conf.Store.Driver, conf.HTTP.Port)

			if err := dc.Run(ctx); err != nil {
				return fmt.Errorf("%w", err)
			}

			blue(cmd.OutOrStdout(), "done\n")

			return nil
		},
	}
}
