package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/go-arrower/kernel"
	"github.com/go-arrower/kernel/kv"
	"github.com/go-arrower/kernel/repository"
)

func newEnvCmd(conf *kernel.Config) *cobra.Command {
	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Read the environment variables",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	newApp := func(cmd *cobra.Command) (kv.ViewApp, io.Closer, error) {
		app := kv.NewViewApp(repository.NewEnvRepository()).
			Instrumented(tracenoop.NewTracerProvider(), metricnoop.NewMeterProvider(), newLogger(cmd, conf))

		return app, io.NopCloser(nil), nil
	}

	envCmd.AddCommand(newGetCmd("Print the value of an environment variable", newApp))
	envCmd.AddCommand(newListCmd("Print all environment variables", newApp))

	return envCmd
}

func newGetCmd(short string, newApp func(cmd *cobra.Command) (kv.ViewApp, io.Closer, error)) *cobra.Command {
	return &cobra.Command{
		Use:                   "get KEY",
		Short:                 short,
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, store, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := app.Get.H(cmd.Context(), kv.GetQuery{Key: args[0]})
			if err != nil {
				return fmt.Errorf("%w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatValue(res.Data[0].Value))

			return nil
		},
	}
}

func newListCmd(short string, newApp func(cmd *cobra.Command) (kv.ViewApp, io.Closer, error)) *cobra.Command {
	var query kv.ListQuery

	listCmd := &cobra.Command{
		Use:   "list",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, store, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := app.List.H(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("%w", err)
			}

			printKeyValues(cmd.OutOrStdout(), res.Data...)

			return nil
		},
	}

	listCmd.Flags().IntVarP(&query.Limit, "limit", "l", 0, "maximum number of key values, 0 prints all")
	listCmd.Flags().IntVarP(&query.Offset, "offset", "o", 0, "number of key values to skip")

	return listCmd
}
