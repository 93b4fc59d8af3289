package cmd

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/go-arrower/kernel"
	"github.com/go-arrower/kernel/kv"
	"github.com/go-arrower/kernel/repository"
	"github.com/go-arrower/kernel/server"
)

func newKVCmd(conf *kernel.Config) *cobra.Command {
	kvCmd := &cobra.Command{
		Use:   "kv",
		Short: "Manage the key values of the configured store",
		Long: `Manage the key values of the configured store.
With the memory driver nothing is persisted between two calls.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	newApp := func(cmd *cobra.Command) (kv.App, io.Closer, error) {
		s, closer, err := server.NewStore(cmd.Context(), conf.Store)
		if err != nil {
			return kv.App{}, nil, fmt.Errorf("could not open store: %w", err)
		}

		logger := newLogger(cmd, conf)

		opts := []repository.Option{repository.WithLogger(logger.Slog())}
		if s != nil {
			opts = append(opts, repository.WithStore(s))
		}

		return kv.NewApp(repository.NewMemoryRepository(nil, opts...)).
			Instrumented(tracenoop.NewTracerProvider(), metricnoop.NewMeterProvider(), logger), closer, nil
	}

	newViewApp := func(cmd *cobra.Command) (kv.ViewApp, io.Closer, error) {
		app, closer, err := newApp(cmd)

		return app.ViewApp, closer, err
	}

	kvCmd.AddCommand(newGetCmd("Print the value of a key", newViewApp))
	kvCmd.AddCommand(newListCmd("Print all key values", newViewApp))
	kvCmd.AddCommand(newInsertCmd(newApp))
	kvCmd.AddCommand(newUpdateCmd(newApp))
	kvCmd.AddCommand(newDeleteCmd(newApp))

	return kvCmd
}

func newInsertCmd(newApp func(cmd *cobra.Command) (kv.App, io.Closer, error)) *cobra.Command {
	var generate bool

	insertCmd := &cobra.Command{
		Use:   "insert KEY VALUE",
		Short: "Add a new key value",
		Long: `Add a new key value.
VALUE is stored as JSON, if it is valid JSON, otherwise as string.
With --generate only VALUE is given and a random key is used and printed.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if generate {
				return cobra.ExactArgs(1)(cmd, args)
			}

			return cobra.ExactArgs(2)(cmd, args) //nolint:mnd // key and value
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, store, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			key, value := uuid.NewString(), args[0]
			if !generate {
				key, value = args[0], args[1]
			}

			err = app.Insert.H(cmd.Context(), kv.InsertCommand{Key: key, Value: parseValue(value)})
			if err != nil {
				return fmt.Errorf("%w", err)
			}

			if generate {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}

			return nil
		},
	}

	insertCmd.Flags().BoolVarP(&generate, "generate", "g", false, "generate a random key")

	return insertCmd
}

func newUpdateCmd(newApp func(cmd *cobra.Command) (kv.App, io.Closer, error)) *cobra.Command {
	return &cobra.Command{
		Use:                   "update KEY VALUE",
		Short:                 "Replace the value of an existing key",
		Args:                  cobra.ExactArgs(2), //nolint:mnd // key and value
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, store, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			err = app.Update.H(cmd.Context(), kv.UpdateCommand{Key: args[0], Value: parseValue(args[1])})
			if err != nil {
				return fmt.Errorf("%w", err)
			}

			return nil
		},
	}
}

func newDeleteCmd(newApp func(cmd *cobra.Command) (kv.App, io.Closer, error)) *cobra.Command {
	return &cobra.Command{
		Use:                   "delete KEY",
		Short:                 "Remove a key value",
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, store, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := app.Delete.H(cmd.Context(), kv.DeleteCommand{Key: args[0]})
			if err != nil {
				return fmt.Errorf("%w", err)
			}

			if !res.Deleted {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s does not exist\n", args[0])
			}

			return nil
		},
	}
}
