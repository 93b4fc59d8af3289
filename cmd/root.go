package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/go-arrower/kernel"
	"github.com/go-arrower/kernel/alog"
)

// NewInterruptSignalChannel returns a channel listening for os.Signals the kernel cli will react to.
func NewInterruptSignalChannel() chan os.Signal {
	signalsToListenTo := []os.Signal{
		syscall.SIGINT,                   // Strg + c
		syscall.SIGTERM, syscall.SIGQUIT, // terminate but finish/cleanup first, e.g. kill
		os.Interrupt,
	}

	osSignal := make(chan os.Signal, 1)
	signal.Notify(osSignal, signalsToListenTo...)

	return osSignal
}

func newRootCmd(conf *kernel.Config) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "kernel",
		Short: "kernel stores key values and exposes them together with the environment.",
		Long: `A small key value store with a dictionary and an environment backed repository.
Use it from the command line or serve it over HTTP.`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig(configFile, conf)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file, all values can be overwritten by "+kernel.EnvPrefix+"_ environment variables")

	return rootCmd
}

// loadConfig reads the configuration into conf.
// Without a file, only the defaults and the environment are used.
func loadConfig(file string, conf *kernel.Config) error {
	vip := kernel.DefaultViper()

	if file != "" {
		vip.SetConfigFile(file)

		if err := vip.ReadInConfig(); err != nil {
			return fmt.Errorf("could not read config file: %w", err)
		}
	}

	return vip.Unmarshal(conf) //nolint:wrapcheck // already wrapped by kernel.Viper
}

// newLogger returns the logger of all commands, except serve.
// It writes to stderr, so the output of a command can be piped.
func newLogger(cmd *cobra.Command, conf *kernel.Config) *alog.Adapter {
	return alog.New(
		alog.WithWriter(cmd.ErrOrStderr()),
		alog.WithLevel(alog.SlogLevel(conf.Log.Level)),
	)
}

// NewKernelCLI initialises the complete kernel cli with its commands and returns the root command.
func NewKernelCLI(osSignal <-chan os.Signal) *cobra.Command {
	conf := &kernel.Config{}

	rootCmd := newRootCmd(conf)
	rootCmd.AddCommand(Version("kernel"))
	rootCmd.AddCommand(newEnvCmd(conf))
	rootCmd.AddCommand(newKVCmd(conf))
	rootCmd.AddCommand(newServeCmd(conf, osSignal))

	return rootCmd
}

// Execute runs the kernel cli.
func Execute() {
	if err := NewKernelCLI(NewInterruptSignalChannel()).Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
