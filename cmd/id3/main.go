package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose    bool
	configPath string
	logger     zerolog.Logger
	settings   *settings
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "id3",
		Short: "id3 is a tool to grow decision trees with the ID3 algorithm",
		Long:  `A tool to grow classification trees from numeric records with the ID3 algorithm, test them, and use them to make predictions`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.logger = newLogger(os.Stderr, config.verbose)
			s, err := loadSettings(config.configPath)
			if err != nil {
				return err
			}
			config.settings = s
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log debug information")
	rootCmd.PersistentFlags().StringVarP(&(config.configPath), "config", "C", "", "path to a YML file with the discretization, perceptron and redis settings (defaults to the built-in settings)")
	rootCmd.AddCommand(
		versionCmd(),
		growCmd(config),
		testCmd(config),
		predictCmd(config),
		serveCmd(config),
		perceptronCmd(config),
		setCmd(config),
	)
	return rootCmd
}

// Context returns a context that is cancelled on interrupt.
func (rcc *rootCmdConfig) Context() context.Context {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = signal.NotifyContext(context.Background(), os.Interrupt)
	}
	return rcc.ctx
}
