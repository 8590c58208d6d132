package main

import (
	"fmt"
	"os"

	"github.com/pbanos/id3/perceptron"
	"github.com/spf13/cobra"
)

type perceptronCmdConfig struct {
	*rootCmdConfig
	trainInput string
	testInput  string
	maxDBConns int
}

func perceptronCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &perceptronCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "perceptron",
		Short: "Train and test a perceptron",
		Long:  `Train a linear perceptron on a set of records labelled 0 or 1 and test it against another set`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.testInput == "" {
				fmt.Fprintln(os.Stderr, "required test flag was not set")
				os.Exit(1)
			}
			ctx := config.Context()
			fc := config.settings.Discretize.FeatureCount
			trainRaws, err := readRecords(ctx, config.logger, config.trainInput, fc, config.maxDBConns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			testRaws, err := readRecords(ctx, config.logger, config.testInput, fc, config.maxDBConns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			trainSamples, err := perceptron.Samples(trainRaws)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading training samples: %v\n", err)
				os.Exit(4)
			}
			testSamples, err := perceptron.Samples(testRaws)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading testing samples: %v\n", err)
				os.Exit(4)
			}
			trainSamples, norm := perceptron.Normalize(trainSamples)
			config.logger.Info().Int("samples", len(trainSamples)).Int("iterations", config.settings.Perceptron.Iterations).Msg("Training perceptron...")
			m, err := perceptron.Train(trainSamples, config.settings.Perceptron)
			if err != nil {
				fmt.Fprintf(os.Stderr, "training perceptron: %v\n", err)
				os.Exit(5)
			}
			correct, wrong := m.Evaluate(norm.Apply(testSamples))
			config.logger.Debug().Floats64("weights", m.Weights).Float64("bias", m.Bias).Msg("Done")
			fmt.Printf("CORRECT: %d\n", correct)
			fmt.Printf("WRONG: %d\n", wrong)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.trainInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB connection URL with records to train the perceptron on (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.testInput), "test", "e", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB connection URL with records to test the perceptron against (required)")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}
