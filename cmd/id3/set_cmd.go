package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/dataset/csv"
	"github.com/pbanos/id3/dataset/sqldataset"
	"github.com/pbanos/id3/dataset/sqldataset/pgadapter"
	"github.com/pbanos/id3/dataset/sqldataset/sqlite3adapter"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type setCmdConfig struct {
	*rootCmdConfig
	setInput   string
	setOutput  string
	maxDBConns int
}

type splitCmdConfig struct {
	*setCmdConfig
	splitOutput      string
	splitProbability int
	seed             int64
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage sets of records",
		Long:  `Copy a set of records between CSV files, SQLite3 files and PostgreSQL DBs`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := config.Context()
			records, err := readRecords(ctx, config.logger, config.setInput, config.settings.Discretize.FeatureCount, config.maxDBConns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			n, err := writeRecords(ctx, config.logger, config.setOutput, records, config.maxDBConns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.logger.Info().Int("records", n).Msg("Done")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB connection URL with the records to read (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB connection URL to dump the output set (defaults to STDOUT in CSV)")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	cmd.AddCommand(splitCmd(config))
	return cmd
}

func splitCmd(setConfig *setCmdConfig) *cobra.Command {
	config := &splitCmdConfig{setCmdConfig: setConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set, sending every record to the split set with the given probability`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.splitOutput == "" {
				fmt.Fprintln(os.Stderr, "required split-output flag was not set")
				os.Exit(1)
			}
			if config.splitProbability < 0 || config.splitProbability > 100 {
				fmt.Fprintf(os.Stderr, "split probability must be in [0, 100], got %d\n", config.splitProbability)
				os.Exit(1)
			}
			ctx := config.Context()
			records, err := readRecords(ctx, config.logger, config.setInput, config.settings.Discretize.FeatureCount, config.maxDBConns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			seed := config.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			kept, split := splitRecords(records, config.splitProbability, rand.New(rand.NewSource(seed)))
			_, err = writeRecords(ctx, config.logger, config.setOutput, kept, config.maxDBConns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			_, err = writeRecords(ctx, config.logger, config.splitOutput, split, config.maxDBConns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.logger.Info().Int("output", len(kept)).Int("split", len(split)).Msg("Done")
		},
	}
	cmd.Flags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB connection URL to dump the split set (required)")
	cmd.Flags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability in percent of a record being sent to the split set")
	cmd.Flags().Int64Var(&(config.seed), "seed", 0, "seed for the random split (defaults to 0: the current time)")
	return cmd
}

/*
splitRecords takes a slice of records, a probability in percent and a
source of randomness and returns the records kept and the records split
apart, preserving their order.
*/
func splitRecords(records []dataset.RawRecord, probability int, r *rand.Rand) (kept, split []dataset.RawRecord) {
	for _, rec := range records {
		if r.Intn(100) < probability {
			split = append(split, rec)
		} else {
			kept = append(kept, rec)
		}
	}
	return
}

/*
writeRecords takes a context, a logger, the description of an output and a
slice of raw records and writes the records onto the output, returning how
many were written. The output is described as the input of readRecords is,
with STDOUT in place of STDIN.
*/
func writeRecords(ctx context.Context, logger zerolog.Logger, output string, records []dataset.RawRecord, maxDBConns int) (int, error) {
	if strings.HasPrefix(output, "postgresql://") {
		logger.Debug().Msg("Creating PostgreSQL adapter to dump records...")
		adapter, err := pgadapter.New(output)
		if err != nil {
			return 0, err
		}
		defer adapter.Close()
		return sqldataset.Write(ctx, adapter, records)
	}
	if strings.HasSuffix(output, ".db") {
		logger.Debug().Str("file", output).Msg("Creating SQLite3 adapter to dump records...")
		adapter, err := sqlite3adapter.New(output, maxDBConns)
		if err != nil {
			return 0, err
		}
		defer adapter.Close()
		return sqldataset.Write(ctx, adapter, records)
	}
	f := os.Stdout
	if output != "" {
		logger.Debug().Str("file", output).Msg("Creating file to dump records...")
		var err error
		f, err = os.Create(output)
		if err != nil {
			return 0, err
		}
		defer f.Close()
	}
	w := csv.NewWriter(f)
	n, err := w.Write(records)
	if err != nil {
		return n, err
	}
	return n, w.Flush()
}
