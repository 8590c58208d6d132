package main

import (
	"fmt"
	"os"

	"github.com/pbanos/id3"
	"github.com/pbanos/id3/discretize"
	"github.com/pbanos/id3/tree/redisstore"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataInput        string
	output           string
	redis            string
	parallel         bool
	referenceEntropy bool
	profileDir       string
	maxDBConns       int
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of records",
		Long:  `Grow a tree from a set of records to predict their labels.`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.profileDir != "" {
				defer profile.Start(profile.CPUProfile, profile.ProfilePath(config.profileDir), profile.Quiet).Stop()
			}
			code := config.run()
			if code != 0 {
				os.Exit(code)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL DB connection URL with records to grow the tree from (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format (defaults to STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.redis), "redis", "", "address of a redis server to store the generated tree on instead of writing it as JSON (defaults to the configured one when set to -)")
	cmd.PersistentFlags().BoolVar(&(config.parallel), "parallel", false, "grow sibling subtrees concurrently")
	cmd.PersistentFlags().BoolVar(&(config.referenceEntropy), "reference-entropy", false, "compute feature entropies weighting every class of a group separately")
	cmd.PersistentFlags().StringVar(&(config.profileDir), "profile", "", "directory to write a CPU profile of the run to")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}

func (gcc *growCmdConfig) run() int {
	ctx := gcc.Context()
	dc := gcc.settings.Discretize
	binner, err := discretize.New(dc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	raws, err := readRecords(ctx, gcc.logger, gcc.dataInput, dc.FeatureCount, gcc.maxDBConns)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 3
	}
	trainingSet, err := binner.Dataset(raws)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 4
	}
	opts := []id3.Option{id3.WithLogger(gcc.logger), id3.WithConcurrency(gcc.parallel)}
	if gcc.referenceEntropy {
		opts = append(opts, id3.WithFeatureEntropy(id3.ReferenceFeatureEntropy))
	}
	b := id3.NewBuilder(opts...)
	gcc.logger.Info().Int("records", trainingSet.Len()).Int("features", dc.FeatureCount).Msg("Growing tree...")
	t, err := b.Build(trainingSet, dc.FeatureCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
		return 5
	}
	stats := b.Stats()
	gcc.logger.Info().
		Int("nodes", stats.Nodes).
		Int("leaves", stats.Leaves).
		Int("degenerate", stats.DegenerateLeaves).
		Int("depth", stats.MaxDepth).
		Msg("Done")
	gcc.logger.Debug().Msgf("\n%v", t)
	addr := gcc.redis
	if addr == "-" {
		addr = gcc.settings.Redis
	}
	if addr != "" {
		rc := redisClient(addr)
		defer rc.Close()
		id, err := redisstore.New(rc, gcc.settings.RedisPrefix).Save(ctx, t)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 6
		}
		fmt.Printf("%s%s\n", redisTreePrefix, id)
		return 0
	}
	err = outputTree(gcc.output, t)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 6
	}
	return 0
}
