package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/dataset/csv"
	"github.com/pbanos/id3/dataset/sqldataset"
	"github.com/pbanos/id3/dataset/sqldataset/pgadapter"
	"github.com/pbanos/id3/dataset/sqldataset/sqlite3adapter"
	"github.com/pbanos/id3/tree"
	"github.com/pbanos/id3/tree/json"
	"github.com/pbanos/id3/tree/redisstore"
	"github.com/rs/zerolog"
	"gopkg.in/redis.v5"
)

const redisTreePrefix = "redis:"

/*
readRecords takes a context, a logger, the description of a set of records
and their number of features and returns the raw records in it. The input
is a PostgreSQL DB connection URL if it starts with postgresql://, the path
to an SQLite3 file if it ends in .db, the path to a CSV file otherwise or
STDIN, interpreted as CSV, if empty.
*/
func readRecords(ctx context.Context, logger zerolog.Logger, input string, featureCount, maxDBConns int) ([]dataset.RawRecord, error) {
	if strings.HasPrefix(input, "postgresql://") {
		logger.Debug().Msg("Creating PostgreSQL adapter to read records...")
		adapter, err := pgadapter.New(input)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return sqldataset.Read(ctx, adapter, featureCount)
	}
	if strings.HasSuffix(input, ".db") {
		logger.Debug().Str("file", input).Msg("Creating SQLite3 adapter to read records...")
		adapter, err := sqlite3adapter.New(input, maxDBConns)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return sqldataset.Read(ctx, adapter, featureCount)
	}
	var r io.Reader = os.Stdin
	if input == "" {
		logger.Debug().Msg("Reading records from STDIN...")
	} else {
		logger.Debug().Str("file", input).Msg("Opening file to read records...")
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("opening records at %s: %v", input, err)
		}
		defer f.Close()
		r = f
	}
	records, err := csv.Read(r, featureCount)
	if err != nil {
		return nil, fmt.Errorf("reading records: %v", err)
	}
	return records, nil
}

func redisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

/*
loadTree takes a context, the tree source and the settings and returns the
tree. The source is either redis:ID, to load the tree with that ID from the
redis at the configured address, or the path to a JSON file.
*/
func loadTree(ctx context.Context, source string, s *settings) (*tree.Tree, error) {
	if strings.HasPrefix(source, redisTreePrefix) {
		if s.Redis == "" {
			return nil, fmt.Errorf("loading tree %s: no redis address configured", source)
		}
		rc := redisClient(s.Redis)
		defer rc.Close()
		t, err := redisstore.New(rc, s.RedisPrefix).Load(ctx, strings.TrimPrefix(source, redisTreePrefix))
		if err != nil {
			return nil, fmt.Errorf("loading tree %s: %v", source, err)
		}
		return t, nil
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", source, err)
	}
	defer f.Close()
	t, err := json.Read(f)
	if err != nil {
		return nil, fmt.Errorf("parsing tree in JSON from %s: %v", source, err)
	}
	return t, nil
}

func outputTree(outputPath string, t *tree.Tree) error {
	if outputPath == "" {
		return json.Write(os.Stdout, t)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	err = json.Write(f, t)
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
