/*
Package discretize turns raw numeric feature values into the small set of
bucket indices trees are grown on.
*/
package discretize

import (
	"fmt"
	"math"

	"github.com/pbanos/id3/dataset"
)

/*
Config holds the discretization parameters: the number of features every
record must have, the number of buckets values are mapped into and the
factor each feature is multiplied by before being bucketed (1 for features
not in Scales).
*/
type Config struct {
	FeatureCount int             `yaml:"feature_count"`
	BinCount     int             `yaml:"bin_count"`
	Scales       map[int]float64 `yaml:"scales,omitempty"`
}

/*
DefaultConfig returns the configuration of the voting dataset the tool was
first written for: 9 features and 45 bins, with features 3 and 4 scaled by
40 as most of their values fall in [0, 1].
*/
func DefaultConfig() Config {
	return Config{
		FeatureCount: 9,
		BinCount:     45,
		Scales:       map[int]float64{3: 40, 4: 40},
	}
}

// Validate returns an error if the configuration cannot be used to bin
// records.
func (c Config) Validate() error {
	if c.FeatureCount < 1 {
		return fmt.Errorf("feature count must be at least 1, got %d", c.FeatureCount)
	}
	if c.BinCount < 1 {
		return fmt.Errorf("bin count must be at least 1, got %d", c.BinCount)
	}
	for f, s := range c.Scales {
		if f < 0 || f >= c.FeatureCount {
			return fmt.Errorf("scale for unknown feature %d", f)
		}
		if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("invalid scale %v for feature %d", s, f)
		}
	}
	return nil
}

/*
Binner maps raw records into discretized ones according to a Config.
*/
type Binner struct {
	config Config
}

/*
New takes a Config and returns a Binner for it or an error if the
configuration is not valid.
*/
func New(c Config) (*Binner, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Binner{c}, nil
}

// Config returns the configuration of the binner.
func (b *Binner) Config() Config {
	return b.config
}

/*
Value takes a feature index and a raw value and returns the bucket for it:
the floor of the value times the feature scale, modulo the bin count. The
result always falls in [0, BinCount), also for negative values.
*/
func (b *Binner) Value(feature int, v float64) int {
	scale, ok := b.config.Scales[feature]
	if !ok {
		scale = 1.0
	}
	bucket := int(math.Floor(v*scale)) % b.config.BinCount
	if bucket < 0 {
		bucket += b.config.BinCount
	}
	return bucket
}

/*
Values takes a slice of raw feature values and returns their buckets, or
an error if the number of values is not the configured feature count.
*/
func (b *Binner) Values(vs []float64) ([]int, error) {
	if len(vs) != b.config.FeatureCount {
		return nil, fmt.Errorf("got %d values, expected %d", len(vs), b.config.FeatureCount)
	}
	result := make([]int, len(vs))
	for i, v := range vs {
		result[i] = b.Value(i, v)
	}
	return result, nil
}

/*
Bin takes a raw record and returns the record with its values bucketed.
*/
func (b *Binner) Bin(r dataset.RawRecord) (dataset.Record, error) {
	fs, err := b.Values(r.Values)
	if err != nil {
		return dataset.Record{}, err
	}
	return dataset.Record{Features: fs, Label: r.Label}, nil
}

/*
Dataset takes a slice of raw records and returns a dataset with the binned
records or an error identifying the first record that cannot be binned.
*/
func (b *Binner) Dataset(rs []dataset.RawRecord) (dataset.Dataset, error) {
	records := make([]dataset.Record, 0, len(rs))
	for i, r := range rs {
		br, err := b.Bin(r)
		if err != nil {
			return dataset.Dataset{}, fmt.Errorf("binning record %d: %v", i, err)
		}
		records = append(records, br)
	}
	return dataset.New(records), nil
}
