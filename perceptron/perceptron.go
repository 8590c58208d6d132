/*
Package perceptron provides a single layer linear perceptron classifier for
records with two classes labelled 0 and 1, trained on feature values
normalized by their mean and range.
*/
package perceptron

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/pbanos/id3/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// zeroError replaces a zero classification error when updating the model.
const zeroError = 0.0001

// initialWeight is the value every weight starts with.
const initialWeight = 0.0001

/*
Config holds the training parameters of a perceptron.
*/
type Config struct {
	LearningRate float64 `yaml:"learning_rate"`
	Iterations   int     `yaml:"iterations"`
	Theta        float64 `yaml:"theta"`
	Seed         int64   `yaml:"seed"`
}

// DefaultConfig returns the Config used when none is given.
func DefaultConfig() Config {
	return Config{LearningRate: 0.1, Iterations: 1000, Theta: 0, Seed: 1}
}

/*
Sample is a normalized feature vector with its numeric label.
*/
type Sample struct {
	Values []float64
	Label  float64
}

/*
Normalization holds the mean and range of every feature of a set of
records.
*/
type Normalization struct {
	Means  []float64
	Ranges []float64
}

/*
Model is a trained perceptron.
*/
type Model struct {
	Weights []float64
	Bias    float64
	Theta   float64
}

/*
Samples takes a slice of dataset.RawRecord and returns it as samples with
the labels parsed as floats, or an error if a label is not a number or the
records do not all have the same number of values.
*/
func Samples(raws []dataset.RawRecord) ([]Sample, error) {
	samples := make([]Sample, 0, len(raws))
	for i, r := range raws {
		if i > 0 && len(r.Values) != len(raws[0].Values) {
			return nil, fmt.Errorf("record %d has %d values, expected %d", i, len(r.Values), len(raws[0].Values))
		}
		l, err := strconv.ParseFloat(r.Label, 64)
		if err != nil {
			return nil, fmt.Errorf("record %d: label %q is not a number", i, r.Label)
		}
		samples = append(samples, Sample{Values: append([]float64(nil), r.Values...), Label: l})
	}
	return samples, nil
}

/*
Normalize takes a slice of samples and returns them with each value
replaced by its difference from the mean of its feature divided by the
range of the feature, together with the Normalization applied. Features
with a zero range normalize to 0.
*/
func Normalize(samples []Sample) ([]Sample, Normalization) {
	var n Normalization
	if len(samples) == 0 {
		return nil, n
	}
	fc := len(samples[0].Values)
	n.Means = make([]float64, fc)
	n.Ranges = make([]float64, fc)
	column := make([]float64, len(samples))
	for f := 0; f < fc; f++ {
		for i, s := range samples {
			column[i] = s.Values[f]
		}
		n.Means[f] = stat.Mean(column, nil)
		n.Ranges[f] = floats.Max(column) - floats.Min(column)
	}
	return n.Apply(samples), n
}

/*
Apply takes a slice of samples and returns them normalized with the means
and ranges of the Normalization.
*/
func (n Normalization) Apply(samples []Sample) []Sample {
	result := make([]Sample, len(samples))
	for i, s := range samples {
		values := make([]float64, len(s.Values))
		for f, v := range s.Values {
			if f >= len(n.Means) || n.Ranges[f] == 0 {
				continue
			}
			values[f] = (v - n.Means[f]) / n.Ranges[f]
		}
		result[i] = Sample{Values: values, Label: s.Label}
	}
	return result
}

/*
Train takes a slice of normalized samples and a Config and returns the
Model obtained after going over the samples Config.Iterations times,
correcting the weights and bias with every sample, or an error if there are
no samples or the configuration is not valid.
*/
func Train(samples []Sample, cfg Config) (*Model, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples to train on")
	}
	if cfg.Iterations < 0 {
		return nil, fmt.Errorf("invalid number of iterations %d", cfg.Iterations)
	}
	fc := len(samples[0].Values)
	for i, s := range samples {
		if len(s.Values) != fc {
			return nil, fmt.Errorf("sample %d has %d values, expected %d", i, len(s.Values), fc)
		}
	}
	m := &Model{
		Weights: make([]float64, fc),
		Bias:    rand.New(rand.NewSource(cfg.Seed)).Float64(),
		Theta:   cfg.Theta,
	}
	for i := range m.Weights {
		m.Weights[i] = initialWeight
	}
	for it := 0; it < cfg.Iterations; it++ {
		for _, s := range samples {
			e := s.Label - m.Classify(s.Values)
			if e == 0 {
				e = zeroError
			}
			m.Bias += cfg.LearningRate * e
			floats.AddScaled(m.Weights, cfg.LearningRate*e, s.Values)
		}
	}
	return m, nil
}

/*
Classify takes a normalized feature vector and returns 1 if its weighted
sum plus the bias reaches the model threshold, 0 otherwise.
*/
func (m *Model) Classify(values []float64) float64 {
	if floats.Dot(m.Weights, values)+m.Bias >= m.Theta {
		return 1
	}
	return 0
}

/*
Evaluate takes a slice of normalized samples and returns the number of them
the model classifies with their label and the number it does not.
*/
func (m *Model) Evaluate(samples []Sample) (correct, wrong int) {
	for _, s := range samples {
		if m.Classify(s.Values) == s.Label {
			correct++
		} else {
			wrong++
		}
	}
	return
}
