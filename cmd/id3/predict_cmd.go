package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/id3/dataset/inputsample"
	"github.com/pbanos/id3/discretize"
	"github.com/pbanos/id3/tree"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeInput string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict [VALUES]",
		Short: "Predict the label of a record",
		Long:  `Use the loaded tree to predict the label of a record given its comma-separated raw feature values, or answering questions about the features the tree needs if none are given`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if config.treeInput == "" {
				fmt.Fprintln(os.Stderr, "required tree flag was not set")
				os.Exit(1)
			}
			binner, err := discretize.New(config.settings.Discretize)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			t, err := loadTree(config.Context(), config.treeInput, config.settings)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			var prediction tree.Prediction
			if len(args) == 1 {
				prediction, err = predictValues(t, binner, args[0])
			} else {
				prediction, err = predictInteractively(t, binner)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			if !prediction.Matched {
				fmt.Println("Unable to predict")
				return
			}
			fmt.Printf("Predicted label is %s\n", prediction.Class)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON, or redis:ID to load it from redis (required)")
	return cmd
}

func predictValues(t *tree.Tree, binner *discretize.Binner, arg string) (tree.Prediction, error) {
	values, err := parseValues(arg)
	if err != nil {
		return tree.Unmatched, err
	}
	features, err := binner.Values(values)
	if err != nil {
		return tree.Unmatched, err
	}
	return t.Predict(features)
}

func predictInteractively(t *tree.Tree, binner *discretize.Binner) (tree.Prediction, error) {
	s := inputsample.New(os.Stdin, binner.Config().FeatureCount, stdoutValueRequester{})
	return t.PredictFunc(func(feature int) (int, error) {
		v, err := s.ValueFor(feature)
		if err != nil {
			return 0, err
		}
		return binner.Value(feature, v), nil
	})
}

type stdoutValueRequester struct{}

func (stdoutValueRequester) RequestValueFor(feature int) error {
	fmt.Printf("Please provide the record's value for feature %d:\n", feature)
	return nil
}

func (stdoutValueRequester) RejectValueFor(feature int, value string) error {
	fmt.Printf("%q is not a valid value for feature %d. Please provide a real number.\n", value, feature)
	return nil
}

func parseValues(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing value %d: %v", i, err)
		}
		values[i] = v
	}
	return values, nil
}
