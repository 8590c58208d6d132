package main

import (
	"fmt"
	"io/ioutil"

	"github.com/pbanos/id3/discretize"
	"github.com/pbanos/id3/perceptron"
	yaml "gopkg.in/yaml.v2"
)

/*
settings holds what the config file can set. A section present in the file
replaces the default one as a whole.
*/
type settings struct {
	Discretize  discretize.Config `yaml:"discretize"`
	Perceptron  perceptron.Config `yaml:"perceptron"`
	Redis       string            `yaml:"redis"`
	RedisPrefix string            `yaml:"redis_prefix"`
}

func defaultSettings() *settings {
	return &settings{
		Discretize:  discretize.DefaultConfig(),
		Perceptron:  perceptron.DefaultConfig(),
		RedisPrefix: "id3",
	}
}

/*
loadSettings takes the path to a YML config file and returns the settings
in it over the defaults, or the defaults if the path is empty. An error is
returned if the file cannot be read or parsed, or the discretization
settings are not valid.
*/
func loadSettings(path string) (*settings, error) {
	s := defaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %v", path, err)
	}
	return parseSettings(data, s)
}

type fileSettings struct {
	Discretize  *discretize.Config `yaml:"discretize"`
	Perceptron  *perceptron.Config `yaml:"perceptron"`
	Redis       string             `yaml:"redis"`
	RedisPrefix string             `yaml:"redis_prefix"`
}

func parseSettings(data []byte, s *settings) (*settings, error) {
	fs := &fileSettings{}
	err := yaml.UnmarshalStrict(data, fs)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %v", err)
	}
	if fs.Discretize != nil {
		s.Discretize = *fs.Discretize
	}
	if fs.Perceptron != nil {
		s.Perceptron = *fs.Perceptron
	}
	if fs.Redis != "" {
		s.Redis = fs.Redis
	}
	if fs.RedisPrefix != "" {
		s.RedisPrefix = fs.RedisPrefix
	}
	err = s.Discretize.Validate()
	if err != nil {
		return nil, fmt.Errorf("parsing config: %v", err)
	}
	return s, nil
}
