// Package input maps raw keyboard state onto named actions and analog axes.
//
// A Config is loaded from YAML (JSON documents parse as well), compiled
// against a KeyResolver into Mappings, and driven once per frame by a Mapper
// that emits Pressed and Released events on key edges and an Axis event for
// every axis on every frame.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyConfig = errors.New("input config is empty")
	ErrUnknownKey  = errors.New("unknown key")
	ErrInvalidAxis = errors.New("invalid axis")
)

// Config is the declarative form of the input mapping table.
type Config struct {
	ActionMappings map[string][]string   `yaml:"action_mappings"`
	AxisMappings   map[string]AxisConfig `yaml:"axis_mappings"`
}

type AxisConfig struct {
	Acceleration float32  `yaml:"acceleration"`
	Deceleration float32  `yaml:"deceleration"`
	Positive     []string `yaml:"positive"`
	Negative     []string `yaml:"negative"`
}

// LoadConfig reads and parses the config file at path.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open input config: %w", err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a config document. Unknown fields are rejected.
func ParseConfig(r io.Reader) (Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, ErrEmptyConfig
		}
		return Config{}, fmt.Errorf("parse input config: %w", err)
	}
	return cfg, nil
}
