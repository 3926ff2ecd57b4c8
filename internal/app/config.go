package app

import (
	"errors"
	"fmt"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectPath string // project file or directory

	LogFormat string
	LogLevel  string
	// Output is the format results are printed in: text or json.
	Output string

	// Expression is evaluated instead of printing the tree, in the row
	// context of NodeID when set. NodeID alone prints the node's properties.
	Expression string
	NodeID     string
	Check      bool
	REPL       bool
}

// NewConfig validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectPath == "" {
		return nil, errors.New("ProjectPath is a required configuration field and cannot be empty")
	}
	if cfg.Output == "" {
		cfg.Output = OutputText
	}
	if cfg.Output != OutputText && cfg.Output != OutputJSON {
		return nil, fmt.Errorf("invalid output %q: must be 'text' or 'json'", cfg.Output)
	}

	modes := 0
	for _, set := range []bool{cfg.Expression != "", cfg.Check, cfg.REPL} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return nil, errors.New("expr, check and repl cannot be combined")
	}
	if cfg.NodeID != "" && (cfg.Check || cfg.REPL) {
		return nil, errors.New("node can only be used on its own or with expr")
	}

	return &cfg, nil
}
