// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pegts

import (
	"github.com/go-json-experiment/json"
	"github.com/spf13/afero"
)

// DefaultErrorName is the name of the exported error type when none is
// configured.
const DefaultErrorName = "PeggySyntaxError"

// Config controls the generated module. The zero value is usable.
type Config struct {
	// Header is emitted near the top of the module, typically imports
	// used by grammar actions. Empty means no header.
	Header string

	// ErrorName is the exported name of the syntax error type.
	// Empty means DefaultErrorName.
	ErrorName string

	// Trace exports the compiler's default tracer.
	Trace bool
}

type Option func(c *Config) error

// WithHeader sets the header text.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithErrorName sets the error type name. An empty name restores the
// default; any other name must be a valid identifier that the module
// doesn't declare itself. A clash with the tracer export is caught when
// the module is generated.
func WithErrorName(name string) Option {
	return func(c *Config) error {
		if name != "" {
			if err := ValidateErrorName(name, false); err != nil {
				return err
			}
		}
		c.ErrorName = name
		return nil
	}
}

func WithTrace(flag bool) Option {
	return func(c *Config) error {
		c.Trace = flag
		return nil
	}
}

// NewConfig applies options, in order, to a zero Config.
func NewConfig(options ...Option) (Config, error) {
	var c Config
	for _, option := range options {
		if err := option(&c); err != nil {
			return Config{}, err
		}
	}
	return c, nil
}

// ErrorTypeName returns the configured error name, or DefaultErrorName.
func (c Config) ErrorTypeName() string {
	if c.ErrorName == "" {
		return DefaultErrorName
	}
	return c.ErrorName
}

// fileConfig is the JSON layout of a configuration file. It mirrors the
// plugin options of the compiler so one file serves both.
type fileConfig struct {
	TSPegJS struct {
		CustomHeader string `json:"customHeader"`
		ErrorName    string `json:"errorName"`
	} `json:"tspegjs"`
	Trace bool `json:"trace"`
}

// LoadConfig reads a JSON configuration file from fs. Missing members
// keep their zero values; unknown members are ignored.
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, err
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return Config{}, &DecodeError{Path: path, Err: err}
	}
	return NewConfig(
		WithHeader(fc.TSPegJS.CustomHeader),
		WithErrorName(fc.TSPegJS.ErrorName),
		WithTrace(fc.Trace),
	)
}
