// SPDX-License-Identifier: MIT

// Package config loads and validates balclust run configurations from TOML.
//
// Example file:
//
//	input = "laplacian.mtx"
//	max_iterations = 20
//	rebalance_iterations = 5
//	clusters = 16
//	seed = 42
//	abs_weights = true
//
// Either clusters (random centers drawn with seed) or centers (explicit
// vertex ids) must be given, not both.
package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/balclust/lloyd"
)

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrUnknownKey indicates a TOML key that maps to no field.
	ErrUnknownKey = errors.New("config: unknown key")

	// validate is shared; validator.Validate caches struct metadata and is
	// safe for concurrent use.
	validate = validator.New()
)

// Config is one clustering run.
type Config struct {
	// Input is the Matrix Market file holding the graph.
	Input string `toml:"input"`

	MaxIterations       int `toml:"max_iterations" validate:"min=1"`
	RebalanceIterations int `toml:"rebalance_iterations" validate:"min=0"`

	// ScratchSize 0 selects lloyd.DefaultScratchSize.
	ScratchSize int `toml:"scratch_size" validate:"min=0"`

	Clusters int   `toml:"clusters" validate:"min=0"`
	Centers  []int `toml:"centers" validate:"omitempty,unique,dive,min=0"`
	Seed     int64 `toml:"seed"`

	// Symmetrize mirrors every entry; AbsWeights replaces entries by their
	// magnitude (signed matrices such as Laplacians).
	Symmetrize bool `toml:"symmetrize"`
	AbsWeights bool `toml:"abs_weights"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		MaxIterations:       lloyd.DefaultMaxIterations,
		RebalanceIterations: lloyd.DefaultRebalanceIterations,
	}
}

// Load reads and validates a TOML file, starting from Default.
func Load(path string) (Config, error) {
	cfg, err := Decode(path)
	if err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// Decode reads a TOML file over Default without validating it, so callers
// can apply overrides first.
func Decode(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err = checkUndecoded(md); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Read decodes and validates a TOML document, starting from Default.
func Read(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err = checkUndecoded(md); err != nil {
		return Config{}, err
	}

	return cfg, cfg.Validate()
}

// checkUndecoded rejects misspelled keys instead of silently ignoring them.
func checkUndecoded(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		return fmt.Errorf("%q: %w", keys[0].String(), ErrUnknownKey)
	}

	return nil
}

// Validate checks field ranges and that exactly one of Clusters and Centers
// is set.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	switch {
	case c.Clusters == 0 && len(c.Centers) == 0:
		return fmt.Errorf("clusters or centers is required: %w", ErrInvalidConfig)
	case c.Clusters > 0 && len(c.Centers) > 0:
		return fmt.Errorf("clusters and centers are mutually exclusive: %w", ErrInvalidConfig)
	}

	return nil
}

// Options translates the run parameters into lloyd options.
func (c Config) Options() []lloyd.Option {
	opts := []lloyd.Option{
		lloyd.WithMaxIterations(c.MaxIterations),
		lloyd.WithRebalanceIterations(c.RebalanceIterations),
	}
	if c.ScratchSize > 0 {
		opts = append(opts, lloyd.WithScratchSize(c.ScratchSize))
	}

	return opts
}

// formatValidationError reports the first failed rule in a readable form.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	e := verrs[0]
	switch e.Tag() {
	case "min":
		return fmt.Errorf("%s: must be at least %s: %w", e.Field(), e.Param(), ErrInvalidConfig)
	case "unique":
		return fmt.Errorf("%s: values must be distinct: %w", e.Field(), ErrInvalidConfig)
	default:
		return fmt.Errorf("%s: validation failed (%s): %w", e.Field(), e.Tag(), ErrInvalidConfig)
	}
}
