// SPDX-License-Identifier: MIT
// Package: balclust/lloyd
//
// options.go — functional options for Cluster / NewClusterer.
//
// Invalid values never panic: the first violation is recorded and surfaced
// as ErrOptionViolation by NewClusterer.

package lloyd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Defaults match the classic balanced Lloyd driver.
const (
	DefaultMaxIterations       = 5
	DefaultRebalanceIterations = 5
)

// Options configures a clustering run.
type Options struct {
	// MaxIterations bounds the Relax + Recenter rounds (≥ 1).
	MaxIterations int

	// RebalanceIterations bounds the local-exchange passes run after the main
	// loop (≥ 0; 0 disables rebalancing).
	RebalanceIterations int

	// ScratchSize is the largest cluster Recenter can process. 0 selects
	// DefaultScratchSize(n, k).
	ScratchSize int

	// Logger receives debug records per round and an info record per run.
	Logger *log.Logger

	// Observer receives progress callbacks (metrics).
	Observer Observer

	// CheckInvariants validates the State after every step (debugging aid,
	// O(n) per step).
	CheckInvariants bool

	err error // first invalid option, surfaced as ErrOptionViolation
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns the defaults: 5 rounds, 5 rebalance passes, default
// scratch size, discarded logs, no-op observer, no invariant checks.
func DefaultOptions() Options {
	return Options{
		MaxIterations:       DefaultMaxIterations,
		RebalanceIterations: DefaultRebalanceIterations,
		ScratchSize:         0,
		Logger:              log.New(io.Discard),
		Observer:            NoopObserver{},
	}
}

// record keeps the first option error.
func (o *Options) record(err error) {
	if o.err == nil {
		o.err = err
	}
}

// WithMaxIterations sets the round budget; n must be ≥ 1.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.record(fmt.Errorf("WithMaxIterations(%d): %w", n, ErrOptionViolation))
			return
		}
		o.MaxIterations = n
	}
}

// WithRebalanceIterations sets the number of rebalance passes; n must be ≥ 0.
func WithRebalanceIterations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.record(fmt.Errorf("WithRebalanceIterations(%d): %w", n, ErrOptionViolation))
			return
		}
		o.RebalanceIterations = n
	}
}

// WithScratchSize sets the maximum cluster size Recenter accepts; n ≥ 1.
func WithScratchSize(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.record(fmt.Errorf("WithScratchSize(%d): %w", n, ErrOptionViolation))
			return
		}
		o.ScratchSize = n
	}
}

// WithLogger routes run logs to l. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithObserver installs progress callbacks. A nil observer is ignored.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		if obs != nil {
			o.Observer = obs
		}
	}
}

// WithInvariantChecks validates the forest after every step.
func WithInvariantChecks() Option {
	return func(o *Options) { o.CheckInvariants = true }
}
