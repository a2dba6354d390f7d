// SPDX-License-Identifier: MIT
// Package: balclust/lloyd
//
// errors.go — sentinel errors for balanced Lloyd clustering.
//
// Error classes:
//   • InvalidInput (fail fast, before any relaxation): ErrNilGraph, ErrNoCenters,
//     ErrTooManyCenters, ErrCenterOutOfRange, ErrDuplicateCenter,
//     ErrOptionViolation, ErrBadScratchSize, ErrNilRand.
//   • Caller wiring mistakes on the step API: ErrNilState, ErrNilScratch,
//     ErrStateMismatch, ErrScratchMismatch.
//   • ScratchOverflow (fatal, nothing truncated): ErrScratchOverflow.
//   • ErrBrokenInvariant: State.Validate found a corrupted forest.
//
// Disconnected graphs and non-convergence are NOT errors; they are reported
// through Result.Unassigned and Result.Converged.

package lloyd

import "errors"

var (
	// ErrNilGraph indicates a nil *csr.Graph.
	ErrNilGraph = errors.New("lloyd: graph is nil")

	// ErrNoCenters indicates an empty center list (k = 0).
	ErrNoCenters = errors.New("lloyd: at least one center is required")

	// ErrTooManyCenters indicates more centers than vertices (k > n).
	ErrTooManyCenters = errors.New("lloyd: more centers than vertices")

	// ErrCenterOutOfRange indicates a center id outside [0,n).
	ErrCenterOutOfRange = errors.New("lloyd: center out of range")

	// ErrDuplicateCenter indicates the same vertex listed twice as a center.
	ErrDuplicateCenter = errors.New("lloyd: duplicate center")

	// ErrOptionViolation indicates an invalid functional option value.
	ErrOptionViolation = errors.New("lloyd: invalid option supplied")

	// ErrNilState indicates a nil *State passed to a step function.
	ErrNilState = errors.New("lloyd: state is nil")

	// ErrNilScratch indicates a nil *Scratch passed to Recenter.
	ErrNilScratch = errors.New("lloyd: scratch is nil")

	// ErrStateMismatch indicates a State sized for a different graph.
	ErrStateMismatch = errors.New("lloyd: state does not match graph")

	// ErrScratchMismatch indicates a Scratch sized for a different graph or
	// cluster count.
	ErrScratchMismatch = errors.New("lloyd: scratch does not match state")

	// ErrBadScratchSize indicates a non-positive maximum cluster size.
	ErrBadScratchSize = errors.New("lloyd: scratch size must be positive")

	// ErrScratchOverflow indicates a cluster with more vertices than the
	// scratch matrices hold. The all-pairs computation is refused rather than
	// truncated; size the scratch larger (WithScratchSize).
	ErrScratchOverflow = errors.New("lloyd: cluster exceeds scratch capacity")

	// ErrBrokenInvariant indicates a State whose membership/predecessor arrays
	// do not describe a spanning forest rooted at the centers.
	ErrBrokenInvariant = errors.New("lloyd: cluster state invariant violated")

	// ErrNilRand indicates a nil *rand.Rand passed to RandomCenters.
	ErrNilRand = errors.New("lloyd: random source is nil")
)
