// SPDX-License-Identifier: MIT
// Package: balclust/csr
//
// errors.go — sentinel errors for the csr package.
//
// Error policy:
//   • Only package-level sentinels are exposed; callers branch with errors.Is.
//   • Context (row, index, value) is attached at the return site with %w.
//   • No function in this package panics on user input.

package csr

import "errors"

var (
	// ErrBadOrder indicates a negative vertex count.
	ErrBadOrder = errors.New("csr: vertex count must be non-negative")

	// ErrMalformed indicates inconsistent row offsets: wrong length, a first
	// offset other than 0, a decreasing offset, or a last offset that does not
	// match the neighbor/weight array lengths.
	ErrMalformed = errors.New("csr: malformed row offsets")

	// ErrIndexOutOfRange indicates a neighbor id (or an edge endpoint) outside [0,n).
	ErrIndexOutOfRange = errors.New("csr: vertex index out of range")

	// ErrNegativeWeight indicates an edge weight below zero.
	ErrNegativeWeight = errors.New("csr: negative edge weight")

	// ErrInvalidWeight indicates a NaN or ±Inf edge weight.
	ErrInvalidWeight = errors.New("csr: edge weight is NaN or Inf")

	// ErrTooFewVertices indicates a constructor parameter below its minimum
	// (Path n<2, Cycle n<3, Grid rows/cols<1).
	ErrTooFewVertices = errors.New("csr: parameter too small")

	// ErrNotSquare indicates a dense input whose rows differ in length from
	// the number of rows.
	ErrNotSquare = errors.New("csr: dense input is not square")
)
