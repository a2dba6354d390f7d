// SPDX-License-Identifier: MIT
// Package: balclust/apsp
//
// errors.go — sentinel errors for the apsp package.

package apsp

import "errors"

var (
	// ErrBadCapacity indicates a negative capacity passed to NewMatrix.
	ErrBadCapacity = errors.New("apsp: capacity must be non-negative")

	// ErrCapacity indicates a requested order larger than the preallocated
	// capacity. Nothing is truncated: the matrix is left untouched.
	ErrCapacity = errors.New("apsp: order exceeds matrix capacity")

	// ErrNilGraph indicates a nil *csr.Graph.
	ErrNilGraph = errors.New("apsp: graph is nil")

	// ErrBadIndexMap indicates a global→local index map whose length differs
	// from the graph order.
	ErrBadIndexMap = errors.New("apsp: index map length differs from graph order")

	// ErrSourceOutOfRange indicates a Dijkstra source outside [0, n).
	ErrSourceOutOfRange = errors.New("apsp: source vertex out of range")
)
