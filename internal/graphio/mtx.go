// SPDX-License-Identifier: MIT

// Package graphio reads sparse matrices in Matrix Market coordinate format
// and turns them into csr graphs ready for clustering.
//
// Supported headers:
//
//	%%MatrixMarket matrix coordinate real|integer|pattern general|symmetric
//
// Entries are 1-based. Pattern entries get weight 1. A symmetric header
// mirrors every off-diagonal entry. Diagonal entries become self loops unless
// WithoutDiagonal is given. Rows of the result list their columns in
// ascending order whatever the entry order of the file.
package graphio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/balclust/csr"
)

var (
	// ErrHeader indicates a missing or malformed %%MatrixMarket banner.
	ErrHeader = errors.New("graphio: malformed Matrix Market header")

	// ErrUnsupported indicates a valid but unsupported banner (array,
	// complex, hermitian, skew-symmetric).
	ErrUnsupported = errors.New("graphio: unsupported Matrix Market variant")

	// ErrSyntax indicates a malformed size line or entry.
	ErrSyntax = errors.New("graphio: malformed Matrix Market body")

	// ErrNotSquare indicates a rectangular matrix.
	ErrNotSquare = errors.New("graphio: matrix is not square")
)

const banner = "%%matrixmarket"

// ReadOptions controls how matrix entries become arcs.
type ReadOptions struct {
	Symmetrize   bool // mirror every entry even under a general header
	AbsWeights   bool // use |a_ij|, e.g. for graph Laplacians
	DropDiagonal bool // discard a_ii
}

// ReadOption configures ReadOptions.
type ReadOption func(*ReadOptions)

// WithSymmetrize mirrors every entry (a_ij also yields j→i).
func WithSymmetrize() ReadOption { return func(o *ReadOptions) { o.Symmetrize = true } }

// WithAbsWeights replaces every value by its magnitude.
func WithAbsWeights() ReadOption { return func(o *ReadOptions) { o.AbsWeights = true } }

// WithoutDiagonal discards diagonal entries.
func WithoutDiagonal() ReadOption { return func(o *ReadOptions) { o.DropDiagonal = true } }

// header is the parsed banner.
type header struct {
	pattern   bool
	symmetric bool
}

// ReadFile opens path and calls Read.
func ReadFile(path string, opts ...ReadOption) (*csr.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graphio: %w", err)
	}
	defer f.Close()

	g, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// Read parses a Matrix Market coordinate matrix into a csr.Graph.
//
// Errors: ErrHeader, ErrUnsupported, ErrSyntax, ErrNotSquare, and the csr
// weight errors (ErrNegativeWeight when AbsWeights is off).
// Complexity: O(nnz) time and space.
func Read(r io.Reader, opts ...ReadOption) (*csr.Graph, error) {
	var cfg ReadOptions
	for _, opt := range opts {
		opt(&cfg)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	// 1) Banner.
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("graphio: %w", err)
		}
		return nil, fmt.Errorf("empty input: %w", ErrHeader)
	}
	hdr, err := parseHeader(sc.Text())
	if err != nil {
		return nil, err
	}

	// 2) Size line, after comments.
	line := 1
	var rows, cols, nnz int
	sized := false
	for !sized && sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '%' {
			continue
		}
		f := strings.Fields(text)
		if len(f) != 3 {
			return nil, fmt.Errorf("line %d: size line needs 3 fields: %w", line, ErrSyntax)
		}
		if rows, err = parseCount(f[0]); err == nil {
			if cols, err = parseCount(f[1]); err == nil {
				nnz, err = parseCount(f[2])
			}
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sized = true
	}
	if !sized {
		return nil, fmt.Errorf("missing size line: %w", ErrSyntax)
	}
	if rows != cols {
		return nil, fmt.Errorf("%d×%d: %w", rows, cols, ErrNotSquare)
	}

	// 3) Entries.
	edges := make([]csr.Edge, 0, nnz)
	mirror := hdr.symmetric || cfg.Symmetrize
	var i, j int
	var w float64
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '%' {
			continue
		}
		if i, j, w, err = parseEntry(text, hdr.pattern, rows); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if cfg.AbsWeights {
			w = math.Abs(w)
		}
		if i == j && cfg.DropDiagonal {
			continue
		}
		edges = append(edges, csr.Edge{From: i, To: j, Weight: w})
		if mirror && i != j {
			edges = append(edges, csr.Edge{From: j, To: i, Weight: w})
		}
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("graphio: %w", err)
	}

	// Canonical CSR: columns ascending within each row, file order for
	// duplicates. Row order decides tie-breaks during clustering.
	sort.SliceStable(edges, func(a, b int) bool {
		if edges[a].From != edges[b].From {
			return edges[a].From < edges[b].From
		}
		return edges[a].To < edges[b].To
	})

	return csr.FromEdges(rows, edges)
}

// parseHeader validates the banner line.
func parseHeader(text string) (header, error) {
	f := strings.Fields(strings.ToLower(text))
	if len(f) != 5 || f[0] != banner || f[1] != "matrix" {
		return header{}, fmt.Errorf("%q: %w", text, ErrHeader)
	}
	if f[2] != "coordinate" {
		return header{}, fmt.Errorf("format %q: %w", f[2], ErrUnsupported)
	}

	var h header
	switch f[3] {
	case "real", "integer":
	case "pattern":
		h.pattern = true
	default:
		return header{}, fmt.Errorf("field %q: %w", f[3], ErrUnsupported)
	}
	switch f[4] {
	case "general":
	case "symmetric":
		h.symmetric = true
	default:
		return header{}, fmt.Errorf("symmetry %q: %w", f[4], ErrUnsupported)
	}

	return h, nil
}

// parseCount parses a non-negative integer.
func parseCount(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("count %q: %w", s, ErrSyntax)
	}

	return v, nil
}

// parseEntry parses "i j [v]" (1-based) into 0-based indices and a weight.
func parseEntry(text string, pattern bool, n int) (int, int, float64, error) {
	f := strings.Fields(text)
	want := 3
	if pattern {
		want = 2
	}
	if len(f) != want {
		return 0, 0, 0, fmt.Errorf("entry %q needs %d fields: %w", text, want, ErrSyntax)
	}

	i, err1 := strconv.Atoi(f[0])
	j, err2 := strconv.Atoi(f[1])
	if err1 != nil || err2 != nil || i < 1 || i > n || j < 1 || j > n {
		return 0, 0, 0, fmt.Errorf("entry %q: index outside 1..%d: %w", text, n, ErrSyntax)
	}
	if pattern {
		return i - 1, j - 1, 1, nil
	}

	w, err := strconv.ParseFloat(f[2], 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("entry %q: value: %w", text, ErrSyntax)
	}

	return i - 1, j - 1, w, nil
}
