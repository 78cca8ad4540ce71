// Package render allocates graph columns for an ordered commit stream and
// emits rows describing, for each commit, which column it occupies and
// how its parent edges connect to other columns (spec §4.6).
package render

import "github.com/bitcomplete/revgraph/hashset"

// Hash is re-exported so callers don't need to import hashset just to
// build an Edge.
type Hash = hashset.Hash

// AncestorType classifies one edge from a commit to one of its parents
// in the render set.
type AncestorType int

const (
	// Parent is a direct edge: both endpoints are adjacent in the
	// render set. Rendered solid.
	Parent AncestorType = iota
	// Ancestor crosses one or more omitted commits. Rendered dashed.
	Ancestor
	// Anonymous marks a parent absent from the known graph entirely.
	// Rendered as a single "~" terminator.
	Anonymous
)

// Edge is one outgoing parent edge from the commit a GraphRow describes.
type Edge struct {
	Target Hash
	Type   AncestorType
}

// ColumnEdge is an Edge resolved to the column its target occupies (or
// will occupy) in the row stream.
type ColumnEdge struct {
	Column int
	Type   AncestorType
	// Terminal is true when Type is Anonymous: the edge does not lead to
	// any other column, it simply ends.
	Terminal bool
}

// GraphRow is one row of the rendered graph.
type GraphRow struct {
	Hash Hash
	// Column is the column this commit occupies.
	Column int
	// Width is the number of columns this row spans: every column still
	// active after it was emitted, and at least the commit's own column.
	Width int
	// Edges describes where this commit's parent edges go.
	Edges []ColumnEdge
	// PassThrough lists columns, other than Column, that carry an
	// unrelated ancestor's line straight through this row.
	PassThrough []int
}

// Renderer allocates columns across a sequence of NextRow calls. It is
// stateful (column allocation depends on everything emitted so far) but
// single-threaded: callers must serialise their own calls, matching
// spec §5 ("no operation suspends; no operation blocks").
type Renderer struct {
	// columns[i] is the hash a future commit must have to continue
	// occupying column i; "" marks a released (free) column.
	columns []Hash
}

// NewRenderer returns an empty Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Reserve pre-allocates a column on the right edge for hash, so that
// when hash arrives it occupies that column (used for the public trunk).
func (r *Renderer) Reserve(hash Hash) {
	r.columns = append(r.columns, hash)
}

func (r *Renderer) findColumn(hash Hash) (int, bool) {
	for i, h := range r.columns {
		if h == hash {
			return i, true
		}
	}
	return -1, false
}

func (r *Renderer) firstFreeColumn() int {
	for i, h := range r.columns {
		if h == "" {
			return i
		}
	}
	r.columns = append(r.columns, "")
	return len(r.columns) - 1
}

// NextRow consumes the next commit in the stream. parents are its
// outgoing edges, already classified by the caller (dag.Dag, per
// spec §4.5's dagWalkerForRendering). forceLastColumn pins this commit
// to the last allocated column (used for the working-parent "you are
// here" row) instead of wherever it was otherwise expected.
func (r *Renderer) NextRow(hash Hash, parents []Edge, forceLastColumn bool) GraphRow {
	col, ok := r.findColumn(hash)
	if forceLastColumn && len(r.columns) > 0 {
		col = len(r.columns) - 1
		ok = true
	}
	if !ok {
		col = r.firstFreeColumn()
	}

	passThrough := make([]int, 0, len(r.columns))
	for i, h := range r.columns {
		if i != col && h != "" {
			passThrough = append(passThrough, i)
		}
	}

	r.columns[col] = ""
	edges := make([]ColumnEdge, 0, len(parents))
	firstAssigned := false
	for _, p := range parents {
		if p.Type == Anonymous {
			edges = append(edges, ColumnEdge{Column: -1, Type: Anonymous, Terminal: true})
			continue
		}
		if target, ok := r.findColumn(p.Target); ok {
			edges = append(edges, ColumnEdge{Column: target, Type: p.Type})
			continue
		}
		var targetCol int
		if !firstAssigned {
			targetCol = col
			firstAssigned = true
		} else {
			targetCol = r.firstFreeColumn()
		}
		r.columns[targetCol] = p.Target
		edges = append(edges, ColumnEdge{Column: targetCol, Type: p.Type})
	}

	r.trimTrailingFree()
	width := len(r.columns)
	if col+1 > width {
		width = col + 1
	}
	return GraphRow{
		Hash:        hash,
		Column:      col,
		Width:       width,
		Edges:       edges,
		PassThrough: passThrough,
	}
}

func (r *Renderer) trimTrailingFree() {
	for len(r.columns) > 0 && r.columns[len(r.columns)-1] == "" {
		r.columns = r.columns[:len(r.columns)-1]
	}
}
