package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Glyph is the single character TextRenderer draws for a commit's own
// column, per spec §4.7: '@' for the working parent, 'x' for an obsolete
// commit, 'o' otherwise.
type Glyph byte

const (
	GlyphDot      Glyph = '@'
	GlyphObsolete Glyph = 'x'
	GlyphPlain    Glyph = 'o'
)

// TextRenderer is the ASCII adaptation of Renderer used for debugging
// and golden tests. It reuses Renderer's column allocation and adds
// glyph selection and a textual edge notation on top.
type TextRenderer struct {
	r     *Renderer
	lines []string
}

// NewTextRenderer returns an empty TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{r: NewRenderer()}
}

// Reserve delegates to the underlying Renderer.
func (t *TextRenderer) Reserve(hash Hash) {
	t.r.Reserve(hash)
}

// NextRow renders one line of ASCII graph for hash and records it.
func (t *TextRenderer) NextRow(hash Hash, parents []Edge, glyph Glyph, forceLastColumn bool) string {
	row := t.r.NextRow(hash, parents, forceLastColumn)
	line := formatRow(row, glyph)
	t.lines = append(t.lines, line)
	return line
}

// String returns every rendered row joined by newlines, with no trailing
// newline, per spec §4.7.
func (t *TextRenderer) String() string {
	return strings.Join(t.lines, "\n")
}

// DebugRow renders one line the same way NextRow does, then appends a
// relative-time annotation for when. The annotation depends on the wall
// clock, so output built with DebugRow is not byte-stable; NextRow's is.
func (t *TextRenderer) DebugRow(hash Hash, parents []Edge, glyph Glyph, forceLastColumn bool, when time.Time) string {
	line := t.NextRow(hash, parents, glyph, forceLastColumn)
	annotated := line + "  (" + humanize.Time(when) + ")"
	t.lines[len(t.lines)-1] = annotated
	return annotated
}

func formatRow(row GraphRow, glyph Glyph) string {
	cols := make([]byte, row.Width)
	for i := range cols {
		cols[i] = ' '
	}
	passThrough := map[int]bool{}
	for _, c := range row.PassThrough {
		passThrough[c] = true
	}
	for i := range cols {
		if i == row.Column {
			cols[i] = byte(glyph)
		} else if passThrough[i] {
			cols[i] = '|'
		}
	}

	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(c)
	}

	tokens := make([]string, 0, len(row.Edges))
	for _, e := range row.Edges {
		tokens = append(tokens, edgeToken(row.Column, e))
	}
	if len(tokens) > 0 {
		b.WriteString("  ")
		b.WriteString(strings.Join(tokens, " "))
	}
	return b.String()
}

func edgeToken(from int, e ColumnEdge) string {
	if e.Terminal {
		return "~"
	}
	dashed := e.Type == Ancestor
	var shape string
	switch {
	case e.Column == from:
		shape = "|"
	case e.Column > from:
		shape = fmt.Sprintf("\\%d", e.Column)
	default:
		shape = fmt.Sprintf("/%d", e.Column)
	}
	if dashed {
		return ":" + shape
	}
	return shape
}
