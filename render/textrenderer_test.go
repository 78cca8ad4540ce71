package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRendererGlyphs(t *testing.T) {
	tr := NewTextRenderer()
	tr.NextRow("c", []Edge{{Target: "b", Type: Parent}}, GlyphDot, false)
	tr.NextRow("b", []Edge{{Target: "a", Type: Ancestor}}, GlyphObsolete, false)
	tr.NextRow("a", nil, GlyphPlain, false)

	out := tr.String()
	assert.NotContains(t, out, "\n\n")
	assert.False(t, len(out) > 0 && out[len(out)-1] == '\n', "output must not end with a trailing newline")
	assert.Contains(t, out, string(byte(GlyphDot)))
	assert.Contains(t, out, string(byte(GlyphObsolete)))
	assert.Contains(t, out, string(byte(GlyphPlain)))
}

func TestTextRendererDeterministic(t *testing.T) {
	build := func() string {
		tr := NewTextRenderer()
		tr.NextRow("c", []Edge{{Target: "b", Type: Parent}}, GlyphPlain, false)
		tr.NextRow("b", []Edge{{Target: "a", Type: Parent}}, GlyphPlain, false)
		tr.NextRow("a", nil, GlyphPlain, false)
		return tr.String()
	}
	assert.Equal(t, build(), build())
}

func TestTextRendererAnonymousParentRendersTilde(t *testing.T) {
	tr := NewTextRenderer()
	tr.NextRow("orphan", []Edge{{Type: Anonymous}}, GlyphPlain, false)
	assert.Contains(t, tr.String(), "~")
}

func TestTextRendererDebugRowAppendsRelativeTimeAndReplacesTheRow(t *testing.T) {
	tr := NewTextRenderer()
	when := time.Now().Add(-2 * time.Hour)
	line := tr.DebugRow("a", nil, GlyphPlain, false, when)

	assert.Contains(t, line, "ago")
	require.Len(t, strings.Split(tr.String(), "\n"), 1, "DebugRow must not add an extra line beyond NextRow's own")
	assert.Equal(t, line, tr.String(), "the annotated line, not the bare NextRow line, must be what's retained")
}
