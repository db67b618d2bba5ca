package avatar

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSVG(t *testing.T) {
	b, err := NewBuilder().SetNameText("john", "doe").FirstCharOnly().ToUpperCase().
		DrawAsCircle().SetBorder(2).Bold().SetBackgroundColorString("#FF7F1B")
	require.NoError(t, err)
	a, err := b.Build()
	require.NoError(t, err)

	data, contentType, err := a.SVG(64, 64)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", contentType)

	doc := string(data)
	assert.True(t, strings.HasPrefix(doc, "<?xml"))
	assert.Contains(t, doc, `<ellipse cx="32" cy="32" rx="32" ry="32" style="fill:#FF7F1B"`)
	assert.Contains(t, doc, "stroke:#E57218;stroke-width:2")
	assert.Contains(t, doc, ">JD</text>")
	assert.Contains(t, doc, "font-family:Go,sans-serif")
	assert.Contains(t, doc, "font-size:32px")
	assert.Contains(t, doc, "font-weight:bold")
	assert.Contains(t, doc, "</svg>")
}

func TestSVGShapes(t *testing.T) {
	a, err := NewBuilder().DrawAsRoundRect(6).SetText("x").Build()
	require.NoError(t, err)
	data, _, err := a.SVG(40, 20)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<rect x="0" y="0" width="40" height="20" rx="6" ry="6" style="fill:#888888"`)

	a, err = NewBuilder().Build()
	require.NoError(t, err)
	data, _, err = a.SVG(40, 20)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<rect x="0" y="0" width="40" height="20" style="fill:#888888"`)
	assert.NotContains(t, string(data), "<text")
}

func TestSVGTextAlpha(t *testing.T) {
	a, err := NewBuilder().SetText("<a&b>").Italic().Build()
	require.NoError(t, err)
	a.SetAlpha(0x80)
	data, _, err := a.SVG(40, 40)
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, "fill-opacity:0.5")
	assert.Contains(t, doc, "font-style:italic")
	assert.Contains(t, doc, "&lt;a&amp;b&gt;")
}

func TestSVGTranslucentBackground(t *testing.T) {
	b, err := NewBuilder().SetBorder(2).SetBackgroundColorString("#80FF0000")
	require.NoError(t, err)
	a, err := b.Build()
	require.NoError(t, err)
	data, _, err := a.SVG(20, 20)
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, `style="fill:#FF0000;fill-opacity:0.5"`)
	// The border color is an opaque shade of the background
	assert.Contains(t, doc, "fill:none;stroke:#E50000;stroke-width:2")
	assert.NotContains(t, doc, "stroke-opacity")

	a.borderColor = color.NRGBA{R: 0x10, A: 0x40}
	data, _, err = a.SVG(20, 20)
	require.NoError(t, err)
	assert.Contains(t, string(data), "stroke:#100000;stroke-opacity:0.25;stroke-width:2")
}
