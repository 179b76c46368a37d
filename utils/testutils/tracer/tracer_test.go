package tracer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/benoitkugler/webstyle/css/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestSelectorTree(t *testing.T) {
	out := SelectorTree(selector.MustCompile("div > p.a:not(#b), li::before")).String()
	assert.Contains(t, out, "div > p.a:not(#b), li::before")
	assert.Contains(t, out, "[combined]")
	assert.Contains(t, out, "[type]  p")
	assert.Contains(t, out, "[selector.Not]")
	assert.Contains(t, out, "[pseudo-element]  before")
}

func TestElementTree(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><p>a</p><script></script><div><span></span></div></body></html>`))
	require.NoError(t, err)
	root := selector.NewHTMLElement(doc.FirstChild)
	require.NotNil(t, root)

	out := ElementTree(root, func(el selector.Element) (string, bool) {
		return el.LocalName(), el.LocalName() != "script"
	}).String()
	assert.Contains(t, out, "html")
	assert.Contains(t, out, "span")
	assert.NotContains(t, out, "script")

	var buf bytes.Buffer
	NewWriterTracer(&buf).DumpTree(SelectorTree(selector.MustCompile("a")), "context")
	assert.True(t, strings.HasPrefix(buf.String(), "context\n"))
}
