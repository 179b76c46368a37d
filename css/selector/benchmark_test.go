package selector

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func MustParseHTML(doc string) *html.Node {
	dom, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		panic(err)
	}
	return dom
}

var (
	benchSelector = MustCompile(`div.matched`)[0]
	benchDoc      = `<!DOCTYPE html>
<html>
<body>
<div class="matched">
  <div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
    <div class="matched"></div>
  </div>
</div>
</body>
</html>
`
)
var benchDom = MustParseHTML(benchDoc)

func BenchmarkMatchAll(b *testing.B) {
	var matches []*html.Node
	for i := 0; i < b.N; i++ {
		matches = MatchAll(benchDom, benchSelector)
	}
	_ = matches
}

func BenchmarkMatchHas(b *testing.B) {
	sel := MustCompile(`body :has(> div.matched):nth-child(odd)`)[0]
	var matches []*html.Node
	for i := 0; i < b.N; i++ {
		matches = MatchAll(benchDom, sel)
	}
	_ = matches
}

func BenchmarkParse(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Parse(`div#main > ul li:nth-child(2n+1 of .x):not([lang|=en]), :is(h1, h2) ~ p::before`)
	}
}
