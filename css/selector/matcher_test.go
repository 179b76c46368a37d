package selector

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	tu "github.com/benoitkugler/webstyle/utils/testutils"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const fixture = `<!DOCTYPE html>
<html lang="en-US">
<body>
<div id="main" class="container">
  <h1>Title</h1>
  <p class="intro">First</p>
  <p>Second <span>only</span></p>
  <p lang="fr" class="note important">Troisième</p>
  <ul>
    <li>1</li><li class="skip">2</li><li>3</li><li>4</li><li class="skip">5</li>
  </ul>
  <a href="http://example.com/doc.pdf">pdf</a>
  <a href="/local">local</a>
  <div></div>
</div>
<form>
  <input type="checkbox" checked>
  <input type="text" placeholder="name" disabled>
</form>
</body>
</html>`

func loadFixture(t testing.TB) (*goquery.Document, *html.Node) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fixture))
	require.NoError(t, err)
	return doc, doc.Find("html").Nodes[0]
}

func texts(nodes []*html.Node) []string {
	out := []string{}
	for _, n := range nodes {
		out = append(out, (&goquery.Selection{Nodes: []*html.Node{n}}).Text())
	}
	return out
}

func matchAllString(t *testing.T, root *html.Node, sel string) []*html.Node {
	t.Helper()
	list, err := Parse(sel)
	require.NoError(t, err)
	require.Len(t, list, 1)
	return MatchAll(root, list[0])
}

func TestAgainstCascadia(t *testing.T) {
	_, root := loadFixture(t)
	for _, sel := range []string{
		"p", "div p", "div > p", "p + p", "h1 ~ p", ".intro", "#main", "*",
		"[lang]", "[lang|=en]", "a[href^='http']", "a[href$='.pdf']", "a[href*=example]",
		"[class~=note]", "li:nth-child(2n+1)", "li:nth-last-child(2)", "li:nth-of-type(even)",
		"p:first-child", "p:last-of-type", "span:only-child", ":root", "li:not(.skip)",
		"div:has(span)", "ul li:first-child + li", "body > div > *:last-child",
		"input:checked", "input:disabled",
	} {
		exp := cascadia.MustCompile(sel).MatchAll(root)
		got := matchAllString(t, root, sel)
		if len(exp) != len(got) {
			t.Fatalf("%s: expected %d matches, got %d", sel, len(exp), len(got))
		}
		for i := range exp {
			if exp[i] != got[i] {
				t.Fatalf("%s: different match at %d", sel, i)
			}
		}
	}
}

func TestNthChild(t *testing.T) {
	_, root := loadFixture(t)
	tu.AssertEqual(t, texts(matchAllString(t, root, "li:nth-child(2n+1)")), []string{"1", "3", "5"})
	tu.AssertEqual(t, texts(matchAllString(t, root, "li:nth-child(0n+0)")), []string{})
	tu.AssertEqual(t, texts(matchAllString(t, root, "li:nth-child(-n+3)")), []string{"1", "2", "3"})
	tu.AssertEqual(t, texts(matchAllString(t, root, "li:nth-last-child(-2n+3)")), []string{"3", "5"})
	tu.AssertEqual(t, texts(matchAllString(t, root, "li:nth-child(2n of .skip)")), []string{"5"})
	tu.AssertEqual(t, texts(matchAllString(t, root, "li:nth-child(3)")), []string{"3"})
}

func TestNthMatches(t *testing.T) {
	for _, test := range []struct {
		a, b      int
		positions []int
	}{
		{2, 1, []int{1, 3, 5, 7, 9}},
		{0, 0, nil},
		{0, 3, []int{3}},
		{-2, 5, []int{1, 3, 5}},
		{3, -1, []int{2, 5, 8}},
		{-1, -1, nil},
		{1, 0, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	} {
		var got []int
		for pos := 1; pos <= 10; pos++ {
			if nthMatches(test.a, test.b, pos) {
				got = append(got, pos)
			}
		}
		tu.AssertEqual(t, got, test.positions)
	}
}

func findElement(t *testing.T, doc *goquery.Document, sel string) Element {
	t.Helper()
	nodes := doc.Find(sel).Nodes
	require.NotEmpty(t, nodes, sel)
	return NewHTMLElement(nodes[0])
}

func TestMatchList(t *testing.T) {
	doc, _ := loadFixture(t)
	intro := findElement(t, doc, "p.intro")

	tu.AssertEqual(t, MatchList(intro, MustCompile("p, .intro")), 1)
	tu.AssertEqual(t, MatchList(intro, MustCompile(".intro, p")), 0)
	// ties are won by the later selector
	tu.AssertEqual(t, MatchList(intro, MustCompile("p.intro, p.x, p[class]")), 2)
	tu.AssertEqual(t, MatchList(intro, MustCompile("ul, span")), -1)
}

func TestIsWhereSpecificity(t *testing.T) {
	doc, _ := loadFixture(t)
	intro := findElement(t, doc, "p.intro")
	m := Matcher{}

	check := func(sel string, exp Specificity) {
		t.Helper()
		ok, spec := m.MatchWithSpecificity(intro, "", MustCompile(sel)[0])
		require.True(t, ok, sel)
		tu.AssertEqual(t, spec, exp)
	}
	check(":is(p, #main .intro)", Specificity{0, 1, 1, 0})
	check(":is(#nothing, p)", Specificity{0, 0, 0, 1})
	check(":where(#main .intro)", Specificity{})
	check(":where(#main) .intro", Specificity{0, 0, 1, 0})
	check("p:not(#nothing)", Specificity{0, 1, 0, 1})
	check("p:nth-child(1 of .intro, #x)", Specificity{0, 1, 1, 1})

	tu.AssertEqual(t, SpecificityOf(MustCompile(":is(#nothing, p)")[0]), Specificity{0, 1, 0, 0})
}

func TestHas(t *testing.T) {
	_, root := loadFixture(t)
	tu.AssertEqual(t, len(matchAllString(t, root, "div:has(> h1)")), 1)
	tu.AssertEqual(t, len(matchAllString(t, root, "body:has(> h1)")), 0)
	tu.AssertEqual(t, texts(matchAllString(t, root, "p:has(+ ul)")), []string{"Troisième"})
	tu.AssertEqual(t, texts(matchAllString(t, root, "h1:has(~ ul li.skip)")), []string{"Title"})
	tu.AssertEqual(t, len(matchAllString(t, root, "ul:has(+ a, > p)")), 1)
}

func TestLangAndDir(t *testing.T) {
	_, root := loadFixture(t)
	tu.AssertEqual(t, texts(matchAllString(t, root, "p:lang(fr)")), []string{"Troisième"})
	tu.AssertEqual(t, len(matchAllString(t, root, "p:lang(en)")), 2)
	tu.AssertEqual(t, len(matchAllString(t, root, "p:lang('*-US')")), 2)
	tu.AssertEqual(t, len(matchAllString(t, root, "p:lang(de, fr)")), 1)
	tu.AssertEqual(t, len(matchAllString(t, root, "h1:dir(ltr)")), 1)
	tu.AssertEqual(t, len(matchAllString(t, root, "h1:dir(rtl)")), 0)
}

func TestQuirks(t *testing.T) {
	doc, _ := loadFixture(t)
	intro := findElement(t, doc, "p.intro")
	main := findElement(t, doc, "#main")

	for _, sel := range []string{".INTRO", "[CLASS=INTRO]"} {
		s := MustCompile(sel)[0]
		require.False(t, Matcher{}.Match(intro, "", s), sel)
		require.True(t, Matcher{Quirks: true}.Match(intro, "", s), sel)
	}
	s := MustCompile("#MAIN")[0]
	require.False(t, Matches(main, s))
	require.True(t, Matcher{Quirks: true}.Match(main, "", s))
	// explicit case-sensitivity wins
	require.False(t, Matcher{Quirks: true}.Match(intro, "", MustCompile("[class=INTRO s]")[0]))
	require.True(t, Matches(intro, MustCompile("[class=INTRO i]")[0]))
}

func TestPseudoElements(t *testing.T) {
	doc, _ := loadFixture(t)
	intro := findElement(t, doc, "p.intro")
	m := Matcher{}

	before := MustCompile("div > p::before")[0]
	require.True(t, m.Match(intro, "before", before))
	require.False(t, m.Match(intro, "", before))
	require.False(t, m.Match(intro, "after", before))
	require.True(t, m.Match(intro, "after", MustCompile(".intro:after")[0]))
	// pseudo-elements only apply to the subject
	_, err := Parse("div::before p")
	require.Error(t, err)
}

func TestAttributeNamespaces(t *testing.T) {
	root, err := html.Parse(strings.NewReader(`<p><svg><a xlink:href="#target"></a></svg></p>`))
	require.NoError(t, err)
	link := MatchFirst(root, MustCompile("a")[0])
	require.NotNil(t, link)
	el := NewHTMLElement(link)

	require.True(t, Matches(el, MustCompile("[*|href]")[0]))
	require.True(t, Matches(el, MustCompile(`[*|href="#target"]`)[0]))
	require.False(t, Matches(el, MustCompile("[href]")[0]))

	list, err := ParseWithNamespaces("[xlink|href], [xml|href]", map[string]string{
		"xlink": "http://www.w3.org/1999/xlink",
		"xml":   "http://www.w3.org/XML/1998/namespace",
	})
	require.NoError(t, err)
	require.True(t, Matches(el, list[0]))
	require.False(t, Matches(el, list[1]))
}

func TestElementIdentity(t *testing.T) {
	doc, _ := loadFixture(t)
	node := doc.Find("p.intro").Nodes[0]
	el := NewHTMLElement(node)
	require.True(t, el == NewHTMLElement(node))
	require.True(t, el.Parent() == NewHTMLElement(node.Parent))
	require.True(t, el.Parent().FirstChild().NextSibling() == el)
	require.Equal(t, node, el.(HTMLElement).Node())
	require.Nil(t, NewHTMLElement(node.FirstChild)) // text node
}

func TestTotality(t *testing.T) {
	_, root := loadFixture(t)
	for _, sel := range []string{"p:hover", "p:unknown-class", "p:unknown-function(1)", ":is()", "p:visited"} {
		tu.AssertEqual(t, len(matchAllString(t, root, sel)), 0)
	}
	// unknown condition kinds never match
	require.False(t, Matches(NewHTMLElement(root), Compound{Conditions: []Condition{nil}}))
	require.False(t, Matches(nil, MustCompile("p")[0]))
}

func TestStates(t *testing.T) {
	_, root := loadFixture(t)
	tu.AssertEqual(t, len(matchAllString(t, root, "input:placeholder-shown")), 1)
	tu.AssertEqual(t, len(matchAllString(t, root, "input:enabled")), 1)
	tu.AssertEqual(t, len(matchAllString(t, root, ":checked:default")), 1)
	tu.AssertEqual(t, len(matchAllString(t, root, "a:link")), 2)
	tu.AssertEqual(t, len(matchAllString(t, root, "div:empty")), 1)
	tu.AssertEqual(t, len(matchAllString(t, root, "input:read-only")), 1)
}
