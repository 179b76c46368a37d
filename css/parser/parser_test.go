package parser

import (
	"errors"
	"testing"

	tu "github.com/benoitkugler/webstyle/utils/testutils"
	"go.uber.org/multierr"
)

func TestTokenize(t *testing.T) {
	tokens := RemoveWhitespace(Tokenize(`a.b #id [x~="y"] rgb(1, 2%, 3px) url(foo.png) !important`))
	kinds := make([]Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	tu.AssertEqual(t, kinds, []Kind{Ident, Delim, Ident, Hash, SquareBracketsBlock, Function, URL, Delim, Ident})
	tu.AssertEqual(t, tokens[3].Value, "id")

	attr := tokens[4].Arguments
	tu.AssertEqual(t, attr[0].Value, "x")
	tu.AssertEqual(t, attr[1], Token{Kind: Delim, Value: "~="})
	tu.AssertEqual(t, attr[2], Token{Kind: String, Value: "y"})

	args := RemoveWhitespace(tokens[5].Arguments)
	tu.AssertEqual(t, args, []Token{
		{Kind: Number, Value: "1"}, {Kind: Comma},
		{Kind: Percentage, Value: "2"}, {Kind: Comma},
		{Kind: Dimension, Value: "3", Unit: "px"},
	})
	tu.AssertEqual(t, tokens[6].Value, "foo.png")
}

func TestSerialize(t *testing.T) {
	for _, input := range []string{
		"1px solid red",
		`calc(100% - 2em)`,
		`"a \"quoted\" string"`,
		"#fff url(a.png) no-repeat",
		"a[href^=http]",
	} {
		tu.AssertEqual(t, Serialize(Tokenize(input)), input)
	}
	tu.AssertEqual(t, SerializeValue(Tokenize("  1px \t  2px  ")), "1px 2px")
}

func TestEscapes(t *testing.T) {
	tokens := Tokenize(`\31 0 "a\"b"`)
	tu.AssertEqual(t, tokens[0], Token{Kind: Ident, Value: "10"})
	tu.AssertEqual(t, tokens[2], Token{Kind: String, Value: `a"b`})
}

func parseNthString(css string) *[2]int {
	a, b, ok := ParseNth(Tokenize(css))
	if !ok {
		return nil
	}
	return &[2]int{a, b}
}

func TestNth(t *testing.T) {
	for input, exp := range map[string]*[2]int{
		"n-1":      {1, -1},
		"-n-2":     {-1, -2},
		"3n-12":    {3, -12},
		"+2n":      {2, 0},
		"EVEN":     {2, 0},
		"odd":      {2, 1},
		"even":     {2, 0},
		"2n+1":     {2, 1},
		"2n + 1":   {2, 1},
		"-n+3":     {-1, 3},
		"n":        {1, 0},
		"+n":       {1, 0},
		"-n":       {-1, 0},
		"3":        {0, 3},
		"-2n-1":    {-2, -1},
		"n- 2":     {1, -2},
		"0n+0":     {0, 0},
		" 4n - 1 ": {4, -1},
	} {
		tu.AssertEqual(t, parseNthString(input), exp)
	}
	for _, input := range []string{"", "foo", "2n+", "1.5n", "+ n", "2n 1", "n-+1", "+-n", "n-a", "2m", "odd 1"} {
		if got := parseNthString(input); got != nil {
			t.Fatalf("expected invalid nth for %q, got %v", input, got)
		}
	}
}

func TestDeclarationList(t *testing.T) {
	decls, err := ParseDeclarationListString(`color: red; MARGIN : 0 auto !important; ; --Main-Color: #06c; 4: bad; width:`)
	tu.AssertEqual(t, len(decls), 3)
	tu.AssertEqual(t, decls[0].Name, "color")
	tu.AssertEqual(t, SerializeValue(decls[0].Value), "red")
	tu.AssertEqual(t, decls[1].Name, "margin")
	tu.AssertEqual(t, decls[1].Important, true)
	tu.AssertEqual(t, SerializeValue(decls[1].Value), "0 auto")
	tu.AssertEqual(t, decls[2].Name, "--Main-Color")

	errs := multierr.Errors(err)
	tu.AssertEqual(t, len(errs), 2)
	var pe ParseError
	if !errors.As(errs[0], &pe) {
		t.Fatalf("expected a ParseError, got %T", errs[0])
	}
}

func TestContainsFunction(t *testing.T) {
	tu.AssertEqual(t, ContainsFunction(Tokenize("calc(1px + var(--a))"), "VAR"), true)
	tu.AssertEqual(t, ContainsFunction(Tokenize("1px var"), "var"), false)
}
