package tree

// Test CSS custom properties, also known as CSS variables, and attr().

import (
	"errors"
	"strings"
	"testing"

	tu "github.com/benoitkugler/webstyle/utils/testutils"
)

func TestVariables(t *testing.T) {
	root := newStyle(t, "--size: 10px; --color: red", nil, nil)
	child := newStyle(t, "width: var(--size); color: var(--color); --size: 2px; margin: var(--size) 0", root, nil)
	tu.AssertEqual(t, value(t, root, "--size"), "10px")
	tu.AssertEqual(t, value(t, child, "--size"), "2px")
	tu.AssertEqual(t, value(t, child, "--color"), "red")
	tu.AssertEqual(t, value(t, child, "width"), "1.5pt")
	tu.AssertEqual(t, value(t, child, "color"), "rgb(255, 0, 0)")
	tu.AssertEqual(t, value(t, child, "margin-top"), "1.5pt")
	tu.AssertEqual(t, value(t, child, "margin-left"), "0pt")
	tu.AssertEqual(t, value(t, child, "margin"), "1.5pt 0pt")
}

func TestVariableFallback(t *testing.T) {
	logs := tu.CaptureLogs()
	s := newStyle(t, "width: var(--missing, 4pt); height: var(--missing); color: var(--a, var(--b, blue)); margin-top: var(--bad)", newStyle(t, "color: red", nil, nil), nil)
	tu.AssertEqual(t, value(t, s, "width"), "4pt")
	tu.AssertEqual(t, value(t, s, "color"), "rgb(0, 0, 255)")
	logs.AssertNoLogs(t)

	// invalid at computed-value time: inherit or initial
	logs = tu.CaptureLogs()
	tu.AssertEqual(t, value(t, s, "height"), "auto")
	logs.CheckLogs(t, "height")

	s = newStyle(t, "--bad: red; margin-top: var(--bad); color: var(--nope)", newStyle(t, "color: red", nil, nil), nil)
	logs = tu.CaptureLogs()
	tu.AssertEqual(t, value(t, s, "margin-top"), "0pt")
	tu.AssertEqual(t, value(t, s, "color"), "rgb(255, 0, 0)")
	logs.CheckLogs(t, "margin-top", "color")
}

func TestVariableInitial(t *testing.T) {
	root := newStyle(t, "--a: 1px", nil, nil)
	child := newStyle(t, "--a: initial; width: var(--a, 2px)", root, nil)
	tu.AssertEqual(t, value(t, child, "--a"), "")
	tu.AssertEqual(t, value(t, child, "width"), "1.5pt")

	inherited := newStyle(t, "--a: inherit; width: var(--a)", root, nil)
	tu.AssertEqual(t, value(t, inherited, "width"), "0.75pt")
}

func TestVariableCycle(t *testing.T) {
	s := newStyle(t, "--a: var(--b); --b: var(--a); --c: 1px; color: var(--a); width: var(--c); background-color: red", nil, nil)

	_, err := s.GetComputedValue("color")
	tu.AssertEqual(t, errors.Is(err, ErrVariableCycle), true)
	var re ResolutionError
	tu.AssertEqual(t, errors.As(err, &re), true)
	tu.AssertEqual(t, re.Property, "color")

	// other properties are not affected
	tu.AssertEqual(t, value(t, s, "width"), "0.75pt")
	tu.AssertEqual(t, value(t, s, "background-color"), "rgb(255, 0, 0)")

	_, err = s.GetComputedValue("--b")
	tu.AssertEqual(t, errors.Is(err, ErrVariableCycle), true)
	// the resolution state is not kept between calls
	_, err = s.GetComputedValue("color")
	tu.AssertEqual(t, errors.Is(err, ErrVariableCycle), true)

	// a variable used twice is not a cycle
	s = newStyle(t, "--a: 1px; --b: var(--a) var(--a); margin: var(--b)", nil, nil)
	tu.AssertEqual(t, value(t, s, "margin"), "0.75pt")
	tu.AssertEqual(t, value(t, s, "--b"), "1px 1px")
}

func TestVariableSelfReference(t *testing.T) {
	root := newStyle(t, "--a: 1px", nil, nil)
	// --a references itself, not the inherited value
	s := newStyle(t, "--a: calc(var(--a) + 1px); width: var(--a, 3px)", root, nil)
	_, err := s.GetComputedValue("width")
	tu.AssertEqual(t, errors.Is(err, ErrVariableCycle), true)
}

func TestAmplification(t *testing.T) {
	css := "--a: " + strings.Repeat("x ", 10) + ";"
	for _, name := range []string{"b", "c", "d", "e"} {
		prev := string(rune(name[0] - 1))
		css += "--" + name + ": " + strings.Repeat("var(--"+prev+") ", 10) + ";"
	}
	css += "content: var(--e); width: 1px"
	s := newStyle(t, css, nil, nil)

	_, err := s.GetComputedValue("content")
	tu.AssertEqual(t, errors.Is(err, ErrAmplification), true)
	_, err = s.GetComputedValue("--e")
	tu.AssertEqual(t, errors.Is(err, ErrAmplification), true)
	tu.AssertEqual(t, value(t, s, "--c"), strings.TrimSpace(strings.Repeat("x ", 1000)))
	tu.AssertEqual(t, value(t, s, "width"), "0.75pt")
}

func TestAttr(t *testing.T) {
	doc, cascade := setupCascade(t, `<!DOCTYPE html>
	<style>
		#a { width: attr(data-w px); height: attr(data-h px, 2pt); margin-left: attr(data-w %);
			 content: attr(title); border-top-color: attr(data-c color); min-width: attr(data-x length) }
	</style>
	<div id=a data-w=10 data-h=oops data-c=blue data-x="3pt" title="Hello"></div>`, "screen")
	a := find(t, doc, "#a")

	tu.AssertEqual(t, computed(t, cascade, a, nil, "width"), "7.5pt")
	tu.AssertEqual(t, computed(t, cascade, a, nil, "height"), "2pt")
	tu.AssertEqual(t, computed(t, cascade, a, nil, "margin-left"), "10%")
	tu.AssertEqual(t, computed(t, cascade, a, nil, "content"), `"Hello"`)
	tu.AssertEqual(t, computed(t, cascade, a, nil, "border-top-color"), "rgb(0, 0, 255)")
	tu.AssertEqual(t, computed(t, cascade, a, nil, "min-width"), "3pt")
}

func TestAttrDefaults(t *testing.T) {
	for _, test := range []struct {
		typ      string
		expected string
		ok       bool
	}{
		{"string", `""`, true},
		{"color", "currentcolor", true},
		{"integer", "0", true},
		{"%", "0%", true},
		{"length", "0px", true},
		{"em", "0em", true},
		{"foo", "", false},
	} {
		tokens, ok := attrDefault(test.typ)
		tu.AssertEqual(t, ok, test.ok)
		if ok {
			tu.AssertEqual(t, tokens[0].String(), test.expected)
		}
	}

	for _, test := range []struct {
		value, typ string
		ok         bool
	}{
		{"12", "integer", true},
		{"1.5", "integer", false},
		{"1.5", "number", true},
		{"inherit", "ident", false},
		{"foo", "ident", true},
		{"#zzz", "color", false},
		{"10deg", "angle", true},
		{"10deg", "length", false},
		{"2", "px", true},
		{"2px", "px", false},
	} {
		_, ok := coerceAttr(test.value, test.typ)
		tu.AssertEqual(t, ok, test.ok)
	}
}

func TestAttrPolicy(t *testing.T) {
	doc, cascade := setupCascade(t, `<!DOCTYPE html>
	<style>
		input { width: attr(data-token px, 5px); height: attr(value px); content: attr(value); margin-top: attr(data-size px) }
	</style>
	<input id=i type=password value="42" data-token="7" data-size="4">`, "screen")
	i := find(t, doc, "#i")

	logs := tu.CaptureLogs()
	_, err := cascade.GetComputedValue(i, "", "width", nil)
	var pe PolicyError
	tu.AssertEqual(t, errors.As(err, &pe), true)
	tu.AssertEqual(t, pe, PolicyError{Attribute: "data-token", Element: "input", Property: "width"})

	_, err = cascade.GetComputedValue(i, "", "height", nil)
	tu.AssertEqual(t, errors.As(err, &pe), true)
	tu.AssertEqual(t, pe.Attribute, "value")
	logs.CheckLogs(t, "data-token", "value")

	tu.AssertEqual(t, computed(t, cascade, i, nil, "content"), `"42"`)
	tu.AssertEqual(t, computed(t, cascade, i, nil, "margin-top"), "3pt")

	tu.AssertEqual(t, isCredentialLike("X-Api-Key"), true)
	tu.AssertEqual(t, isCredentialLike("data-title"), false)
}
