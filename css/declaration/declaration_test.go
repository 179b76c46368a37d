package declaration

import (
	"errors"
	"testing"

	"github.com/benoitkugler/webstyle/css/shorthand"
	"github.com/benoitkugler/webstyle/css/validation"
	tu "github.com/benoitkugler/webstyle/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func parse(t *testing.T, css string) *Declaration {
	t.Helper()
	d, err := New(css)
	require.NoError(t, err)
	return d
}

func TestShorthandExpansion(t *testing.T) {
	var d Declaration
	require.NoError(t, d.SetProperty("margin", "1px 2px", false))

	tu.AssertEqual(t, d.Length(), 4)
	tu.AssertEqual(t, d.GetPropertyValue("margin-top"), "1px")
	tu.AssertEqual(t, d.GetPropertyValue("margin-right"), "2px")
	tu.AssertEqual(t, d.GetPropertyValue("margin-left"), "2px")
	tu.AssertEqual(t, d.GetPropertyValue("margin"), "1px 2px")
	tu.AssertEqual(t, d.CSSText(), "margin: 1px 2px;")
	tu.AssertEqual(t, d.LiveShorthands(), []string{"margin"})

	require.NoError(t, d.SetProperty("MARGIN-TOP", "3px", false))
	tu.AssertEqual(t, d.GetPropertyValue("margin-top"), "3px")
	tu.AssertEqual(t, d.CSSText(), "margin: 3px 2px 1px;")
	// setting the longhand moves it to the end
	tu.AssertEqual(t, d.Item(3), "margin-top")
	tu.AssertEqual(t, d.Item(4), "")
	tu.AssertEqual(t, d.Item(-1), "")
}

func TestPartialOverrideIdempotent(t *testing.T) {
	d := parse(t, "margin: 1px; margin-top: 3px")
	text := d.CSSText()
	require.NoError(t, d.SetProperty("margin-top", "3px", false))
	tu.AssertEqual(t, d.CSSText(), text)

	again := parse(t, text)
	assert.True(t, d.Diff(again).IsEmpty())
}

func TestImportantNotOverridden(t *testing.T) {
	d := parse(t, "color: red !important; color: blue")
	tu.AssertEqual(t, d.GetPropertyValue("color"), "red")
	tu.AssertEqual(t, d.GetPropertyPriority("color"), "important")

	require.NoError(t, d.SetProperty("color", "green", false))
	tu.AssertEqual(t, d.GetPropertyValue("color"), "red")

	require.NoError(t, d.SetProperty("color", "green", true))
	tu.AssertEqual(t, d.GetPropertyValue("color"), "green")
}

func TestImportantScope(t *testing.T) {
	// a wider important value wins over a narrower one
	d := parse(t, "margin-top: 2px !important; margin: 1px !important")
	tu.AssertEqual(t, d.GetPropertyValue("margin-top"), "1px")
	tu.AssertEqual(t, d.GetPropertyValue("margin"), "1px")
	tu.AssertEqual(t, d.GetPropertyPriority("margin"), "important")

	// but not the other way around
	d = parse(t, "margin: 1px !important; margin-top: 2px !important")
	tu.AssertEqual(t, d.GetPropertyValue("margin-top"), "1px")

	// a shorthand only overrides the longhands it can
	d = parse(t, "margin-top: 2px !important; margin: 1px")
	tu.AssertEqual(t, d.GetPropertyValue("margin-top"), "2px")
	tu.AssertEqual(t, d.GetPropertyValue("margin-left"), "1px")
	tu.AssertEqual(t, d.GetPropertyValue("margin"), "")
	tu.AssertEqual(t, d.GetPropertyPriority("margin"), "")
}

func TestRemove(t *testing.T) {
	d := parse(t, "margin: 1px 2px; color: red")
	tu.AssertEqual(t, d.RemoveProperty("margin"), "1px 2px")
	tu.AssertEqual(t, d.Length(), 1)
	tu.AssertEqual(t, d.LiveShorthands(), []string{})
	tu.AssertEqual(t, d.RemoveProperty("margin"), "")

	require.NoError(t, d.SetProperty("color", "", false))
	tu.AssertEqual(t, d.Length(), 0)
	tu.AssertEqual(t, d.CSSText(), "")
}

func TestResurrection(t *testing.T) {
	d := parse(t, "border-width: 1px; border-width: 2px")
	tu.AssertEqual(t, d.LiveShorthands(), []string{"border-width"})
	require.Len(t, d.shadowed, 1)
	first := d.shadowed[0]

	d.RemoveProperty("border-top-width")
	// the shadowed assignment claims the remaining longhands
	tu.AssertEqual(t, d.LiveShorthands(), []string{"border-width"})
	assert.Empty(t, d.shadowed)
	assert.True(t, d.live[first])
	tu.AssertEqual(t, d.props["border-left-width"].owner, first)
	// values are unchanged
	tu.AssertEqual(t, d.GetPropertyValue("border-left-width"), "2px")
	tu.AssertEqual(t, d.GetPropertyValue("border-top-width"), "")
}

func TestNoResurrectionOfLowerPriority(t *testing.T) {
	d := parse(t, "border-width: 1px; border-width: 2px !important")
	require.Len(t, d.shadowed, 1)
	d.RemoveProperty("border-top-width")
	tu.AssertEqual(t, len(d.shadowed), 1)
	tu.AssertEqual(t, d.LiveShorthands(), []string{"border-width"})
}

func TestRoundTrip(t *testing.T) {
	for _, css := range []string{
		"margin: 1px 2px 3px 4px; padding: 0",
		"border: 1px solid red; border-top-color: blue",
		"font: italic bold 12px/30px Georgia, serif",
		"flex: 1; color: rgb(1, 2, 3) !important",
		"background: url(a.png) no-repeat, red",
		"--Custom: a b; margin: 1px",
	} {
		d := parse(t, css)
		again := parse(t, d.CSSText())
		assert.True(t, d.Diff(again).IsEmpty(), "%s -> %s: %v", css, d.CSSText(), d.Diff(again))
	}
}

func TestMinified(t *testing.T) {
	d := parse(t, "margin: 0px 0px; color: #ffffff !important")
	tu.AssertEqual(t, d.MinifiedCSSText(), "margin:0;color:#fff!important")
	tu.AssertEqual(t, d.CSSText(), "margin: 0px; color: #ffffff !important;")
}

func TestPending(t *testing.T) {
	d := parse(t, "margin: var(--m) 2px; --m: 1px")
	tu.AssertEqual(t, d.GetPropertyValue("margin-top"), "")
	tu.AssertEqual(t, d.GetPropertyValue("margin"), "var(--m) 2px")
	p, ok := d.Get("margin-left")
	require.True(t, ok)
	assert.True(t, p.Pending)
	tu.AssertEqual(t, p.Shorthand, "margin")
	tu.AssertEqual(t, d.CSSText(), "margin: var(--m) 2px; --m: 1px;")

	require.NoError(t, d.SetProperty("margin-top", "3px", false))
	tu.AssertEqual(t, d.GetPropertyValue("margin"), "")
	tu.AssertEqual(t, d.CSSText(), "margin: var(--m) 2px; --m: 1px; margin-top: 3px;")
}

func TestCustomProperties(t *testing.T) {
	d := parse(t, "--Main-Color: red; --empty:;")
	tu.AssertEqual(t, d.GetPropertyValue("--Main-Color"), "red")
	tu.AssertEqual(t, d.GetPropertyValue("--main-color"), "")
	tu.AssertEqual(t, d.PropertyNames(), []string{"--Main-Color", "--empty"})
}

func TestSetCSSTextErrors(t *testing.T) {
	logs := tu.CaptureLogs()
	d, err := New("color: red; width: -3px; foo: bar; margin: 1px")
	logs.CheckLogs(t, "width", "foo")

	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.True(t, errors.Is(errs[0], validation.ErrInvalidValue))
	assert.True(t, errors.Is(errs[1], validation.ErrUnknown))
	tu.AssertEqual(t, d.CSSText(), "color: red; margin: 1px;")

	// invalid values leave the declaration unchanged
	assert.Error(t, d.SetProperty("margin", "1px 2px 3px 4px 5px", false))
	assert.Error(t, d.SetProperty("color", "12px", false))
	tu.AssertEqual(t, d.CSSText(), "color: red; margin: 1px;")
}

func TestClone(t *testing.T) {
	d := parse(t, "border-width: 1px; border-width: 2px; color: red")
	c := d.Clone()
	assert.True(t, d.Diff(c).IsEmpty())

	c.RemoveProperty("border-top-width")
	require.NoError(t, c.SetProperty("color", "blue", false))
	tu.AssertEqual(t, len(d.shadowed), 1)
	tu.AssertEqual(t, d.GetPropertyValue("color"), "red")
	tu.AssertEqual(t, d.Diff(c), Diff{LeftOnly: []string{"border-top-width"}, Different: []string{"color"}})
}

func TestDiff(t *testing.T) {
	left := parse(t, "color: red; margin-top: 1px; width: 2px")
	right := parse(t, "color: red !important; margin-top: 1px; height: 2px")
	tu.AssertEqual(t, left.Diff(right), Diff{
		LeftOnly:  []string{"width"},
		RightOnly: []string{"height"},
		Different: []string{"color"},
	})
	tu.AssertEqual(t, right.Diff(left).LeftOnly, []string{"height"})
}

func TestPut(t *testing.T) {
	d := parse(t, "color: red !important; margin: 1px")
	d.Put(shorthand.Property{Name: "color", Value: "blue"})
	tu.AssertEqual(t, d.GetPropertyValue("color"), "blue")
	tu.AssertEqual(t, d.GetPropertyPriority("color"), "")
	tu.AssertEqual(t, d.Item(d.Length()-1), "color")

	d.Put(shorthand.Property{Name: "margin-top", Value: "3px", Important: true})
	tu.AssertEqual(t, d.Length(), 5)
	tu.AssertEqual(t, d.GetPropertyValue("margin-top"), "3px")
	// mixed priorities
	tu.AssertEqual(t, d.GetPropertyValue("margin"), "")

	d.Put(shorthand.Property{Name: "--x", Value: "2px"})
	p, ok := d.Get("--x")
	assert.True(t, ok)
	tu.AssertEqual(t, p, shorthand.Property{Name: "--x", Value: "2px"})
}
