package validation

import (
	"errors"
	"testing"

	pa "github.com/benoitkugler/webstyle/css/parser"
	tu "github.com/benoitkugler/webstyle/utils/testutils"
)

func validate(name, value string) (string, error) {
	return ValidateLonghand(name, pa.Tokenize(value))
}

func assertValid(t *testing.T, name, value, expected string) {
	t.Helper()
	got, err := validate(name, value)
	if err != nil {
		t.Fatalf("%s: %s : unexpected error %s", name, value, err)
	}
	tu.AssertEqual(t, got, expected)
}

func assertInvalidValue(t *testing.T, name, value string) {
	t.Helper()
	_, err := validate(name, value)
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("%s: %s : expected invalid value, got %v", name, value, err)
	}
}

func TestValidateKeywords(t *testing.T) {
	assertValid(t, "color", "INHERIT", "inherit")
	assertValid(t, "color", " Red ", "Red")
	assertValid(t, "display", "block flow", "block flow")
	assertValid(t, "display", "table-cell", "table-cell")
	assertInvalidValue(t, "display", "block foo")
	assertInvalidValue(t, "position", "top")
	assertValid(t, "border-top-style", "dashed", "dashed")
	assertInvalidValue(t, "outline-style", "hidden")
	assertValid(t, "box-sizing", "padding-box", "padding-box")
	assertInvalidValue(t, "box-sizing", "margin-box")
}

func TestValidateLengths(t *testing.T) {
	assertValid(t, "width", "calc(100% - 2em)", "calc(100% - 2em)")
	assertValid(t, "width", "0", "0")
	assertValid(t, "margin-top", "-2px", "-2px")
	assertInvalidValue(t, "width", "-1px")
	assertInvalidValue(t, "width", "12")
	assertInvalidValue(t, "padding-left", "-1em")
	assertValid(t, "max-width", "none", "none")
	assertInvalidValue(t, "min-width", "none")
	assertValid(t, "border-left-width", "thick", "thick")
	assertInvalidValue(t, "border-left-width", "10%")
	assertValid(t, "line-height", "1.2", "1.2")
	assertValid(t, "font-size", "larger", "larger")
	assertInvalidValue(t, "font-size", "-1em")
	assertValid(t, "border-spacing", "1px 2px", "1px 2px")
	assertInvalidValue(t, "border-spacing", "1px 2px 3px")
}

func TestValidateOthers(t *testing.T) {
	assertValid(t, "font-family", `Arial, "Times New Roman"`, `Arial, "Times New Roman"`)
	assertInvalidValue(t, "font-family", "Arial, 12px")
	assertInvalidValue(t, "font-family", "inherit, serif")
	assertInvalidValue(t, "text-decoration-line", "underline underline")
	assertValid(t, "grid-row-start", "span 2", "span 2")
	assertInvalidValue(t, "grid-row-start", "span")
	assertInvalidValue(t, "grid-row-start", "0")
	assertValid(t, "background-image", "url(a.png), linear-gradient(red, blue)", "url(a.png), linear-gradient(red, blue)")
	assertInvalidValue(t, "background-image", "url(a.png),")
	assertValid(t, "quotes", `"«" "»"`, `"«" "»"`)
	assertInvalidValue(t, "quotes", `"«"`)
	assertValid(t, "color", "rgb(10% 20% 30% / 0.5)", "rgb(10% 20% 30% / 0.5)")
	assertInvalidValue(t, "color", "rgb(1, 2)")
	assertValid(t, "z-index", "-3", "-3")
	assertInvalidValue(t, "z-index", "1.5")
	assertValid(t, "transition-duration", "1s, 200ms", "1s, 200ms")
	assertInvalidValue(t, "transition-duration", "-1s")
}

func TestValidatePending(t *testing.T) {
	assertValid(t, "width", "var(--w, 10px)", "var(--w, 10px)")
	assertValid(t, "content", "attr(title)", "attr(title)")
	// no check before substitution
	assertValid(t, "padding-top", "calc(var(--x) * -1)", "calc(var(--x) * -1)")
}

func TestValidateCustom(t *testing.T) {
	assertValid(t, "--main-color", "  #06c  ", "#06c")
	assertValid(t, "--Any", "{ a: b }", "{ a: b }")
	assertValid(t, "--empty", " ", " ")
}

func TestValidateErrors(t *testing.T) {
	_, err := validate("foo", "1px")
	tu.AssertEqual(t, errors.Is(err, ErrUnknown), true)

	_, err = validate("width", "  ")
	var ve ValueError
	if !errors.As(err, &ve) || ve.Property != "width" {
		t.Fatalf("unexpected error %v", err)
	}

	_, err = validate("width", "red")
	if !errors.As(err, &ve) || ve.Value != "red" {
		t.Fatalf("unexpected error %v", err)
	}
}
