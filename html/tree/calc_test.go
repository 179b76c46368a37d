package tree

import (
	"errors"
	"testing"

	"github.com/benoitkugler/webstyle/css/parser"
	pr "github.com/benoitkugler/webstyle/css/properties"
	tu "github.com/benoitkugler/webstyle/utils/testutils"
)

func evaluate(t *testing.T, css string) (CalcValue, error) {
	t.Helper()
	tokens := parser.RemoveWhitespace(parser.Tokenize(css))
	if len(tokens) != 1 || !IsMathFunction(tokens[0]) {
		t.Fatalf("invalid test input %s", css)
	}
	return CalcEvaluator{}.Evaluate(tokens[0], func(d pr.Dimension) (Fl, error) {
		if d.Unit == pr.Em {
			return d.Value * 10, nil
		}
		if pt, ok := d.ToPoints(); ok {
			return pt, nil
		}
		return 0, ErrStyleDatabaseRequired
	})
}

func TestCalcEvaluator(t *testing.T) {
	for _, test := range []struct {
		css      string
		expected CalcValue
	}{
		{"calc(1 + 2 * 3)", CalcValue{Value: 7, Type: CalcNumber}},
		{"calc((1 + 2) * 3)", CalcValue{Value: 9, Type: CalcNumber}},
		{"calc(2em - 4pt)", CalcValue{Value: 16, Type: CalcLength}},
		{"calc(1pt +2pt)", CalcValue{Value: 3, Type: CalcLength}},
		{"calc(10% * 2 + 1pt)", CalcValue{Value: 1, Percent: 20, Type: CalcLengthPercentage}},
		{"calc(3pt / 2)", CalcValue{Value: 1.5, Type: CalcLength}},
		{"CALC(90deg + 0.5turn)", CalcValue{Value: 270, Type: CalcAngle}},
		{"calc(1s + 500ms)", CalcValue{Value: 1.5, Type: CalcTime}},
		{"min(1pt, 2pt, 0.5pt)", CalcValue{Value: 0.5, Type: CalcLength}},
		{"max(10%, 20%)", CalcValue{Percent: 20, Type: CalcPercentage}},
		{"clamp(1pt, 5pt, 3pt)", CalcValue{Value: 3, Type: CalcLength}},
		{"clamp(4pt, 1pt, 8pt)", CalcValue{Value: 4, Type: CalcLength}},
		{"calc(min(1, 2) * 4pt)", CalcValue{Value: 4, Type: CalcLength}},
	} {
		got, err := evaluate(t, test.css)
		if err != nil {
			t.Fatalf("%s: %s", test.css, err)
		}
		tu.AssertEqual(t, got, test.expected)
	}

	got, err := evaluate(t, "calc(2 * pi)")
	tu.AssertEqual(t, err, nil)
	tu.AssertEqual(t, got.String(), "6.283185")
}

func TestCalcInvalid(t *testing.T) {
	for _, css := range []string{
		"calc(1pt + 2)",
		"calc(1pt * 2pt)",
		"calc(1pt / 0)",
		"calc(1pt / 1pt)",
		"calc(1pt 2pt)",
		"calc()",
		"min(1pt, 10%)",
		"max(calc(1pt + 10%), 1pt)",
		"clamp(1pt, 2pt)",
		"calc(1foo)",
	} {
		_, err := evaluate(t, css)
		tu.AssertEqual(t, err, errInvalidMath)
	}

	_, err := evaluate(t, "calc(1vw + 1pt)")
	tu.AssertEqual(t, errors.Is(err, ErrStyleDatabaseRequired), true)
}

func TestCalcValueString(t *testing.T) {
	tu.AssertEqual(t, CalcValue{Value: 2, Percent: 50, Type: CalcLengthPercentage}.String(), "calc(50% + 2pt)")
	tu.AssertEqual(t, CalcValue{Value: -2, Percent: 50, Type: CalcLengthPercentage}.String(), "calc(50% - 2pt)")
	tu.AssertEqual(t, CalcValue{Percent: 50, Type: CalcPercentage}.Resolve(20), Fl(10))
}
