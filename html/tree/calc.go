package tree

import (
	"errors"
	"fmt"
	"math"

	"github.com/benoitkugler/webstyle/css/parser"
	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/utils"
)

var errInvalidMath = errors.New("invalid math expression")

// CalcType is the type of a math expression.
type CalcType uint8

const (
	CalcNumber CalcType = iota + 1
	CalcLength
	CalcPercentage
	// CalcLengthPercentage is a sum of a length and a percentage
	CalcLengthPercentage
	CalcAngle
	CalcTime
)

// CalcValue is the result of a math expression.
// Lengths are in points, angles in degrees and times in seconds.
type CalcValue struct {
	Value   Fl
	Percent Fl
	Type    CalcType
}

// Resolve returns the value, where percentages refer to `base`.
func (cv CalcValue) Resolve(base Fl) Fl { return cv.Value + cv.Percent*base/100 }

func (cv CalcValue) String() string {
	f := utils.FormatFloat
	switch cv.Type {
	case CalcNumber:
		return f(cv.Value)
	case CalcLength:
		return f(cv.Value) + "pt"
	case CalcPercentage:
		return f(cv.Percent) + "%"
	case CalcLengthPercentage:
		if cv.Value < 0 {
			return fmt.Sprintf("calc(%s%% - %spt)", f(cv.Percent), f(-cv.Value))
		}
		return fmt.Sprintf("calc(%s%% + %spt)", f(cv.Percent), f(cv.Value))
	case CalcAngle:
		return f(cv.Value) + "deg"
	case CalcTime:
		return f(cv.Value) + "s"
	}
	return ""
}

// Evaluator evaluates math functions: calc(), min(), max() and clamp().
type Evaluator interface {
	// Evaluate returns the value of the function token `fn`.
	// `toPoints` converts lengths.
	Evaluate(fn parser.Token, toPoints func(pr.Dimension) (Fl, error)) (CalcValue, error)
}

// IsMathFunction returns true for the functions handled by an [Evaluator].
func IsMathFunction(t parser.Token) bool {
	if t.Kind != parser.Function {
		return false
	}
	switch utils.AsciiLower(t.Value) {
	case "calc", "min", "max", "clamp":
		return true
	}
	return false
}

// CalcEvaluator is the default [Evaluator].
// A sum of a length and a percentage is kept as a CalcLengthPercentage;
// comparing such values in min(), max() or clamp() is an error.
type CalcEvaluator struct{}

func (CalcEvaluator) Evaluate(fn parser.Token, toPoints func(pr.Dimension) (Fl, error)) (CalcValue, error) {
	ev := calcState{toPoints: toPoints}
	return ev.function(fn)
}

type calcState struct {
	toPoints func(pr.Dimension) (Fl, error)
	tokens   []parser.Token
	pos      int
}

func (ev *calcState) function(fn parser.Token) (CalcValue, error) {
	args := parser.SplitOnComma(fn.Arguments)
	switch utils.AsciiLower(fn.Value) {
	case "calc":
		if len(args) != 1 {
			return CalcValue{}, errInvalidMath
		}
		return ev.expression(args[0])
	case "min", "max":
		values, err := ev.expressions(args)
		if err != nil {
			return CalcValue{}, err
		}
		out := values[0]
		for _, v := range values[1:] {
			if (utils.AsciiLower(fn.Value) == "min") == (v.compareKey() < out.compareKey()) {
				out = v
			}
		}
		return out, nil
	case "clamp":
		if len(args) != 3 {
			return CalcValue{}, errInvalidMath
		}
		values, err := ev.expressions(args)
		if err != nil {
			return CalcValue{}, err
		}
		lower, value, upper := values[0], values[1], values[2]
		if value.compareKey() > upper.compareKey() {
			value = upper
		}
		if value.compareKey() < lower.compareKey() {
			value = lower
		}
		return value, nil
	}
	return CalcValue{}, errInvalidMath
}

func (cv CalcValue) compareKey() Fl {
	if cv.Type == CalcPercentage {
		return cv.Percent
	}
	return cv.Value
}

// expressions evaluates comparable expressions
func (ev *calcState) expressions(args [][]parser.Token) ([]CalcValue, error) {
	if len(args) == 0 {
		return nil, errInvalidMath
	}
	out := make([]CalcValue, len(args))
	for i, arg := range args {
		v, err := ev.expression(arg)
		if err != nil {
			return nil, err
		}
		if v.Type == CalcLengthPercentage || (i > 0 && v.Type != out[0].Type) {
			return nil, errInvalidMath
		}
		out[i] = v
	}
	return out, nil
}

func (ev *calcState) expression(tokens []parser.Token) (CalcValue, error) {
	sub := calcState{toPoints: ev.toPoints, tokens: parser.RemoveWhitespace(tokens)}
	v, err := sub.sum()
	if err != nil {
		return v, err
	}
	if sub.pos != len(sub.tokens) {
		return CalcValue{}, errInvalidMath
	}
	return v, nil
}

func (ev *calcState) peek() (parser.Token, bool) {
	if ev.pos < len(ev.tokens) {
		return ev.tokens[ev.pos], true
	}
	return parser.Token{}, false
}

func (ev *calcState) sum() (CalcValue, error) {
	out, err := ev.product()
	if err != nil {
		return out, err
	}
	for {
		t, ok := ev.peek()
		if !ok {
			return out, nil
		}
		sign := Fl(1)
		switch {
		case t.IsDelim("+"):
			ev.pos++
		case t.IsDelim("-"):
			sign = -1
			ev.pos++
		case isSignedNumeric(t):
			// "1px +2px" is lexed as two numbers
		default:
			return out, nil
		}
		right, err := ev.product()
		if err != nil {
			return out, err
		}
		right.Value, right.Percent = sign*right.Value, sign*right.Percent
		if out, err = add(out, right); err != nil {
			return out, err
		}
	}
}

func isSignedNumeric(t parser.Token) bool {
	switch t.Kind {
	case parser.Number, parser.Dimension, parser.Percentage:
		return len(t.Value) > 0 && (t.Value[0] == '+' || t.Value[0] == '-')
	}
	return false
}

func isLengthType(t CalcType) bool {
	return t == CalcLength || t == CalcPercentage || t == CalcLengthPercentage
}

func add(a, b CalcValue) (CalcValue, error) {
	switch {
	case a.Type == b.Type:
	case isLengthType(a.Type) && isLengthType(b.Type):
		a.Type = CalcLengthPercentage
	default:
		return CalcValue{}, errInvalidMath
	}
	a.Value += b.Value
	a.Percent += b.Percent
	return a, nil
}

func (ev *calcState) product() (CalcValue, error) {
	out, err := ev.unit()
	if err != nil {
		return out, err
	}
	for {
		t, ok := ev.peek()
		if !ok || !(t.IsDelim("*") || t.IsDelim("/")) {
			return out, nil
		}
		ev.pos++
		right, err := ev.unit()
		if err != nil {
			return out, err
		}
		if t.IsDelim("*") {
			switch {
			case right.Type == CalcNumber:
			case out.Type == CalcNumber:
				out, right = right, out
			default:
				return CalcValue{}, errInvalidMath
			}
			out.Value *= right.Value
			out.Percent *= right.Value
		} else {
			if right.Type != CalcNumber || right.Value == 0 {
				return CalcValue{}, errInvalidMath
			}
			out.Value /= right.Value
			out.Percent /= right.Value
		}
	}
}

func (ev *calcState) unit() (CalcValue, error) {
	t, ok := ev.peek()
	if !ok {
		return CalcValue{}, errInvalidMath
	}
	ev.pos++
	switch t.Kind {
	case parser.Number:
		return CalcValue{Value: Fl(t.Float()), Type: CalcNumber}, nil
	case parser.Percentage:
		return CalcValue{Percent: Fl(t.Float()), Type: CalcPercentage}, nil
	case parser.Dimension:
		unit, ok := pr.ParseUnit(t.Unit)
		if !ok {
			return CalcValue{}, errInvalidMath
		}
		dim := pr.Dimension{Value: Fl(t.Float()), Unit: unit}
		switch {
		case unit.IsLength():
			pt, err := ev.toPoints(dim)
			return CalcValue{Value: pt, Type: CalcLength}, err
		case unit.IsAngle():
			deg, _ := dim.ToDegrees()
			return CalcValue{Value: deg, Type: CalcAngle}, nil
		case unit == pr.S:
			return CalcValue{Value: dim.Value, Type: CalcTime}, nil
		case unit == pr.Ms:
			return CalcValue{Value: dim.Value / 1000, Type: CalcTime}, nil
		}
	case parser.Ident:
		switch utils.AsciiLower(t.Value) {
		case "pi":
			return CalcValue{Value: math.Pi, Type: CalcNumber}, nil
		case "e":
			return CalcValue{Value: math.E, Type: CalcNumber}, nil
		}
	case parser.ParenthesesBlock:
		return ev.expression(t.Arguments)
	case parser.Function:
		if IsMathFunction(t) {
			return ev.function(t)
		}
	}
	return CalcValue{}, errInvalidMath
}
