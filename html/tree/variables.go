package tree

import (
	"errors"
	"strings"

	"github.com/benoitkugler/webstyle/css/parser"
	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/logger"
	"github.com/benoitkugler/webstyle/utils"
)

const (
	// MaxSubstitutionTokens is the maximum number of tokens
	// produced by the substitution of var() in one value.
	MaxSubstitutionTokens = 10000
	maxSubstitutionDepth  = 64
)

// errGuaranteedInvalid is returned when a var() or attr() has no
// value and no fallback: the declaration is then invalid at computed-value time.
var errGuaranteedInvalid = errors.New("invalid at computed-value time")

type varKey struct {
	style *ComputedStyle
	name  string
}

// resolver holds the state of one resolution: the custom properties
// being substituted, and the ones already resolved.
type resolver struct {
	// property is the property being computed
	property string
	stack    []varKey
	memo     map[varKey][]parser.Token
	count    int
}

func newResolver(property string) *resolver {
	return &resolver{property: property, memo: map[varKey][]parser.Token{}}
}

func (r *resolver) inStack(key varKey) bool {
	for _, k := range r.stack {
		if k == key {
			return true
		}
	}
	return false
}

// substitute replaces var() and attr() functions, evaluated in the context of `c`.
func (r *resolver) substitute(c *ComputedStyle, tokens []parser.Token, depth int) ([]parser.Token, error) {
	if depth > maxSubstitutionDepth {
		return nil, ErrAmplification
	}
	out := make([]parser.Token, 0, len(tokens))
	for _, t := range tokens {
		var (
			res []parser.Token
			err error
		)
		switch {
		case t.Kind == parser.Function && strings.EqualFold(t.Value, "var"):
			res, err = r.variable(c, t, depth)
		case t.Kind == parser.Function && strings.EqualFold(t.Value, "attr"):
			res, err = r.attr(c, t, depth)
		case len(t.Arguments) != 0:
			t.Arguments, err = r.substitute(c, t.Arguments, depth+1)
			res = []parser.Token{t}
		default:
			res = []parser.Token{t}
		}
		if err != nil {
			return nil, err
		}
		r.count += len(res)
		if r.count > MaxSubstitutionTokens || len(out)+len(res) > MaxSubstitutionTokens {
			return nil, ErrAmplification
		}
		out = append(out, res...)
	}
	return out, nil
}

// splitFallback splits the arguments on the first comma.
func splitFallback(args []parser.Token) (head, fallback []parser.Token, hasFallback bool) {
	for i, t := range args {
		if t.Kind == parser.Comma {
			return args[:i], args[i+1:], true
		}
	}
	return args, nil, false
}

func (r *resolver) variable(c *ComputedStyle, fn parser.Token, depth int) ([]parser.Token, error) {
	head, fallback, hasFallback := splitFallback(fn.Arguments)
	head = parser.RemoveWhitespace(head)
	if len(head) != 1 || head[0].Kind != parser.Ident || !pr.IsCustom(head[0].Value) {
		return nil, errGuaranteedInvalid
	}
	value, err := r.custom(c, head[0].Value, depth+1)
	if err == errGuaranteedInvalid && hasFallback {
		return r.substitute(c, fallback, depth+1)
	}
	return value, err
}

// custom returns the substituted value of the custom property `name`,
// as inherited by `c`.
func (r *resolver) custom(c *ComputedStyle, name string, depth int) ([]parser.Token, error) {
	owner, raw := c.declaredCustom(name)
	if owner == nil {
		return nil, errGuaranteedInvalid
	}
	key := varKey{owner, name}
	if value, ok := r.memo[key]; ok {
		return value, nil
	}
	if r.inStack(key) {
		return nil, ErrVariableCycle
	}
	r.stack = append(r.stack, key)
	defer func() { r.stack = r.stack[:len(r.stack)-1] }()

	value, err := r.substitute(owner, parser.Tokenize(raw), depth)
	if err != nil {
		return nil, err
	}
	r.memo[key] = value
	return value, nil
}

// declaredCustom walks the inheritance chain to find the style
// declaring the custom property `name`.
func (c *ComputedStyle) declaredCustom(name string) (*ComputedStyle, string) {
	for s := c; s != nil; s = s.parent {
		p, ok := s.declared.Get(name)
		if !ok {
			continue
		}
		switch utils.AsciiLower(strings.TrimSpace(p.Value)) {
		case "initial":
			return nil, ""
		case "inherit", "unset", "revert", "revert-layer":
			continue
		}
		return s, p.Value
	}
	return nil, ""
}

// attribute names which are never readable with attr()
var credentialAttributes = []string{"password", "passwd", "secret", "token", "credential", "nonce", "api-key", "apikey"}

func isCredentialLike(name string) bool {
	name = utils.AsciiLower(name)
	for _, s := range credentialAttributes {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// checkAttrPolicy returns a PolicyError if `property` can't read
// the attribute `name` of `element`.
func checkAttrPolicy(property, elementName, name string) error {
	name = utils.AsciiLower(name)
	if isCredentialLike(name) || (elementName == "input" && name == "value" && property != "content") {
		return PolicyError{Attribute: name, Element: elementName, Property: property}
	}
	return nil
}

func (r *resolver) attr(c *ComputedStyle, fn parser.Token, depth int) ([]parser.Token, error) {
	head, fallback, hasFallback := splitFallback(fn.Arguments)
	head = parser.RemoveWhitespace(head)
	if len(head) == 0 || len(head) > 2 || head[0].Kind != parser.Ident {
		return nil, errGuaranteedInvalid
	}
	name, typ := head[0].Value, "string"
	if len(head) == 2 {
		switch {
		case head[1].Kind == parser.Ident:
			typ = utils.AsciiLower(head[1].Value)
		case head[1].IsDelim("%"):
			typ = "%"
		default:
			return nil, errGuaranteedInvalid
		}
	}

	var (
		value string
		found bool
	)
	if c.Element != nil {
		if err := checkAttrPolicy(r.property, c.Element.LocalName(), name); err != nil {
			logger.WarningLogger.Warn(err)
			return nil, err
		}
		value, found = c.Element.Attribute("", name)
	}
	if found {
		if out, ok := coerceAttr(value, typ); ok {
			return out, nil
		}
	}
	if hasFallback {
		return r.substitute(c, fallback, depth+1)
	}
	if out, ok := attrDefault(typ); ok {
		return out, nil
	}
	return nil, errGuaranteedInvalid
}

// coerceAttr applies the attr() type table
func coerceAttr(value, typ string) ([]parser.Token, bool) {
	if typ == "string" {
		return []parser.Token{{Kind: parser.String, Value: value}}, true
	}
	if typ == "url" {
		return []parser.Token{{Kind: parser.URL, Value: strings.TrimSpace(value)}}, true
	}
	tokens := parser.RemoveWhitespace(parser.Tokenize(value))
	if len(tokens) != 1 {
		return nil, false
	}
	t := tokens[0]
	switch typ {
	case "ident":
		return tokens, t.Kind == parser.Ident && !pr.IsCSSWideKeyword(t.Value)
	case "color":
		_, ok := pr.ParseColor(t)
		return tokens, ok
	case "integer":
		return tokens, t.Kind == parser.Number && t.IsInt()
	case "number":
		return tokens, t.Kind == parser.Number
	case "percentage":
		return tokens, t.Kind == parser.Percentage
	case "length", "angle", "time":
		if t.Kind != parser.Dimension {
			return nil, false
		}
		u, ok := pr.ParseUnit(t.Unit)
		return tokens, ok && ((typ == "length" && u.IsLength()) || (typ == "angle" && u.IsAngle()) || (typ == "time" && u.IsTime()))
	}
	// a unit: the attribute is a number
	if t.Kind != parser.Number {
		return nil, false
	}
	if typ == "%" {
		return []parser.Token{{Kind: parser.Percentage, Value: t.Value}}, true
	}
	if _, ok := pr.ParseUnit(typ); ok {
		return []parser.Token{{Kind: parser.Dimension, Value: t.Value, Unit: typ}}, true
	}
	return nil, false
}

// attrDefault returns the value used when the attribute is missing
// or invalid, and no fallback is given.
func attrDefault(typ string) ([]parser.Token, bool) {
	switch typ {
	case "string":
		return []parser.Token{{Kind: parser.String}}, true
	case "color":
		return []parser.Token{{Kind: parser.Ident, Value: "currentcolor"}}, true
	case "integer", "number":
		return []parser.Token{{Kind: parser.Number, Value: "0"}}, true
	case "percentage", "%":
		return []parser.Token{{Kind: parser.Percentage, Value: "0"}}, true
	case "length":
		return []parser.Token{{Kind: parser.Dimension, Value: "0", Unit: "px"}}, true
	case "angle":
		return []parser.Token{{Kind: parser.Dimension, Value: "0", Unit: "deg"}}, true
	case "time":
		return []parser.Token{{Kind: parser.Dimension, Value: "0", Unit: "s"}}, true
	}
	if _, ok := pr.ParseUnit(typ); ok {
		return []parser.Token{{Kind: parser.Dimension, Value: "0", Unit: typ}}, true
	}
	return nil, false
}
