package tree

import (
	"errors"
	"strings"

	"github.com/benoitkugler/webstyle/css/declaration"
	"github.com/benoitkugler/webstyle/css/parser"
	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/css/selector"
	"github.com/benoitkugler/webstyle/css/shorthand"
	"github.com/benoitkugler/webstyle/css/validation"
	"github.com/benoitkugler/webstyle/logger"
	"github.com/benoitkugler/webstyle/utils"
)

// ComputedStyle provides on demand access to the computed values
// of an element (or pseudo-element).
//
// Values are recomputed on each call: a ComputedStyle must be discarded
// when its declarations, its parents or its context change.
type ComputedStyle struct {
	// Element is used by attr() and the language dependent values.
	// It may be nil.
	Element selector.Element
	Pseudo  string

	declared *declaration.Declaration
	parent   *ComputedStyle
	ctx      *Context
}

// NewComputedStyle returns the style of an element with the given cascaded
// declaration. `parent` is nil for the root element. `declared` and `ctx` may be nil.
func NewComputedStyle(declared *declaration.Declaration, parent *ComputedStyle,
	element selector.Element, pseudo string, ctx *Context,
) *ComputedStyle {
	if declared == nil {
		declared = &declaration.Declaration{}
	}
	return &ComputedStyle{Element: element, Pseudo: pseudo, declared: declared, parent: parent, ctx: ctx}
}

// Parent returns nil for the root element.
func (c *ComputedStyle) Parent() *ComputedStyle { return c.parent }

// Declared returns the cascaded declaration.
func (c *ComputedStyle) Declared() *declaration.Declaration { return c.declared }

func (c *ComputedStyle) isRoot() bool { return c.parent == nil }

func (c *ComputedStyle) root() *ComputedStyle {
	r := c
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// GetComputedValue returns the computed value of `property`:
// lengths are converted to points, colors are normalized and
// var(), attr() and math functions are evaluated.
//
// An empty string is returned (with a nil error) if the value is `unset`,
// or, for shorthands, if the longhands can't be represented by the shorthand.
//
// A [ResolutionError] is returned if the value depends on a missing
// style database, or on a cycle of custom properties. Other properties
// are not affected and may be queried right away.
func (c *ComputedStyle) GetComputedValue(property string) (string, error) {
	property = strings.TrimSpace(property)
	if !pr.IsCustom(property) {
		property = utils.AsciiLower(property)
	}
	if longhands := pr.Longhands(property); longhands != nil {
		values := make([]string, len(longhands))
		for i, name := range longhands {
			v, err := c.compute(name)
			if err != nil || v == "" {
				return "", err
			}
			values[i] = v
		}
		out, _ := shorthand.Build(property, values)
		return out, nil
	}
	if !pr.IsKnown(property) {
		return "", validation.ValueError{Property: property, Reason: validation.ErrUnknown.Error()}
	}
	return c.compute(property)
}

func resolutionError(property string, err error) error {
	var re ResolutionError
	if errors.As(err, &re) {
		return err
	}
	return ResolutionError{Property: property, Err: err}
}

func (c *ComputedStyle) compute(name string) (string, error) {
	if pr.IsCustom(name) {
		tokens, err := newResolver(name).custom(c, name, 0)
		if err == errGuaranteedInvalid {
			return "", nil
		} else if err != nil {
			return "", resolutionError(name, err)
		}
		return parser.SerializeValue(tokens), nil
	}

	value, err := c.specified(name)
	if err != nil {
		return "", resolutionError(name, err)
	}
	switch value {
	case "unset":
		return "", nil
	case "inherit":
		owner, err := c.parent.explicit(name)
		if err != nil {
			return "", resolutionError(name, err)
		}
		if owner != nil {
			return owner.compute(name)
		}
		// no ancestor has a value: use the initial value of this element
		value = "initial"
	}
	if value == "initial" {
		value, err = c.initial(name)
		if err != nil {
			return "", resolutionError(name, err)
		}
	}
	out, err := c.computeValue(name, value)
	if err != nil {
		return "", resolutionError(name, err)
	}
	return out, nil
}

// explicit returns the first style in the inheritance chain starting
// at `c` with a specified value other than "inherit", or nil.
func (c *ComputedStyle) explicit(name string) (*ComputedStyle, error) {
	for s := c; s != nil; s = s.parent {
		value, err := s.specified(name)
		if err != nil {
			return nil, err
		}
		if value != "inherit" {
			return s, nil
		}
	}
	return nil, nil
}

func defaultKeyword(name string) string {
	if pr.IsInherited(name) {
		return "inherit"
	}
	return "initial"
}

// specified returns the cascaded value of the longhand `name`, after
// substitution of var() and attr(), or one of the keywords
// "inherit", "initial", "unset".
func (c *ComputedStyle) specified(name string) (string, error) {
	p, ok := c.declared.Get(name)
	if !ok {
		return defaultKeyword(name), nil
	}
	value := p.Value
	if p.Pending || validation.IsPending(parser.Tokenize(value)) {
		var err error
		value, err = c.substituted(name, p)
		if err == errGuaranteedInvalid {
			logger.WarningLogger.Warnf("Invalid value %q for %s after substitution", p.Value, name)
			return defaultKeyword(name), nil
		} else if err != nil {
			return "", err
		}
	}
	if pr.IsCSSWideKeyword(value) {
		switch kw := utils.AsciiLower(value); kw {
		case "revert", "revert-layer":
			return defaultKeyword(name), nil
		default:
			return kw, nil
		}
	}
	return value, nil
}

func (c *ComputedStyle) substituted(name string, p shorthand.Property) (string, error) {
	r := newResolver(name)
	tokens, err := r.substitute(c, parser.Tokenize(p.Value), 0)
	if err != nil {
		return "", err
	}
	if !p.Pending {
		value, err := validation.ValidateLonghand(name, tokens)
		if err != nil || validation.IsPending(tokens) {
			return "", errGuaranteedInvalid
		}
		return value, nil
	}

	text := parser.SerializeValue(tokens)
	if kw := utils.AsciiLower(text); p.Shorthand == "font" && validation.SystemFonts.Has(kw) {
		db := c.ctx.database()
		if db == nil {
			return "", ErrStyleDatabaseRequired
		}
		var ok bool
		if text, ok = db.SystemFont(kw); !ok {
			return "", errGuaranteedInvalid
		}
	}
	longhands, err := validation.ExpandString(p.Shorthand, text)
	if err != nil {
		return "", errGuaranteedInvalid
	}
	for _, l := range longhands {
		if l.Name == name && !l.Pending {
			return l.Value, nil
		}
	}
	return "", errGuaranteedInvalid
}

// initial returns the initial value of `name`, taking into account
// the context dependent values.
func (c *ComputedStyle) initial(name string) (string, error) {
	value, _ := pr.Initial(name)
	db := c.ctx.database()
	switch name {
	case "color":
		if db != nil {
			value = db.DefaultColor()
		}
	case "font-family":
		if db != nil {
			value, _ = db.DefaultFont()
		}
	case "text-align":
		direction, err := c.compute("direction")
		if err != nil {
			return "", err
		}
		if direction == "rtl" {
			return "right", nil
		}
		return "left", nil
	}
	return value, nil
}
