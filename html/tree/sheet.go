package tree

import (
	_ "embed"
	"fmt"
	"strings"

	dcss "github.com/aymerick/douceur/css"
	dparser "github.com/aymerick/douceur/parser"
	"github.com/benoitkugler/webstyle/css/declaration"
	"github.com/benoitkugler/webstyle/css/selector"
	"github.com/benoitkugler/webstyle/logger"
	"github.com/benoitkugler/webstyle/utils"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Origin is the origin of a style sheet, as used by the cascade.
type Origin uint8

const (
	UserAgent Origin = iota + 1
	User
	Author
)

func (o Origin) String() string {
	switch o {
	case UserAgent:
		return "user agent"
	case User:
		return "user"
	case Author:
		return "author"
	default:
		return fmt.Sprintf("<invalid origin %d>", o)
	}
}

// Rule is one of StyleRule or *MediaRule.
type Rule interface {
	isRule()
}

// StyleRule is a qualified rule: a list of selectors sharing
// a declaration block.
type StyleRule struct {
	Selectors   selector.SelectorList
	Declaration *declaration.Declaration
	// Order is the position of the rule in its sheet,
	// nested rules included.
	Order int
}

// MediaRule is an @media block.
type MediaRule struct {
	Media []MediaQuery
	Rules []Rule
}

func (*StyleRule) isRule() {}
func (*MediaRule) isRule() {}

// StyleSheet is a parsed style sheet.
type StyleSheet struct {
	Origin Origin
	Rules  []Rule
}

// StyleRules calls `fn` for each style rule applying to the
// given medium, in source order.
func (s *StyleSheet) StyleRules(medium string, fn func(*StyleRule)) {
	walkRules(s.Rules, medium, fn)
}

func walkRules(rules []Rule, medium string, fn func(*StyleRule)) {
	for _, rule := range rules {
		switch rule := rule.(type) {
		case *StyleRule:
			fn(rule)
		case *MediaRule:
			if evaluateMediaQuery(rule.Media, medium) {
				walkRules(rule.Rules, medium, fn)
			}
		}
	}
}

// Loader parses style sheets.
type Loader struct {
	log *zap.Logger
}

// NewLoader uses [logger.Root] if `log` is nil.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = logger.Root()
	}
	return &Loader{log: log.Named("css-loader")}
}

// Parse parses the style sheet `css`. Invalid rules and declarations
// are dropped: the returned error, if not nil, combines the problems found,
// while the returned sheet contains the valid content.
// An error is also returned if the text is not a style sheet, with a nil sheet.
func (l *Loader) Parse(css string, origin Origin) (*StyleSheet, error) {
	parsed, err := dparser.Parse(css)
	if err != nil {
		return nil, fmt.Errorf("invalid style sheet: %w", err)
	}
	l.log.Debug("Parsed style sheet", zap.Stringer("origin", origin), zap.Int("rules", len(parsed.Rules)))
	out := &StyleSheet{Origin: origin}
	var order int
	out.Rules, err = l.convertRules(parsed.Rules, &order)
	return out, err
}

func (l *Loader) convertRules(rules []*dcss.Rule, order *int) ([]Rule, error) {
	var (
		out  []Rule
		errs error
	)
	for _, rule := range rules {
		switch rule.Kind {
		case dcss.QualifiedRule:
			sr, err := l.styleRule(rule)
			if err != nil {
				l.log.Warn("Ignored rule", zap.String("prelude", rule.Prelude), zap.Error(err))
				errs = multierr.Append(errs, err)
				if sr == nil {
					continue
				}
			}
			sr.Order = *order
			*order++
			out = append(out, sr)
		case dcss.AtRule:
			name := utils.AsciiLower(strings.TrimPrefix(rule.Name, "@"))
			switch name {
			case "media":
				nested, err := l.convertRules(rule.Rules, order)
				errs = multierr.Append(errs, err)
				out = append(out, &MediaRule{Media: parseMediaQuery(rule.Prelude), Rules: nested})
			case "import":
				l.log.Warn("Ignored @import rule", zap.String("prelude", rule.Prelude))
			default:
				l.log.Debug("Skipping @-rule", zap.String("rule", name))
			}
		}
	}
	return out, errs
}

// styleRule returns a nil rule if the selector is invalid,
// or a rule and the invalid declarations.
func (l *Loader) styleRule(rule *dcss.Rule) (*StyleRule, error) {
	selectors, err := selector.Parse(rule.Prelude)
	if err != nil {
		return nil, err
	}
	var (
		decl declaration.Declaration
		errs error
	)
	for _, d := range rule.Declarations {
		if err := decl.SetProperty(d.Property, d.Value, d.Important); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return &StyleRule{Selectors: selectors, Declaration: &decl}, errs
}

//go:embed ua.css
var uaCSS string

// UAStyleSheet is the default user agent style sheet for HTML documents.
var UAStyleSheet *StyleSheet

func init() {
	// invalid declarations are checked by the tests
	var err error
	UAStyleSheet, err = NewLoader(zap.NewNop()).Parse(uaCSS, UserAgent)
	if UAStyleSheet == nil {
		panic(fmt.Sprintf("invalid embedded stylesheet: %s", err))
	}
}
