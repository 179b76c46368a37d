package parser

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Declaration is one `name: value [!important]` item.
type Declaration struct {
	// Name is lower-cased, except for custom properties (--name)
	Name      string
	Value     []Token
	Important bool
}

// ParseError reports an invalid declaration, which has been skipped.
type ParseError struct {
	Source  string
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("invalid declaration %q: %s", e.Source, e.Message)
}

// ParseDeclarationListString parses the content of a declaration block,
// like a `style` attribute.
func ParseDeclarationListString(css string) ([]Declaration, error) {
	return ParseDeclarationList(Tokenize(css))
}

// ParseDeclarationList parses `input` as a list of semicolon separated declarations.
// Invalid declarations are skipped, and their errors are combined in the
// returned error.
func ParseDeclarationList(input []Token) (out []Declaration, err error) {
	var current []Token
	flush := func() {
		if len(RemoveWhitespace(current)) != 0 {
			decl, errDecl := ParseOneDeclaration(current)
			if errDecl != nil {
				err = multierr.Append(err, errDecl)
			} else {
				out = append(out, decl)
			}
		}
		current = nil
	}
	for _, token := range input {
		if token.Kind == Semicolon {
			flush()
			continue
		}
		current = append(current, token)
	}
	flush()
	return out, err
}

// ParseOneDeclaration parses `name: value [!important]`.
func ParseOneDeclaration(input []Token) (Declaration, error) {
	tokens := NewIter(input)
	name := tokens.NextSignificant()
	if name.Kind != Ident {
		return Declaration{}, ParseError{Serialize(input), fmt.Sprintf("expected <ident> for declaration name, got %s", name.Kind)}
	}
	if colon := tokens.NextSignificant(); colon.Kind != Colon {
		return Declaration{}, ParseError{Serialize(input), fmt.Sprintf("expected ':' after declaration name, got %s", colon.Kind)}
	}
	value := tokens.Remaining()

	// detect !important, searching backwards
	important := false
	significant := RemoveWhitespace(value)
	if n := len(significant); n >= 2 && significant[n-1].IsIdent("important") && significant[n-2].IsDelim("!") {
		important = true
		// cut the value just before the '!'
		seen := 0
		for i := len(value) - 1; i >= 0; i-- {
			if value[i].Kind != Whitespace {
				seen++
			}
			if seen == 2 {
				value = value[:i]
				break
			}
		}
	}
	value = Strip(value)

	n := name.Value
	if !strings.HasPrefix(n, "--") {
		n = strings.ToLower(n)
	} else if len(value) == 0 {
		// an empty custom property is valid, but we keep one whitespace
		value = []Token{{Kind: Whitespace, Value: " "}}
	}
	if len(value) == 0 {
		return Declaration{}, ParseError{Serialize(input), "empty value"}
	}
	return Declaration{Name: n, Value: value, Important: important}, nil
}
