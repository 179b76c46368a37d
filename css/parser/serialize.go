package parser

import (
	"strings"
)

// Serialize returns the CSS text of the tokens.
// Whitespace tokens are written as a single space.
func Serialize(l []Token) string {
	var w strings.Builder
	serializeTo(l, &w)
	return w.String()
}

// SerializeValue is the same as Serialize, but strips leading and trailing
// whitespace and collapses consecutive whitespace, as used for property values.
func SerializeValue(l []Token) string {
	var cleaned []Token
	for _, t := range Strip(l) {
		if t.Kind == Whitespace && len(cleaned) != 0 && cleaned[len(cleaned)-1].Kind == Whitespace {
			continue
		}
		cleaned = append(cleaned, t)
	}
	return Serialize(cleaned)
}

func serializeTo(nodes []Token, w *strings.Builder) {
	for _, t := range nodes {
		t.serializeTo(w)
	}
}

func (t Token) serializeTo(w *strings.Builder) {
	switch t.Kind {
	case Whitespace:
		w.WriteByte(' ')
	case Ident, Delim, Number, UnicodeRange, BadToken:
		w.WriteString(t.Value)
	case AtKeyword:
		w.WriteByte('@')
		w.WriteString(t.Value)
	case Hash:
		w.WriteByte('#')
		w.WriteString(t.Value)
	case String:
		w.WriteString(SerializeString(t.Value))
	case URL:
		w.WriteString("url(")
		w.WriteString(serializeURL(t.Value))
		w.WriteByte(')')
	case Percentage:
		w.WriteString(t.Value)
		w.WriteByte('%')
	case Dimension:
		w.WriteString(t.Value)
		w.WriteString(t.Unit)
	case Colon:
		w.WriteByte(':')
	case Semicolon:
		w.WriteByte(';')
	case Comma:
		w.WriteByte(',')
	case Function:
		w.WriteString(t.Value)
		w.WriteByte('(')
		serializeTo(t.Arguments, w)
		w.WriteByte(')')
	case ParenthesesBlock:
		w.WriteByte('(')
		serializeTo(t.Arguments, w)
		w.WriteByte(')')
	case SquareBracketsBlock:
		w.WriteByte('[')
		serializeTo(t.Arguments, w)
		w.WriteByte(']')
	case CurlyBracketsBlock:
		w.WriteByte('{')
		serializeTo(t.Arguments, w)
		w.WriteByte('}')
	}
}

// SerializeString quotes `value` as a CSS string.
func SerializeString(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range value {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\A `)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func serializeURL(value string) string {
	if strings.ContainsAny(value, " \t\n\"'()\\") {
		return SerializeString(value)
	}
	return value
}
