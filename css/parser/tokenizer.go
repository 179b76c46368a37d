// Package parser implements the small subset of the CSS syntax
// needed by the style engine: a token tree built on top of the
// tdewolff lexer, declaration lists, <An+B> expressions and serialization.
package parser

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Kind is the type of a Token.
type Kind uint8

const (
	_ Kind = iota
	Whitespace
	Ident
	Function // Value is the function name, Arguments its content
	AtKeyword
	Hash
	String
	URL
	Delim // one char, or a match operator like ~= or ||
	Number
	Percentage
	Dimension
	UnicodeRange
	Colon
	Semicolon
	Comma
	ParenthesesBlock
	SquareBracketsBlock
	CurlyBracketsBlock
	BadToken
)

func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "whitespace"
	case Ident:
		return "ident"
	case Function:
		return "function"
	case AtKeyword:
		return "at-keyword"
	case Hash:
		return "hash"
	case String:
		return "string"
	case URL:
		return "url"
	case Delim:
		return "delim"
	case Number:
		return "number"
	case Percentage:
		return "percentage"
	case Dimension:
		return "dimension"
	case UnicodeRange:
		return "unicode-range"
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case Comma:
		return ","
	case ParenthesesBlock:
		return "() block"
	case SquareBracketsBlock:
		return "[] block"
	case CurlyBracketsBlock:
		return "{} block"
	case BadToken:
		return "error"
	default:
		return "<invalid>"
	}
}

// Token is a node of the token tree. Function and block tokens
// store their content in Arguments.
type Token struct {
	Kind Kind
	// Value is the textual content of the token, without its
	// syntax delimiters (no quotes for strings, no # for hashes, no %
	// for percentages). For numeric tokens, it is the number as written.
	Value string
	// Unit of a Dimension, as written
	Unit      string
	Arguments []Token
}

// IsInt returns true for number-like tokens without fractional part.
func (t Token) IsInt() bool {
	return !strings.ContainsAny(t.Value, ".eE")
}

// Int returns the integer value of a number-like token,
// or 0 if it is not an integer.
func (t Token) Int() int {
	v, _ := strconv.Atoi(strings.TrimPrefix(t.Value, "+"))
	return v
}

// Float returns the numeric value of a number-like token.
func (t Token) Float() float64 {
	v, _ := strconv.ParseFloat(t.Value, 64)
	return v
}

// IsIdent returns true if the token is the (ASCII case-insensitive) identifier `s`.
func (t Token) IsIdent(s string) bool {
	return t.Kind == Ident && strings.EqualFold(t.Value, s)
}

// IsDelim returns true if the token is the delimiter `s`.
func (t Token) IsDelim(s string) bool {
	return t.Kind == Delim && t.Value == s
}

func (t Token) String() string { return Serialize([]Token{t}) }

// Tokenize splits `input` into a token tree. Comments are dropped.
func Tokenize(input string) []Token {
	lexer := css.NewLexer(parse.NewInputString(input))

	type frame struct {
		token  Token
		closer css.TokenType
	}
	var (
		stack []frame
		root  []Token
	)
	emit := func(t Token) {
		if len(stack) == 0 {
			root = append(root, t)
		} else {
			top := &stack[len(stack)-1].token
			top.Arguments = append(top.Arguments, t)
		}
	}
	open := func(t Token, closer css.TokenType) {
		stack = append(stack, frame{token: t, closer: closer})
	}
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		text := string(data)
		switch tt {
		case css.CommentToken, css.CDOToken, css.CDCToken:
		case css.WhitespaceToken:
			emit(Token{Kind: Whitespace, Value: " "})
		case css.IdentToken, css.CustomPropertyNameToken:
			emit(Token{Kind: Ident, Value: unescape(text)})
		case css.FunctionToken:
			open(Token{Kind: Function, Value: unescape(strings.TrimSuffix(text, "("))}, css.RightParenthesisToken)
		case css.LeftParenthesisToken:
			open(Token{Kind: ParenthesesBlock}, css.RightParenthesisToken)
		case css.LeftBracketToken:
			open(Token{Kind: SquareBracketsBlock}, css.RightBracketToken)
		case css.LeftBraceToken:
			open(Token{Kind: CurlyBracketsBlock}, css.RightBraceToken)
		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			if len(stack) != 0 && stack[len(stack)-1].closer == tt {
				closed := stack[len(stack)-1].token
				stack = stack[:len(stack)-1]
				emit(closed)
			} else {
				emit(Token{Kind: BadToken, Value: text})
			}
		case css.AtKeywordToken:
			emit(Token{Kind: AtKeyword, Value: unescape(text[1:])})
		case css.HashToken:
			emit(Token{Kind: Hash, Value: unescape(text[1:])})
		case css.StringToken:
			emit(Token{Kind: String, Value: unquote(text)})
		case css.BadStringToken, css.BadURLToken:
			emit(Token{Kind: BadToken, Value: text})
		case css.URLToken:
			emit(Token{Kind: URL, Value: urlContent(text)})
		case css.NumberToken:
			emit(Token{Kind: Number, Value: text})
		case css.PercentageToken:
			emit(Token{Kind: Percentage, Value: strings.TrimSuffix(text, "%")})
		case css.DimensionToken:
			num, unit := splitDimension(text)
			emit(Token{Kind: Dimension, Value: num, Unit: unescape(unit)})
		case css.UnicodeRangeToken:
			emit(Token{Kind: UnicodeRange, Value: text})
		case css.ColonToken:
			emit(Token{Kind: Colon})
		case css.SemicolonToken:
			emit(Token{Kind: Semicolon})
		case css.CommaToken:
			emit(Token{Kind: Comma})
		default: // delimiters and match operators
			emit(Token{Kind: Delim, Value: text})
		}
	}
	// unclosed blocks are closed at EOF
	for len(stack) != 0 {
		closed := stack[len(stack)-1].token
		stack = stack[:len(stack)-1]
		emit(closed)
	}
	return root
}

// splitDimension splits "12.5px" into "12.5" and "px".
func splitDimension(s string) (string, string) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && ('0' <= s[i] && s[i] <= '9' || s[i] == '.') {
		i++
	}
	// exponent, only if followed by a digit
	if i+1 < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && '0' <= s[j] && s[j] <= '9' {
			for j < len(s) && '0' <= s[j] && s[j] <= '9' {
				j++
			}
			i = j
		}
	}
	return s[:i], s[i:]
}

func unquote(s string) string {
	if len(s) >= 1 && (s[0] == '"' || s[0] == '\'') {
		quote := s[0]
		s = s[1:]
		if len(s) >= 1 && s[len(s)-1] == quote {
			s = s[:len(s)-1]
		}
	}
	return unescape(s)
}

func urlContent(s string) string {
	s = s[strings.IndexByte(s, '(')+1:]
	s = strings.TrimSuffix(s, ")")
	s = strings.TrimSpace(s)
	if len(s) != 0 && (s[0] == '"' || s[0] == '\'') {
		return unquote(s)
	}
	return unescape(s)
}

// unescape resolves CSS escapes sequences.
func unescape(s string) string {
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		j := i
		for j < len(s) && j-i < 6 && isHex(s[j]) {
			j++
		}
		if j == i { // escaped char
			if s[i] != '\n' {
				b.WriteByte(s[i])
			}
			continue
		}
		code, _ := strconv.ParseUint(s[i:j], 16, 32)
		if code == 0 || code > 0x10FFFF || (0xD800 <= code && code <= 0xDFFF) {
			code = 0xFFFD
		}
		b.WriteRune(rune(code))
		if j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
			j++
		}
		i = j - 1
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
