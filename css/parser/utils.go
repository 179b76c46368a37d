package parser

// TokensIter walks a token list.
type TokensIter struct {
	tokens []Token
	index  int
}

func NewIter(tokens []Token) *TokensIter {
	return &TokensIter{tokens: tokens}
}

func (it TokensIter) HasNext() bool {
	return it.index < len(it.tokens)
}

// Next returns the next token, or a zero token at the end.
func (it *TokensIter) Next() Token {
	if !it.HasNext() {
		return Token{}
	}
	t := it.tokens[it.index]
	it.index++
	return t
}

// NextSignificant returns the next token that is not whitespace,
// or a zero token at the end.
func (it *TokensIter) NextSignificant() Token {
	for it.HasNext() {
		t := it.Next()
		if t.Kind != Whitespace {
			return t
		}
	}
	return Token{}
}

// Peek returns the next token without consuming it.
func (it *TokensIter) Peek() Token {
	if !it.HasNext() {
		return Token{}
	}
	return it.tokens[it.index]
}

// Remaining returns the tokens not consumed yet.
func (it *TokensIter) Remaining() []Token {
	return it.tokens[it.index:]
}

// RemoveWhitespace returns the tokens which are not whitespace.
func RemoveWhitespace(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, token := range tokens {
		if token.Kind != Whitespace {
			out = append(out, token)
		}
	}
	return out
}

// Strip removes leading and trailing whitespace.
func Strip(tokens []Token) []Token {
	for len(tokens) != 0 && tokens[0].Kind == Whitespace {
		tokens = tokens[1:]
	}
	for len(tokens) != 0 && tokens[len(tokens)-1].Kind == Whitespace {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// SplitOnComma splits on top level comma tokens.
func SplitOnComma(tokens []Token) [][]Token {
	var parts [][]Token
	var thisPart []Token
	for _, token := range tokens {
		if token.Kind == Comma {
			parts = append(parts, thisPart)
			thisPart = nil
		} else {
			thisPart = append(thisPart, token)
		}
	}
	parts = append(parts, thisPart)
	return parts
}

// SplitOnDelim splits on top level delimiters `delim`.
func SplitOnDelim(tokens []Token, delim string) [][]Token {
	var parts [][]Token
	var thisPart []Token
	for _, token := range tokens {
		if token.IsDelim(delim) {
			parts = append(parts, thisPart)
			thisPart = nil
		} else {
			thisPart = append(thisPart, token)
		}
	}
	parts = append(parts, thisPart)
	return parts
}

// ContainsFunction returns true if one of the tokens, at any depth,
// is a call to `name`.
func ContainsFunction(tokens []Token, name string) bool {
	for _, t := range tokens {
		if t.Kind == Function && equalFold(t.Value, name) {
			return true
		}
		if len(t.Arguments) != 0 && ContainsFunction(t.Arguments, name) {
			return true
		}
	}
	return false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
