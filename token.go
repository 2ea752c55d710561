package pbrt4

import (
	"fmt"
	"strconv"
	"strings"
)

// Token is a single lexical token: a view into the source buffer, no
// text is copied. The zero value is the empty (invalid) token.
type Token struct {
	text string
}

// NewToken wraps raw token text.
func NewToken(text string) Token {
	return Token{text: text}
}

// Value returns the raw token text, quotes included.
func (t Token) Value() string {
	return t.text
}

func (t Token) String() string {
	return t.text
}

// IsValid reports whether the token is well formed: non-empty, quotes
// balanced, and no embedded spaces unless quoted.
func (t Token) IsValid() bool {
	if t.text == "" {
		return false
	}

	startsWithQuote := strings.HasPrefix(t.text, `"`)
	endsWithQuote := strings.HasSuffix(t.text, `"`)

	if startsWithQuote || endsWithQuote {
		if startsWithQuote != endsWithQuote {
			return false
		}
		if len(t.text) < 2 {
			return false
		}
	}

	if !startsWithQuote && strings.Contains(t.text, " ") {
		return false
	}

	return true
}

// IsQuote reports whether the token starts a quoted string.
func (t Token) IsQuote() bool {
	return strings.HasPrefix(t.text, `"`)
}

func (t Token) IsOpenBracket() bool {
	return t.text == "["
}

func (t Token) IsCloseBracket() bool {
	return t.text == "]"
}

func (t Token) IsComment() bool {
	return strings.HasPrefix(t.text, "#")
}

// IsDirective reports whether the token is one of the directive
// keywords.
func (t Token) IsDirective() bool {
	_, ok := directives[t.text]
	return ok
}

// Unquote strips the surrounding quotes. ok is false when the token is
// not a quoted string.
func (t Token) Unquote() (string, bool) {
	s, ok := strings.CutPrefix(t.text, `"`)
	if !ok {
		return "", false
	}
	s, ok = strings.CutSuffix(s, `"`)
	if !ok {
		return "", false
	}
	return s, true
}

// Float parses the token as a float32.
func (t Token) Float() (float32, error) {
	v, err := strconv.ParseFloat(t.text, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrParseFloat, t.text)
	}
	return float32(v), nil
}

// Int parses the token as an int32.
func (t Token) Int() (int32, error) {
	v, err := strconv.ParseInt(t.text, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrParseInt, t.text)
	}
	return int32(v), nil
}

// Bool parses the token as a boolean. Only the literals true and false
// are accepted.
func (t Token) Bool() (bool, error) {
	switch t.text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrParseBool, t.text)
}
