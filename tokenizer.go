package pbrt4

import "strings"

// Tokenizer splits a scene description buffer into tokens.
//
// Lexical rules: brackets are single-character tokens, whitespace
// separates tokens, a quoted string runs to the closing quote inclusive
// (or to the end of input when unterminated, there are no escape
// sequences), and a # comment runs to the end of the line. Everything
// else is a bare word ending at whitespace, a quote or a bracket.
type Tokenizer struct {
	buf string
	pos int

	peeked   Token
	havePeek bool

	skipComments bool
}

// NewTokenizer creates a tokenizer over buf.
func NewTokenizer(buf string) *Tokenizer {
	return &Tokenizer{buf: buf}
}

// SkipComments makes the tokenizer drop comment tokens instead of
// emitting them.
func (t *Tokenizer) SkipComments() {
	t.skipComments = true
}

// Next returns the next token. ok is false once the buffer is
// exhausted.
func (t *Tokenizer) Next() (Token, bool) {
	if t.havePeek {
		t.havePeek = false
		return t.peeked, true
	}
	return t.scan()
}

// Peek returns the next token without consuming it.
func (t *Tokenizer) Peek() (Token, bool) {
	if !t.havePeek {
		tok, ok := t.scan()
		if !ok {
			return Token{}, false
		}
		t.peeked = tok
		t.havePeek = true
	}
	return t.peeked, true
}

func (t *Tokenizer) scan() (Token, bool) {
	for t.pos < len(t.buf) {
		start := t.pos
		ch := t.buf[t.pos]
		t.pos++

		switch ch {
		case '[', ']':
			return NewToken(t.buf[start:t.pos]), true
		case ' ', '\t', '\r', '\n':
			continue
		case '"':
			t.advanceUntil(`"`)
			if t.pos < len(t.buf) {
				t.pos++ // consume the closing quote
			}
			return NewToken(t.buf[start:t.pos]), true
		case '#':
			t.advanceUntil("\r\n")
			if t.skipComments {
				continue
			}
			return NewToken(t.buf[start:t.pos]), true
		default:
			t.advanceUntil(" \t\r\n\"[]")
			return NewToken(t.buf[start:t.pos]), true
		}
	}
	return Token{}, false
}

// advanceUntil moves the position forward to the first occurrence of
// any of chars, or to the end of the buffer.
func (t *Tokenizer) advanceUntil(chars string) {
	if i := strings.IndexAny(t.buf[t.pos:], chars); i >= 0 {
		t.pos += i
	} else {
		t.pos = len(t.buf)
	}
}
