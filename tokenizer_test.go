package pbrt4

import (
	"testing"
)

func readAll(src string, skipComments bool) []string {
	tokenizer := NewTokenizer(src)
	if skipComments {
		tokenizer.SkipComments()
	}
	var tokens []string
	for {
		tok, ok := tokenizer.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok.Value())
	}
}

func expectTokens(test *testing.T, src string, expected ...string) {
	tokens := readAll(src, false)
	if len(tokens) != len(expected) {
		test.Errorf("Tokenizing %q resulted in %d tokens %v, expected %d", src, len(tokens), tokens, len(expected))
		return
	}
	for i, tok := range tokens {
		if tok != expected[i] {
			test.Errorf("Tokenizing %q: token %d is %q, expected %q", src, i, tok, expected[i])
		}
	}
}

func TestTokenizeEmpty(test *testing.T) {
	expectTokens(test, "")
	expectTokens(test, "  \t\r\n ")
}

func TestTokenizeWords(test *testing.T) {
	expectTokens(test, "Shape", "Shape")
	expectTokens(test, "Shape sphere", "Shape", "sphere")
	expectTokens(test, "Shape\nsphere\n", "Shape", "sphere")
	expectTokens(test, "Scale -1 1 1", "Scale", "-1", "1", "1")
}

func TestTokenizeBrackets(test *testing.T) {
	expectTokens(test, "[1 2]", "[", "1", "2", "]")
	expectTokens(test, "[1.5]", "[", "1.5", "]")
	expectTokens(test, "a[b", "a", "[", "b")
}

func TestTokenizeQuoted(test *testing.T) {
	expectTokens(test, `"float radius"`, `"float radius"`)
	expectTokens(test, `"a" "b"`, `"a"`, `"b"`)
	expectTokens(test, `""`, `""`)
	expectTokens(test, `Texture"checks""spectrum"`, "Texture", `"checks"`, `"spectrum"`)
}

func TestTokenizeUnterminatedQuote(test *testing.T) {
	// A quote that never closes consumes the rest of the input; the
	// resulting token fails validation later.
	expectTokens(test, `"one two`, `"one two`)
	expectTokens(test, `"`, `"`)
}

func TestTokenizeComments(test *testing.T) {
	expectTokens(test, "# whole line", "# whole line")
	expectTokens(test, "Shape # trailing\nsphere", "Shape", "# trailing", "sphere")
	expectTokens(test, "#at eof", "#at eof")
}

func TestTokenizeSkipComments(test *testing.T) {
	tokens := readAll("# one\nShape # two\nsphere\n# three", true)
	if len(tokens) != 2 || tokens[0] != "Shape" || tokens[1] != "sphere" {
		test.Errorf("Skipping comments resulted in %v", tokens)
	}
}

func TestTokenizePeek(test *testing.T) {
	tokenizer := NewTokenizer("one two")
	peeked, ok := tokenizer.Peek()
	if !ok || peeked.Value() != "one" {
		test.Errorf("Peek resulted in %q, %v", peeked.Value(), ok)
	}
	// Peeking again must not advance.
	peeked, ok = tokenizer.Peek()
	if !ok || peeked.Value() != "one" {
		test.Errorf("Second peek resulted in %q, %v", peeked.Value(), ok)
	}
	next, ok := tokenizer.Next()
	if !ok || next.Value() != "one" {
		test.Errorf("Next after peek resulted in %q, %v", next.Value(), ok)
	}
	next, ok = tokenizer.Next()
	if !ok || next.Value() != "two" {
		test.Errorf("Next resulted in %q, %v", next.Value(), ok)
	}
	if _, ok = tokenizer.Next(); ok {
		test.Errorf("Next at end of input should report no token")
	}
}
