package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// tokenEncoder maps each distinct token to one rune so the character
// based Myers implementation can diff token sequences.
type tokenEncoder struct {
	runes  map[string]rune
	tokens map[rune]string
}

func newTokenEncoder() *tokenEncoder {
	return &tokenEncoder{
		runes:  make(map[string]rune),
		tokens: make(map[rune]string),
	}
}

// surrogates are not valid runes and would not survive the string
// round trip inside diffmatchpatch
func tokenRune(index int) rune {
	r := rune(index + 1)
	if r >= 0xD800 {
		r += 0x800
	}
	return r
}

func (e *tokenEncoder) encode(tokens []string) []rune {
	encoded := make([]rune, len(tokens))
	for i, token := range tokens {
		r, ok := e.runes[token]
		if !ok {
			r = tokenRune(len(e.runes))
			e.runes[token] = r
			e.tokens[r] = token
		}
		encoded[i] = r
	}
	return encoded
}

func (e *tokenEncoder) decode(text string) []string {
	decoded := make([]string, 0, len(text))
	for _, r := range text {
		decoded = append(decoded, e.tokens[r])
	}
	return decoded
}

func tokenize(text string, granularity Granularity) []string {
	if granularity == Characters {
		tokens := make([]string, 0, len(text))
		for _, r := range text {
			tokens = append(tokens, string(r))
		}
		return tokens
	}
	return strings.Fields(text)
}

// Text computes a minimal token diff between from and to. Word
// granularity splits on whitespace and drops it.
func Text(from string, to string, granularity Granularity) TextDiff {
	encoder := newTokenEncoder()
	a := encoder.encode(tokenize(from, granularity))
	b := encoder.encode(tokenize(to, granularity))

	dmp := diffmatchpatch.New()
	// no timeout: the half-match speedup can return non-minimal diffs
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMainRunes(a, b, false)

	spans := make([]Span, 0, len(diffs))
	for _, d := range diffs {
		tokens := encoder.decode(d.Text)
		if len(tokens) == 0 {
			continue
		}
		op := opOf(d.Type)
		if n := len(spans); n > 0 && spans[n-1].Op == op {
			spans[n-1].Tokens = append(spans[n-1].Tokens, tokens...)
			continue
		}
		spans = append(spans, Span{Op: op, Tokens: tokens})
	}
	return TextDiff{Spans: spans}
}

func opOf(operation diffmatchpatch.Operation) Op {
	switch operation {
	case diffmatchpatch.DiffInsert:
		return OpInsert
	case diffmatchpatch.DiffDelete:
		return OpDelete
	default:
		return OpEqual
	}
}
