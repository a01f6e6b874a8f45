// Package diff computes reviewable deltas between two revisions: token
// spans for text fields and element sets for list fields.
package diff

import "sort"

// Op classifies a span or element of a diff.
type Op string

const (
	OpEqual  Op = "equal"
	OpInsert Op = "inserted"
	OpDelete Op = "deleted"
)

// Granularity selects how text is tokenized before diffing.
type Granularity int

const (
	Words Granularity = iota
	Characters
)

type Span struct {
	Op     Op       `json:"op"`
	Tokens []string `json:"tokens"`
}

type TextDiff struct {
	Spans []Span `json:"spans"`
}

type SetDiff struct {
	Equal    []string `json:"equal"`
	Inserted []string `json:"inserted"`
	Deleted  []string `json:"deleted"`
}

// Fields is the diffable projection of a revision value. Text fields are
// diffed token by token, list fields as unordered sets.
type Fields struct {
	Text  map[string]string
	Lists map[string][]string
}

type Result struct {
	Text  map[string]TextDiff `json:"text,omitempty"`
	Lists map[string]SetDiff  `json:"lists,omitempty"`
}

func (t TextDiff) tokens(op Op) []string {
	tokens := make([]string, 0)
	for _, span := range t.Spans {
		if span.Op == op {
			tokens = append(tokens, span.Tokens...)
		}
	}
	return tokens
}

func (t TextDiff) Equal() []string {
	return t.tokens(OpEqual)
}

func (t TextDiff) Inserted() []string {
	return t.tokens(OpInsert)
}

func (t TextDiff) Deleted() []string {
	return t.tokens(OpDelete)
}

func (t TextDiff) Identical() bool {
	for _, span := range t.Spans {
		if span.Op != OpEqual {
			return false
		}
	}
	return true
}

func (s SetDiff) Identical() bool {
	return len(s.Inserted) == 0 && len(s.Deleted) == 0
}

func (r Result) Identical() bool {
	for _, text := range r.Text {
		if !text.Identical() {
			return false
		}
	}
	for _, list := range r.Lists {
		if !list.Identical() {
			return false
		}
	}
	return true
}

// Compare diffs every field present on either side. A field missing on one
// side counts as empty.
func Compare(from Fields, to Fields) Result {
	result := Result{
		Text:  make(map[string]TextDiff),
		Lists: make(map[string]SetDiff),
	}
	for _, name := range keys(from.Text, to.Text) {
		result.Text[name] = Text(from.Text[name], to.Text[name], Words)
	}
	for _, name := range keys(from.Lists, to.Lists) {
		result.Lists[name] = Set(from.Lists[name], to.Lists[name])
	}
	return result
}

func keys[V any](a map[string]V, b map[string]V) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
