package format

import (
	"slices"
	"strings"

	"github.com/tunesort/tunesort/internal/model"
)

type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenTag
	tokenOpen
	tokenClose
)

// token is one lexical element of a template: a run of literal text, a
// %tag placeholder (text holds the name, possibly empty), or a section
// brace.
type token struct {
	kind tokenKind
	text string
}

func isTagLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// tokenize splits a template into tokens. All delimiters are ASCII, so a
// byte scan is safe for multi-byte literal text.
func tokenize(template string) []token {
	var tokens []token
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, token{kind: tokenLiteral, text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(template); {
		switch template[i] {
		case '{':
			flush()
			tokens = append(tokens, token{kind: tokenOpen})
			i++
		case '}':
			flush()
			tokens = append(tokens, token{kind: tokenClose})
			i++
		case '%':
			j := i + 1
			for j < len(template) && isTagLetter(template[j]) {
				j++
			}
			flush()
			tokens = append(tokens, token{kind: tokenTag, text: template[i+1 : j]})
			i = j
		default:
			lit.WriteByte(template[i])
			i++
		}
	}
	flush()
	return tokens
}

// evaluator carries the state shared across all nesting levels of one
// render. unique accumulates globally: a unique tag that resolved
// non-empty counts even when its enclosing section later collapses.
type evaluator struct {
	song   *model.Song
	opts   Options
	unique bool
}

// levelResult is the structured outcome of evaluating one nesting level.
//
// empty reports whether a placeholder at this level resolved to the empty
// string. It deliberately ignores nested sections: a collapsed inner
// section never collapses its parent, only the parent's own placeholders
// do.
type levelResult struct {
	text   string
	empty  bool
	next   int
	closed bool
}

// run evaluates a whole template and returns the substituted text.
func (e *evaluator) run(template string) string {
	return e.evalLevel(tokenize(template), 0, true).text
}

// evalLevel consumes tokens from pos until the closing brace of this level
// (closed=true) or the end of input. Substituted values are emitted as
// opaque text and never re-tokenized, so braces or percent signs inside
// tag values stay literal.
func (e *evaluator) evalLevel(tokens []token, pos int, top bool) levelResult {
	var out strings.Builder
	empty := false

	i := pos
	for i < len(tokens) {
		switch tok := tokens[i]; tok.kind {
		case tokenLiteral:
			out.WriteString(tok.text)
			i++

		case tokenTag:
			value := resolveTag(tok.text, e.song, e.opts)
			if value == "" {
				empty = true
			} else if slices.Contains(UniqueTags, tok.text) {
				e.unique = true
			}
			out.WriteString(value)
			i++

		case tokenOpen:
			// A section needs content between its braces; a bare "{}" is
			// literal text.
			if i+1 < len(tokens) && tokens[i+1].kind == tokenClose {
				out.WriteString("{}")
				i += 2
				continue
			}
			inner := e.evalLevel(tokens, i+1, false)
			if inner.closed {
				if !inner.empty {
					out.WriteString(inner.text)
				}
			} else {
				// No matching close brace: the brace is literal text and
				// the placeholders after it belong to this level.
				out.WriteByte('{')
				out.WriteString(inner.text)
				empty = empty || inner.empty
			}
			i = inner.next

		case tokenClose:
			if !top {
				return levelResult{text: out.String(), empty: empty, next: i + 1, closed: true}
			}
			// Unbalanced close brace at the top level stays literal.
			out.WriteByte('}')
			i++
		}
	}

	return levelResult{text: out.String(), empty: empty, next: i, closed: false}
}
