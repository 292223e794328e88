// Package query normalizes free-text queries before the text-search path
//.
package query

import "strings"

// Mode selects how Preprocess transforms a query.
type Mode int

const (
	// Raw passes the query through unchanged.
	Raw Mode = iota
	// Keywords tokenizes, case-folds, strips stop words and short tokens,
	// deduplicates, and caps the token count.
	Keywords
)

// maxTokens is the keyword-mode token cap.
const maxTokens = 12

// minTokenLen is the shortest keyword kept.
const minTokenLen = 3

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "being": true, "and": true,
	"or": true, "but": true, "if": true, "then": true, "of": true, "to": true,
	"in": true, "on": true, "at": true, "by": true, "for": true, "with": true,
	"about": true, "as": true, "into": true, "like": true, "through": true,
	"after": true, "before": true, "between": true, "this": true, "that": true,
	"these": true, "those": true, "it": true, "its": true, "do": true,
	"does": true, "did": true, "can": true, "could": true, "should": true,
	"would": true, "will": true, "shall": true, "how": true, "what": true,
	"why": true, "when": true, "where": true, "who": true, "which": true,
}

// Preprocess normalizes query according to mode.
func Preprocess(q string, mode Mode) string {
	if mode == Raw {
		return q
	}
	return preprocessKeywords(q)
}

func preprocessKeywords(q string) string {
	tokens := tokenize(q)

	seen := make(map[string]bool, len(tokens))
	var kept []string
	for _, t := range tokens {
		t = strings.ToLower(t)
		if len(t) < minTokenLen {
			continue
		}
		if stopWords[t] {
			continue
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		kept = append(kept, t)
		if len(kept) == maxTokens {
			break
		}
	}

	return strings.Join(kept, " ")
}

// tokenize splits on whitespace and punctuation while keeping hyphenated
// terms intact.
func tokenize(q string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range q {
		switch {
		case r == '-':
			cur.WriteRune(r)
		case isWordRune(r):
			cur.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}
