// Package intent turns a free-text chat question into the keyword the
// matcher searches for. Quoted text is taken verbatim; otherwise an optional
// language-model extractor is asked, with the last word of the question as
// the fallback.
package intent

import (
	"context"
	"regexp"
	"strings"
)

// SpendingQuery is the only intent the chat pipeline answers.
const SpendingQuery = "spending_query"

// Intent is the parsed form of a chat question.
type Intent struct {
	Intent  string `json:"intent"`
	Keyword string `json:"keyword"`
}

// Source records how the keyword was obtained.
type Source string

const (
	SourceQuoted    Source = "quoted"
	SourceExtractor Source = "extractor"
	SourceFallback  Source = "last_token"
)

// Extractor asks an external service for the keyword of a question.
type Extractor interface {
	Extract(ctx context.Context, query string) (Intent, error)
}

var quotedPattern = regexp.MustCompile(`'([^']*)'|"([^"]*)"`)

// Quoted returns the first non-empty single- or double-quoted substring of
// query.
func Quoted(query string) (string, bool) {
	for _, groups := range quotedPattern.FindAllStringSubmatch(query, -1) {
		for _, g := range groups[1:] {
			if g != "" {
				return g, true
			}
		}
	}
	return "", false
}

// LastToken returns the last whitespace-separated word of query, or "" for
// a blank query.
func LastToken(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
