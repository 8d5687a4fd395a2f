package intent

import (
	"context"
	"strings"

	"fjacquet/statement-analyzer/internal/logging"
)

// Resolution is the outcome of resolving a question.
type Resolution struct {
	Intent
	Source Source `json:"source"`
}

// Resolver picks the keyword of a chat question. It never fails: when the
// extractor is missing, errors or returns no keyword, the last word of the
// question is used.
type Resolver struct {
	extractor Extractor
	logger    logging.Logger
}

// NewResolver creates a Resolver. extractor may be nil.
func NewResolver(extractor Extractor, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Resolver{extractor: extractor, logger: logger}
}

// HasExtractor reports whether a language-model extractor is configured.
func (r *Resolver) HasExtractor() bool {
	return r.extractor != nil
}

// Resolve returns the keyword for query.
func (r *Resolver) Resolve(ctx context.Context, query string) Resolution {
	if kw, ok := Quoted(query); ok {
		return Resolution{Intent: Intent{Intent: SpendingQuery, Keyword: kw}, Source: SourceQuoted}
	}

	if r.extractor != nil {
		parsed, err := r.extractor.Extract(ctx, query)
		switch {
		case err != nil:
			r.logger.WithError(err).Warn("Keyword extraction failed, using last word of query",
				logging.F(logging.FieldOperation, "resolve_keyword"))
		case strings.TrimSpace(parsed.Keyword) == "":
			r.logger.Warn("Extractor returned no keyword, using last word of query",
				logging.F(logging.FieldOperation, "resolve_keyword"))
		default:
			parsed.Keyword = strings.TrimSpace(parsed.Keyword)
			if parsed.Intent == "" {
				parsed.Intent = SpendingQuery
			}
			r.logger.Debug("Keyword extracted", logging.F(logging.FieldKeyword, parsed.Keyword))
			return Resolution{Intent: parsed, Source: SourceExtractor}
		}
	}

	return Resolution{
		Intent: Intent{Intent: SpendingQuery, Keyword: LastToken(query)},
		Source: SourceFallback,
	}
}
