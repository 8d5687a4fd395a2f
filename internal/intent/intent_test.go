package intent

import (
	"context"
	"errors"
	"testing"

	"fjacquet/statement-analyzer/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoted(t *testing.T) {
	tests := []struct {
		query    string
		expected string
		found    bool
	}{
		{query: "How much did I spend on 'swiggy'?", expected: "swiggy", found: true},
		{query: `What did "Amazon Pay" cost me`, expected: "Amazon Pay", found: true},
		{query: `spent on '' or "rent"`, expected: "rent", found: true},
		{query: "first 'a' then 'b'", expected: "a", found: true},
		{query: "how much on rent", expected: "", found: false},
		{query: "dangling 'quote", expected: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			kw, ok := Quoted(tt.query)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, kw)
		})
	}
}

func TestLastToken(t *testing.T) {
	assert.Equal(t, "rent", LastToken("how much on rent"))
	assert.Equal(t, "salary?", LastToken("  from salary?  "))
	assert.Equal(t, "", LastToken("   "))
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Intent
		wantErr  bool
	}{
		{
			name:     "compact json",
			raw:      `{"intent": "spending_query", "keyword": "rent"}`,
			expected: Intent{Intent: SpendingQuery, Keyword: "rent"},
		},
		{
			name:     "fenced",
			raw:      "```json\n{\"intent\":\"spending_query\",\"keyword\":\" zomato \"}\n```",
			expected: Intent{Intent: SpendingQuery, Keyword: "zomato"},
		},
		{
			name:     "surrounding text and missing intent",
			raw:      `Sure! {"keyword": "fuel"} hope this helps`,
			expected: Intent{Intent: SpendingQuery, Keyword: "fuel"},
		},
		{name: "not json", raw: "The keyword is rent.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReply(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGeminiExtractor_NoAPIKey(t *testing.T) {
	g := NewGeminiExtractor("", "", 0, logging.NewMockLogger())

	_, err := g.Extract(context.Background(), "how much on rent")

	assert.True(t, errors.Is(err, ErrNoAPIKey))
	assert.NoError(t, g.Close())
}
