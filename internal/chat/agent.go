// Package chat answers "how much did I spend on X" questions over the loaded
// statement: the question is resolved to a keyword, matched against the
// transaction descriptions and rendered as a short Markdown reply.
package chat

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/statement-analyzer/internal/currencyutils"
	"fjacquet/statement-analyzer/internal/intent"
	"fjacquet/statement-analyzer/internal/logging"
	"fjacquet/statement-analyzer/internal/matcher"
	"fjacquet/statement-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol prefixes amounts when none is configured.
const DefaultCurrencySymbol = "₹"

const (
	msgNoData       = "⚠️ Please upload your transaction JSON first."
	msgEmptyKeyword = "⚠️ Please ask about a keyword, e.g. How much did I spend on 'rent'?"
)

// RecordSource supplies the records a question is answered against.
type RecordSource interface {
	Records() []models.Record
	Columns() models.Columns
}

// Agent runs the parse, match and respond steps for one question.
type Agent struct {
	resolver *intent.Resolver
	symbol   string
	logger   logging.Logger
}

// NewAgent creates an Agent. An empty symbol uses DefaultCurrencySymbol.
func NewAgent(resolver *intent.Resolver, symbol string, logger logging.Logger) *Agent {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if resolver == nil {
		resolver = intent.NewResolver(nil, logger)
	}
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return &Agent{resolver: resolver, symbol: symbol, logger: logger}
}

// Reply is the structured outcome of a question.
type Reply struct {
	Text       string            `json:"response"`
	Resolution intent.Resolution `json:"parsed"`
	Result     matcher.Result    `json:"result"`
}

// Ask answers query against the records of src.
func (a *Agent) Ask(ctx context.Context, src RecordSource, query string) Reply {
	records := src.Records()
	if len(records) == 0 {
		return Reply{Text: msgNoData}
	}

	res := a.resolver.Resolve(ctx, query)
	if res.Keyword == "" {
		return Reply{Text: msgEmptyKeyword, Resolution: res}
	}

	result := matcher.Match(records, res.Keyword, src.Columns())
	a.logger.Debug("Answered chat query",
		logging.F(logging.FieldKeyword, res.Keyword),
		logging.F("source", string(res.Source)),
		logging.F(logging.FieldCount, len(result.Matches)))

	return Reply{
		Text:       a.render(res.Keyword, result),
		Resolution: res,
		Result:     result,
	}
}

// Respond is Ask returning only the rendered text.
func (a *Agent) Respond(ctx context.Context, src RecordSource, query string) string {
	return a.Ask(ctx, src, query).Text
}

func (a *Agent) render(keyword string, result matcher.Result) string {
	var b strings.Builder
	switch {
	case result.Net.IsPositive():
		fmt.Fprintf(&b, "💸 You spent **%s** on **%s**.\n\n", a.money(result.Net), keyword)
	case result.Net.IsNegative():
		fmt.Fprintf(&b, "💰 You gained **%s** from **%s**.\n\n", a.money(result.Net.Abs()), keyword)
	default:
		return fmt.Sprintf("No transactions found for '%s'.", keyword)
	}

	b.WriteString("**Matching Transactions:**\n")
	for i, m := range result.Matches {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- 📅 %s | %s | %s (%s)", m.Date, m.Description, a.money(m.Amount), m.Kind)
	}
	return b.String()
}

func (a *Agent) money(amount decimal.Decimal) string {
	return currencyutils.FormatWithSymbol(amount, a.symbol)
}
