package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"fjacquet/statement-analyzer/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.0-flash"

// ErrNoAPIKey is returned when the extractor is used without credentials.
var ErrNoAPIKey = errors.New("GEMINI_API_KEY environment variable not set")

const promptTemplate = "Extract the main keyword from this query: '%s'. " +
	"Do not include filler words like 'on', 'for', 'to'. " +
	`Return a compact JSON: {"intent": "spending_query", "keyword": "<keyword>"}.`

// GeminiExtractor extracts keywords with the Google Gemini API. The client
// is created on first use.
type GeminiExtractor struct {
	apiKey    string
	modelName string
	timeout   time.Duration
	logger    logging.Logger

	mu     sync.Mutex
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiExtractor creates an extractor. A zero timeout means the caller's
// context alone bounds the request.
func NewGeminiExtractor(apiKey, modelName string, timeout time.Duration, logger logging.Logger) *GeminiExtractor {
	if modelName == "" {
		modelName = DefaultModel
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &GeminiExtractor{
		apiKey:    apiKey,
		modelName: modelName,
		timeout:   timeout,
		logger:    logger,
	}
}

func (g *GeminiExtractor) ensureClient(ctx context.Context) (*genai.GenerativeModel, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.model != nil {
		return g.model, nil
	}
	if g.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client
	g.model = client.GenerativeModel(g.modelName)
	return g.model, nil
}

// Extract sends the question to Gemini and parses the JSON reply.
func (g *GeminiExtractor) Extract(ctx context.Context, query string) (Intent, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	model, err := g.ensureClient(ctx)
	if err != nil {
		return Intent{}, err
	}

	g.logger.Debug("Requesting keyword extraction",
		logging.F(logging.FieldExtractor, "gemini"),
		logging.F("model", g.modelName))

	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(promptTemplate, query)))
	if err != nil {
		return Intent{}, fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Intent{}, errors.New("no response from Gemini API")
	}

	var reply strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			reply.WriteString(string(text))
		}
	}
	return ParseReply(reply.String())
}

// Close releases the underlying client, if one was created.
func (g *GeminiExtractor) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client, g.model = nil, nil
	return err
}

// ParseReply decodes a model reply of the form
// {"intent": "...", "keyword": "..."}, tolerating Markdown code fences and
// text around the object.
func ParseReply(raw string) (Intent, error) {
	clean := cleanModelJSON(raw)
	var parsed Intent
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return Intent{}, fmt.Errorf("unmarshal model reply: %w (raw response: %q)", err, raw)
	}
	parsed.Keyword = strings.TrimSpace(parsed.Keyword)
	if parsed.Intent == "" {
		parsed.Intent = SpendingQuery
	}
	return parsed, nil
}

func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// ```json ... ``` or ``` ... ```
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}
	return s
}
