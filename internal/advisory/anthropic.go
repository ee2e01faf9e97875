package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/quokkatech/finrecon/internal/money"
	"github.com/quokkatech/finrecon/internal/types"
)

// DefaultModel is used when neither config nor environment selects one.
const DefaultModel = "claude-sonnet-4-5-20250929"

// modelFromEnv allows overriding the model without touching config.
func modelFromEnv() string {
	if model := os.Getenv("FINRECON_ADVISORY_MODEL"); model != "" {
		return model
	}
	return DefaultModel
}

// Client is the model-backed assessor. Concurrent assessments share a
// semaphore and a rate limiter so batch runs cannot stampede the API.
type Client struct {
	client  *anthropic.Client
	model   string
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// ClientConfig configures the model-backed assessor.
type ClientConfig struct {
	// APIKey falls back to the ANTHROPIC_API_KEY environment variable.
	APIKey string

	// Model falls back to FINRECON_ADVISORY_MODEL, then the default.
	Model string

	// MaxConcurrentCalls bounds simultaneous API calls. Zero means 1.
	MaxConcurrentCalls int
}

// NewClient builds a model-backed assessor.
func NewClient(cfg ClientConfig) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
	}

	model := cfg.Model
	if model == "" {
		model = modelFromEnv()
	}

	maxCalls := cfg.MaxConcurrentCalls
	if maxCalls <= 0 {
		maxCalls = 1
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		client:  &client,
		model:   model,
		sem:     semaphore.NewWeighted(int64(maxCalls)),
		limiter: rate.NewLimiter(rate.Limit(1), maxCalls),
	}, nil
}

// Assess implements Assessor. It summarizes the statement for the model
// and parses the proposed observations out of the reply. The caller's Run
// wrapper owns the severity clamp; Assess just reports what came back.
func (c *Client) Assess(ctx context.Context, m *types.MergedStatement) ([]types.ValidationResult, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquiring advisory slot: %w", err)
	}
	defer c.sem.Release(1)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 2048,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(m))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("advisory API call: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return parseObservations(text)
}

func buildPrompt(m *types.MergedStatement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are reviewing the draft financial statements of %s for FY%d.\n\n", m.EntityName, m.FinancialYear)

	writeSection := func(s *types.StatementSection) {
		fmt.Fprintf(&b, "%s:\n", s.Title)
		for _, item := range s.Items {
			fmt.Fprintf(&b, "  %s: current %s, prior %s\n",
				item.Label, money.Format(item.Current), money.Format(item.Prior))
		}
		b.WriteString("\n")
	}
	writeSection(&m.IncomeStatement)
	writeSection(&m.BalanceSheet)

	b.WriteString("Notes:\n")
	for _, n := range m.Notes {
		fmt.Fprintf(&b, "  %d. %s\n", n.Number, n.Heading)
	}

	b.WriteString(`
List anything a reviewer should look at before these statements are
finalized: unusual movements, disclosures that look inconsistent with the
figures, or items a compiler commonly gets wrong. Reply with a JSON array;
each element is an object with "severity" ("warning" or "pass"),
"message", and "subject_keys" (array of strings). Reply with [] if nothing
stands out.`)
	return b.String()
}

// observation is the wire shape of one model-proposed result.
type observation struct {
	Severity    string   `json:"severity"`
	Message     string   `json:"message"`
	SubjectKeys []string `json:"subject_keys"`
}

var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

// parseObservations tolerates the usual model formatting drift: markdown
// fences and prose around the array. A reply with no parseable array is
// an error for the Run wrapper to log.
func parseObservations(text string) ([]types.ValidationResult, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if !strings.HasPrefix(cleaned, "[") {
		match := jsonArrayRe.FindString(cleaned)
		if match == "" {
			return nil, fmt.Errorf("no JSON array in advisory reply")
		}
		cleaned = match
	}

	var observations []observation
	if err := json.Unmarshal([]byte(cleaned), &observations); err != nil {
		return nil, fmt.Errorf("parsing advisory reply: %w", err)
	}

	results := make([]types.ValidationResult, 0, len(observations))
	for _, o := range observations {
		if strings.TrimSpace(o.Message) == "" {
			continue
		}
		results = append(results, types.ValidationResult{
			CheckID:     "advisory",
			Severity:    types.Severity(o.Severity),
			Message:     o.Message,
			SubjectKeys: o.SubjectKeys,
		})
	}
	return results, nil
}
