// Package anthropic implements the model collaborator with the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/companyintel"
)

// DefaultModel is the Claude model used when none is configured.
const DefaultModel = "claude-haiku-4-5-20251001"

// DefaultMaxTokens bounds the length of a generated report.
const DefaultMaxTokens = 4096

// DefaultTemperature keeps reports close to the scraped facts.
const DefaultTemperature = 0.4

// Ensure Completer implements companyintel.Completer at compile time.
var _ companyintel.Completer = (*Completer)(nil)

// Completer implements companyintel.Completer using Claude.
type Completer struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
// The SDK's own retries are disabled: a report is generated with a single
// model call.
func NewCompleter(apiKey, model string, opts ...option.RequestOption) *Completer {
	if model == "" {
		model = DefaultModel
	}
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	return &Completer{
		client:    sdk.NewClient(opts...),
		model:     model,
		maxTokens: DefaultMaxTokens,
	}
}

// Model returns the model name sent with each request.
func (c *Completer) Model() string {
	return c.model
}

// Complete sends one message with system as the system prompt.
func (c *Completer) Complete(ctx context.Context, system, user string) (*companyintel.Completion, error) {
	if user == "" {
		return nil, companyintel.Errorf(companyintel.EINVALID, "user prompt required")
	}

	params := sdk.MessageNewParams{
		Model:       sdk.Model(c.model),
		MaxTokens:   c.maxTokens,
		Messages:    []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(user))},
		Temperature: sdk.Float(DefaultTemperature),
	}
	if system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic: create message: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, companyintel.Errorf(companyintel.EINTERNAL, "anthropic returned empty response (stop reason %q)", msg.StopReason)
	}

	return &companyintel.Completion{
		Text:         text.String(),
		Model:        c.model,
		InputTokens:  int(msg.Usage.InputTokens),
		OutputTokens: int(msg.Usage.OutputTokens),
	}, nil
}
