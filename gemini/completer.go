// Package gemini implements the model collaborator and token counter with
// Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/companyintel"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultTemperature keeps reports close to the scraped facts.
const DefaultTemperature = float32(0.4)

// Ensure Completer implements companyintel.Completer at compile time.
var _ companyintel.Completer = (*Completer)(nil)

// Completer implements companyintel.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Model returns the model name sent with each request.
func (c *Completer) Model() string {
	return c.model
}

// Complete sends one request with system as the system instruction and user
// as the only user turn.
func (c *Completer) Complete(ctx context.Context, system, user string) (*companyintel.Completion, error) {
	if user == "" {
		return nil, companyintel.Errorf(companyintel.EINVALID, "user prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: user}},
		}},
		BuildConfig(system),
	)
	if err != nil {
		return nil, err
	}

	return ParseResponse(c.model, result)
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(system string) *genai.GenerateContentConfig {
	temp := DefaultTemperature
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	return config
}

// ParseResponse converts a Gemini response into a Completion.
// A nil response or one without text is an error.
func ParseResponse(model string, result *genai.GenerateContentResponse) (*companyintel.Completion, error) {
	if result == nil {
		return nil, companyintel.Errorf(companyintel.EINTERNAL, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" {
		return nil, companyintel.Errorf(companyintel.EINTERNAL, "gemini returned empty response")
	}

	completion := &companyintel.Completion{
		Text:  text,
		Model: model,
	}
	if u := result.UsageMetadata; u != nil {
		completion.InputTokens = int(u.PromptTokenCount)
		// Thinking tokens are billed at the output rate.
		completion.OutputTokens = int(u.CandidatesTokenCount + u.ThoughtsTokenCount)
	}
	return completion, nil
}
