package gemini

import (
	"context"
	"unicode/utf8"

	"github.com/fwojciec/companyintel"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// TokenizerModel is the model whose vocabulary is used for local counting.
// Newer Gemini models share the same tokenizer.
const TokenizerModel = "gemini-2.0-flash"

var _ companyintel.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens locally using the Gemini tokenizer, so it
// can estimate prompt size without an API call.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model. An empty
// model selects TokenizerModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = TokenizerModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}

var _ companyintel.TokenCounter = Estimator{}

// Estimator counts tokens with EstimateTokens. It stands in for
// TokenCounter when the tokenizer cannot be loaded.
type Estimator struct{}

// CountTokens implements companyintel.TokenCounter.
func (Estimator) CountTokens(_ context.Context, text string) (int, error) {
	return EstimateTokens(text), nil
}

// EstimateTokens approximates a token count at four characters per token.
// It is used when no tokenizer is available.
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}
