package companyintel

// ModelPrice holds token pricing in USD per million tokens.
type ModelPrice struct {
	Input  float64 `yaml:"input" json:"input"`
	Output float64 `yaml:"output" json:"output"`
}

// Pricing maps model names to their prices.
type Pricing map[string]ModelPrice

// DefaultPricing returns the built-in price table.
func DefaultPricing() Pricing {
	return Pricing{
		"gpt-4o-mini":                {Input: 0.15, Output: 0.60},
		"gemini-2.5-flash":           {Input: 0.30, Output: 2.50},
		"gemini-2.5-flash-lite":      {Input: 0.10, Output: 0.40},
		"gemini-2.5-pro":             {Input: 1.25, Output: 10.00},
		"claude-haiku-4-5-20251001":  {Input: 0.80, Output: 4.00},
		"claude-sonnet-4-5-20250929": {Input: 3.00, Output: 15.00},
	}
}

// Cost returns the USD cost of a call to model. Unknown models cost 0.
func (p Pricing) Cost(model string, inputTokens, outputTokens int) float64 {
	price, ok := p[model]
	if !ok {
		return 0
	}
	return float64(inputTokens)*price.Input/1e6 + float64(outputTokens)*price.Output/1e6
}

// Merge returns a copy of p with the entries of other added or replaced.
func (p Pricing) Merge(other Pricing) Pricing {
	out := make(Pricing, len(p)+len(other))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
