package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/companyintel"
	"github.com/fwojciec/companyintel/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("")
	require.NoError(t, err)

	// Verify it implements the interface
	var _ companyintel.TokenCounter = tc

	t.Run("counts tokens in text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "Acme Corp builds rockets.")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		shortCount, err := tc.CountTokens(ctx, "Hello")
		require.NoError(t, err)

		longCount, err := tc.CountTokens(ctx, "Hello, this is a much longer piece of text that should have more tokens than just a single word.")
		require.NoError(t, err)

		assert.Greater(t, longCount, shortCount)
	})
}

func TestEstimateTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, gemini.EstimateTokens(""))
	assert.Equal(t, 1, gemini.EstimateTokens("abc"))
	assert.Equal(t, 1, gemini.EstimateTokens("abcd"))
	assert.Equal(t, 2, gemini.EstimateTokens("abcde"))
	assert.Equal(t, 1, gemini.EstimateTokens("żółw"))
}

func TestEstimator_CountTokens(t *testing.T) {
	t.Parallel()

	n, err := gemini.Estimator{}.CountTokens(context.Background(), "abcdefgh")

	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
