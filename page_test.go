package companyintel_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/companyintel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateText(t *testing.T) {
	t.Parallel()

	t.Run("leaves short text unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "hello", companyintel.TruncateText("hello", 10))
	})

	t.Run("leaves text exactly at the cap unchanged", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("a", 10)
		assert.Equal(t, text, companyintel.TruncateText(text, 10))
	})

	t.Run("cuts long text to cap plus marker", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("a", 60000)
		got := companyintel.TruncateText(text, companyintel.DefaultMaxChars)

		assert.Len(t, got, companyintel.DefaultMaxChars+len(companyintel.TruncationMarker))
		assert.True(t, strings.HasSuffix(got, companyintel.TruncationMarker))
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("é", 20)
		got := companyintel.TruncateText(text, 5)

		assert.Equal(t, strings.Repeat("é", 5)+companyintel.TruncationMarker, got)
		assert.Equal(t, 5+utf8.RuneCountInString(companyintel.TruncationMarker), utf8.RuneCountInString(got))
	})

	t.Run("multibyte text within the cap is unchanged", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("é", 5)
		assert.Equal(t, text, companyintel.TruncateText(text, 5))
	})

	t.Run("non-positive limit disables truncation", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "abcdef", companyintel.TruncateText("abcdef", 0))
	})
}

func TestValidateURL(t *testing.T) {
	t.Parallel()

	t.Run("accepts http and https URLs", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, companyintel.ValidateURL("https://example.com"))
		require.NoError(t, companyintel.ValidateURL("http://example.com/about"))
	})

	t.Run("rejects empty URL", func(t *testing.T) {
		t.Parallel()

		err := companyintel.ValidateURL("")

		require.Error(t, err)
		assert.Equal(t, companyintel.EINVALID, companyintel.ErrorCode(err))
	})

	t.Run("rejects URL without scheme", func(t *testing.T) {
		t.Parallel()

		err := companyintel.ValidateURL("example.com")

		require.Error(t, err)
		assert.Equal(t, companyintel.EINVALID, companyintel.ErrorCode(err))
	})

	t.Run("rejects non-http scheme", func(t *testing.T) {
		t.Parallel()

		err := companyintel.ValidateURL("ftp://example.com")

		require.Error(t, err)
		assert.Equal(t, companyintel.EINVALID, companyintel.ErrorCode(err))
	})

	t.Run("rejects URL without host", func(t *testing.T) {
		t.Parallel()

		err := companyintel.ValidateURL("https://")

		require.Error(t, err)
		assert.Equal(t, companyintel.EINVALID, companyintel.ErrorCode(err))
	})
}
