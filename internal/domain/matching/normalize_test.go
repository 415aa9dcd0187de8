package matching

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeStripsPunctuationAndLowercases(t *testing.T) {
	tokens := Tokenize("Built REST-API, with Go/PostgreSQL!")
	require.Equal(t, []string{"built", "rest", "api", "postgresql"}, tokens)
}

func TestTokenizeDropsShortAndNumericTokens(t *testing.T) {
	tokens := Tokenize("go 42 ml a11y 2023 api")
	require.NotContains(t, tokens, "go")
	require.NotContains(t, tokens, "42")
	require.NotContains(t, tokens, "2023")
	require.Contains(t, tokens, "a11y")
	require.Contains(t, tokens, "api")
}

func TestTokenizeDropsStopWords(t *testing.T) {
	tokens := Tokenize("working with the team and their services")
	require.Equal(t, []string{"working", "team", "services"}, tokens)
}

func TestTokenizeDeterministic(t *testing.T) {
	in := "Distributed systems; caching, queues & workers."
	require.Equal(t, Tokenize(in), Tokenize(in))
}

func TestKeywordSetDeduplicates(t *testing.T) {
	set := KeywordSet("python python Python")
	require.Len(t, set, 1)
	_, ok := set["python"]
	require.True(t, ok)
}

func TestTokenizeEmptyInput(t *testing.T) {
	require.Empty(t, Tokenize(""))
	require.Empty(t, Tokenize("   ...  !! "))
}
