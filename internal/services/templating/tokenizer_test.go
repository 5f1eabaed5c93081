package templating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTopLevel_Plain(t *testing.T) {
	parts := splitTopLevel("a|b|c", '|')
	assert.Equal(t, []string{"a", "b", "c"}, parts)
}

func TestSplitTopLevel_IgnoresSepInQuotes(t *testing.T) {
	parts := splitTopLevel(`join:"a|b"|upper`, '|')
	assert.Equal(t, []string{`join:"a|b"`, "upper"}, parts)
}

func TestSplitTopLevel_IgnoresSepInParens(t *testing.T) {
	parts := splitTopLevel(`replace:("a|b","c")|trim`, '|')
	assert.Equal(t, []string{`replace:("a|b","c")`, "trim"}, parts)
}

func TestSplitTopLevel_IgnoresSepInInterpolation(t *testing.T) {
	parts := splitTopLevel(`template:"${a|b}"|trim`, '|')
	assert.Equal(t, []string{`template:"${a|b}"`, "trim"}, parts)
}

func TestSplitTopLevel_EscapedQuoteInsideString(t *testing.T) {
	parts := splitTopLevel(`replace:"a\"|b","c"`, ',')
	assert.Equal(t, []string{`replace:"a\"|b"`, `"c"`}, parts)
}

func TestSplitTopLevel_NoSeparator(t *testing.T) {
	parts := splitTopLevel("upper", '|')
	assert.Equal(t, []string{"upper"}, parts)
}

func TestMatchingBrace_Nested(t *testing.T) {
	s := "${a{b}c}tail"
	end := matchingBrace(s, 1)
	assert.Equal(t, 7, end)
}

func TestMatchingBrace_Unterminated(t *testing.T) {
	s := "${never closes"
	end := matchingBrace(s, 1)
	assert.Equal(t, 1, end)
}

func TestUnquote_DoubleQuoted(t *testing.T) {
	v, ok := unquote(`"hello"`)
	require.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestUnquote_SingleQuoted(t *testing.T) {
	v, ok := unquote(`'hello'`)
	require.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestUnquote_Escapes(t *testing.T) {
	v, ok := unquote(`"line\nbreak\ttab\"quote\\slash"`)
	require.True(t, ok)
	assert.Equal(t, "line\nbreak\ttab\"quote\\slash", v)
}

func TestUnquote_NotQuoted(t *testing.T) {
	v, ok := unquote("bare")
	assert.False(t, ok)
	assert.Equal(t, "bare", v)
}

func TestUnquote_MismatchedQuotes(t *testing.T) {
	_, ok := unquote(`"half'`)
	assert.False(t, ok)
}

func TestParseArgToken_Bare(t *testing.T) {
	tok := parseArgToken("  value  ")
	assert.False(t, tok.isRegex)
	assert.Equal(t, "value", tok.str)
}

func TestParseArgToken_Quoted(t *testing.T) {
	tok := parseArgToken(`"a, b"`)
	assert.Equal(t, "a, b", tok.str)
}

func TestParseArgToken_Regex(t *testing.T) {
	tok := parseArgToken(`/\d+/gi`)
	require.True(t, tok.isRegex)
	assert.Equal(t, `\d+`, tok.pattern)
	assert.Equal(t, "gi", tok.flags)
}

func TestParseArgToken_RegexEscapedSlash(t *testing.T) {
	tok := parseArgToken(`/a\/b/i`)
	require.True(t, tok.isRegex)
	assert.Equal(t, `a\/b`, tok.pattern)
	assert.Equal(t, "i", tok.flags)
}

func TestTokenizeArgs_SingleBare(t *testing.T) {
	args := tokenizeArgs("value")
	require.Len(t, args.positional, 1)
	assert.Equal(t, "value", args.positional[0].str)
	assert.Empty(t, args.keyed)
}

func TestTokenizeArgs_PositionalGroup(t *testing.T) {
	args := tokenizeArgs(`("a","b")`)
	require.Len(t, args.positional, 2)
	assert.Equal(t, "a", args.positional[0].str)
	assert.Equal(t, "b", args.positional[1].str)
}

func TestTokenizeArgs_KeyedGroup(t *testing.T) {
	args := tokenizeArgs(`("k1":"v1","k2":"v2")`)
	assert.Empty(t, args.positional)
	assert.Equal(t, []string{"k1", "k2"}, args.keyOrder)
	assert.Equal(t, "v1", args.keyed["k1"].str)
	assert.Equal(t, "v2", args.keyed["k2"].str)
}

func TestTokenizeArgs_CommaInsideQuotesNotSplit(t *testing.T) {
	args := tokenizeArgs(`(", ","-")`)
	require.Len(t, args.positional, 2)
	assert.Equal(t, ", ", args.positional[0].str)
	assert.Equal(t, "-", args.positional[1].str)
}

func TestTokenizeArgs_Empty(t *testing.T) {
	args := tokenizeArgs("")
	assert.Empty(t, args.positional)
	assert.Empty(t, args.keyed)
}

func TestTokenizeArgs_EmptyGroup(t *testing.T) {
	args := tokenizeArgs("()")
	assert.Empty(t, args.positional)
	assert.Empty(t, args.keyed)
}

func TestSplitKeyValue_RequiresQuotedKey(t *testing.T) {
	_, _, ok := splitKeyValue("bare:value")
	assert.False(t, ok)

	key, val, ok := splitKeyValue(`"search":"replacement"`)
	require.True(t, ok)
	assert.Equal(t, "search", key)
	assert.Equal(t, `"replacement"`, val)
}

func TestSplitKeyValue_ValueWithColons(t *testing.T) {
	key, val, ok := splitKeyValue(`"when":"15:04:05"`)
	require.True(t, ok)
	assert.Equal(t, "when", key)
	assert.Equal(t, `"15:04:05"`, val)
}
