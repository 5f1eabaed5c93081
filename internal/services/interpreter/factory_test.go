package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestDetectProvider_ExplicitPrefix(t *testing.T) {
	assert.Equal(t, "claude", detectProvider("claude/claude-sonnet-4-20250514", ""))
	assert.Equal(t, "claude", detectProvider("anthropic/claude-sonnet-4-20250514", ""))
	assert.Equal(t, "gemini", detectProvider("gemini/gemini-2.5-flash", ""))
	assert.Equal(t, "gemini", detectProvider("google/gemini-2.5-flash", ""))
}

func TestDetectProvider_BareModelName(t *testing.T) {
	assert.Equal(t, "claude", detectProvider("claude-sonnet-4-20250514", ""))
	assert.Equal(t, "gemini", detectProvider("gemini-2.5-flash", ""))
}

func TestDetectProvider_CaseInsensitive(t *testing.T) {
	assert.Equal(t, "claude", detectProvider("Claude/Claude-Sonnet-4", ""))
}

func TestDetectProvider_EmptyModelUsesDefault(t *testing.T) {
	assert.Equal(t, "gemini", detectProvider("", "gemini"))
	assert.Equal(t, "", detectProvider("", ""))
}

func TestDetectProvider_UnrecognizedModelUsesDefault(t *testing.T) {
	assert.Equal(t, "claude", detectProvider("some-local-model", "claude"))
}

func TestNormalizeModel_StripsPrefix(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", normalizeModel("claude/claude-sonnet-4-20250514"))
	assert.Equal(t, "gemini-2.5-flash", normalizeModel("gemini/gemini-2.5-flash"))
}

func TestNormalizeModel_BareNameUnchanged(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", normalizeModel("claude-sonnet-4-20250514"))
	assert.Equal(t, "", normalizeModel(""))
}

func TestNewRequestLimiter_ZeroUsesDefault(t *testing.T) {
	l := newRequestLimiter(0)
	assert.Equal(t, rate.Limit(defaultRequestsPerSecond), l.Limit())
}

func TestNewRequestLimiter_CustomRate(t *testing.T) {
	l := newRequestLimiter(7)
	assert.Equal(t, rate.Limit(7), l.Limit())
}
