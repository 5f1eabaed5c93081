package templating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanMustache_SingleExpression(t *testing.T) {
	out := scanMustache("Hello {{name}}!", func(raw string) (string, bool) {
		assert.Equal(t, "name", raw)
		return "World", true
	})
	assert.Equal(t, "Hello World!", out)
}

func TestScanMustache_MultipleExpressions(t *testing.T) {
	calls := 0
	out := scanMustache("{{a}} and {{b}}", func(raw string) (string, bool) {
		calls++
		return "X", true
	})
	assert.Equal(t, 2, calls)
	assert.Equal(t, "X and X", out)
}

func TestScanMustache_NoMatchLeavesOriginal(t *testing.T) {
	out := scanMustache("{{unknown}}", func(raw string) (string, bool) {
		return "", false
	})
	assert.Equal(t, "{{unknown}}", out)
}

func TestScanMustache_UnterminatedBraceCopiedLiterally(t *testing.T) {
	out := scanMustache("prefix {{never closed", func(raw string) (string, bool) {
		t.Fatal("handle should not be called for an unterminated span")
		return "", false
	})
	assert.Equal(t, "prefix {{never closed", out)
}

func TestScanMustache_NoBraces(t *testing.T) {
	out := scanMustache("plain text", func(raw string) (string, bool) {
		t.Fatal("handle should not be called")
		return "", false
	})
	assert.Equal(t, "plain text", out)
}

func TestScanMustache_EmptyInner(t *testing.T) {
	out := scanMustache("{{}}", func(raw string) (string, bool) {
		assert.Equal(t, "", raw)
		return "filled", true
	})
	assert.Equal(t, "filled", out)
}
