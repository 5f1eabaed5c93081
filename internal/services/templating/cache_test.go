package templating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/inkwell/internal/models"
)

func TestPageFingerprint_StableForEquivalentPages(t *testing.T) {
	page1 := newTestPage(t, func(p *models.PageContextParams) { p.ContentHTML = "<p>Hi</p>" })
	page2 := newTestPage(t, func(p *models.PageContextParams) { p.ContentHTML = "<p>Hi</p>" })
	assert.Equal(t, pageFingerprint(page1), pageFingerprint(page2))
}

func TestPageFingerprint_DiffersOnContentChange(t *testing.T) {
	page1 := newTestPage(t, func(p *models.PageContextParams) { p.ContentHTML = "<p>Hi</p>" })
	page2 := newTestPage(t, func(p *models.PageContextParams) { p.ContentHTML = "<p>Bye</p>" })
	assert.NotEqual(t, pageFingerprint(page1), pageFingerprint(page2))
}

func TestPageFingerprint_DiffersOnAuthorChange(t *testing.T) {
	page1 := newTestPage(t, func(p *models.PageContextParams) { p.Author = "Ann" })
	page2 := newTestPage(t, func(p *models.PageContextParams) { p.Author = "Bo" })
	assert.NotEqual(t, pageFingerprint(page1), pageFingerprint(page2))
}

func TestPageFingerprint_DiffersOnMetaChange(t *testing.T) {
	page1 := newTestPage(t, func(p *models.PageContextParams) {
		p.Meta = []models.MetaEntry{{AttrName: "property", AttrValue: "og:title", Content: "One"}}
	})
	page2 := newTestPage(t, func(p *models.PageContextParams) {
		p.Meta = []models.MetaEntry{{AttrName: "property", AttrValue: "og:title", Content: "Two"}}
	})
	assert.NotEqual(t, pageFingerprint(page1), pageFingerprint(page2))
}

func TestPageFingerprint_DiffersOnHighlightsChange(t *testing.T) {
	page1 := newTestPage(t, func(p *models.PageContextParams) {
		p.Highlights = []models.Highlight{{Text: "x"}}
	})
	page2 := newTestPage(t, func(p *models.PageContextParams) {
		p.Highlights = []models.Highlight{{Text: "y"}}
	})
	assert.NotEqual(t, pageFingerprint(page1), pageFingerprint(page2))
}

func TestCacheKey_DiffersByTemplate(t *testing.T) {
	page := newTestPage(t, nil)
	assert.NotEqual(t, cacheKey("a", page), cacheKey("b", page))
}

func TestCompiledCache_GetSetRoundTrip(t *testing.T) {
	cache, err := newCompiledCache(16, 0)
	require.NoError(t, err)
	defer cache.Close()

	result := RenderResult{Output: "hello"}
	cache.set("k1", result)

	got, ok := cache.get("k1")
	require.True(t, ok)
	assert.Equal(t, "hello", got.Output)
}

func TestCompiledCache_MissReturnsFalse(t *testing.T) {
	cache, err := newCompiledCache(16, 0)
	require.NoError(t, err)
	defer cache.Close()

	_, ok := cache.get("nonexistent")
	assert.False(t, ok)
}

func TestCompiledCache_NilCacheDegradesToMiss(t *testing.T) {
	var cache *compiledCache
	_, ok := cache.get("k")
	assert.False(t, ok)
	cache.set("k", RenderResult{Output: "x"})
}

func TestCompiledCache_TTLExpiry(t *testing.T) {
	cache, err := newCompiledCache(16, 10*time.Millisecond)
	require.NoError(t, err)
	defer cache.Close()

	cache.set("k1", RenderResult{Output: "hello"})
	time.Sleep(100 * time.Millisecond)

	_, ok := cache.get("k1")
	assert.False(t, ok)
}

func TestStartJanitor_ValidScheduleNoError(t *testing.T) {
	cache, err := newCompiledCache(16, 0)
	require.NoError(t, err)
	defer cache.Close()

	j, err := cache.StartJanitor("@every 1h", nil)
	require.NoError(t, err)
	assert.NotNil(t, j)
}
