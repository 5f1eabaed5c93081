package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageContext_RequiresURL(t *testing.T) {
	_, err := NewPageContext(PageContextParams{})
	require.Error(t, err)
}

func TestNewPageContext_RequiresValidURL(t *testing.T) {
	_, err := NewPageContext(PageContextParams{URL: "not a url"})
	require.Error(t, err)
}

func TestNewPageContext_MinimalValid(t *testing.T) {
	page, err := NewPageContext(PageContextParams{URL: "https://example.com/article"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/article", page.URL)
	assert.Equal(t, "https://example.com/article", page.NoteName)
}

func TestNewPageContext_NoteNamePrefersTitle(t *testing.T) {
	page, err := NewPageContext(PageContextParams{
		URL:   "https://example.com/article",
		Title: "A Great Article",
	})
	require.NoError(t, err)
	assert.Equal(t, "A Great Article", page.NoteName)
}

func TestNewPageContext_StripsTextFragment(t *testing.T) {
	page, err := NewPageContext(PageContextParams{
		URL: "https://example.com/article#:~:text=some%20text",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/article", page.URL)
}

func TestNewPageContext_KeepsOrdinaryFragment(t *testing.T) {
	page, err := NewPageContext(PageContextParams{
		URL: "https://example.com/article#section-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/article#section-2", page.URL)
}

func TestNewPageContext_DerivesPublishedParts(t *testing.T) {
	page, err := NewPageContext(PageContextParams{
		URL:       "https://example.com/article",
		Published: "2024-03-15T09:30:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", page.Date)
	assert.Equal(t, "09:30:00", page.Time)
}

func TestNewPageContext_PublishedDateOnly(t *testing.T) {
	page, err := NewPageContext(PageContextParams{
		URL:       "https://example.com/article",
		Published: "2024-03-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", page.Date)
	assert.Equal(t, "", page.Time)
}

func TestNewPageContext_UnparsablePublishedPassesThrough(t *testing.T) {
	page, err := NewPageContext(PageContextParams{
		URL:       "https://example.com/article",
		Published: "sometime last week",
	})
	require.NoError(t, err)
	assert.Equal(t, "sometime last week", page.Date)
	assert.Equal(t, "", page.Time)
}

func TestNewPageContext_CarriesContentAndSelection(t *testing.T) {
	page, err := NewPageContext(PageContextParams{
		URL:           "https://example.com/article",
		ContentHTML:   "<p>body</p>",
		SelectionHTML: "<p>selected</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "<p>body</p>", page.Content)
	assert.Equal(t, "<p>selected</p>", page.Selection)
}

func TestWordsString(t *testing.T) {
	page, err := NewPageContext(PageContextParams{URL: "https://example.com/a", Words: 742})
	require.NoError(t, err)
	assert.Equal(t, "742", page.WordsString())
}

func TestWordsString_NilPage(t *testing.T) {
	var page *PageContext
	assert.Equal(t, "", page.WordsString())
}

func TestStripTextFragment_Idempotent(t *testing.T) {
	once := StripTextFragment("https://example.com/a#:~:text=hi")
	twice := StripTextFragment(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, "https://example.com/a", once)
}

func TestStripTextFragment_NoFragment(t *testing.T) {
	assert.Equal(t, "https://example.com/a", StripTextFragment("https://example.com/a"))
}
