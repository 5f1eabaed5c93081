package templating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSchemaIndex_TypedLookup(t *testing.T) {
	blobs := []string{
		`{"@type":"Article","headline":"Hello World","author":{"name":"Jane"}}`,
	}
	idx := buildSchemaIndex(blobs, nil)

	v, ok := idx.queryTyped("Article", "headline")
	assert.True(t, ok)
	assert.Equal(t, "Hello World", v)
}

func TestBuildSchemaIndex_TypedArray(t *testing.T) {
	blobs := []string{
		`{"@type":["Article","NewsArticle"],"headline":"Hi"}`,
	}
	idx := buildSchemaIndex(blobs, nil)

	v, ok := idx.queryTyped("NewsArticle", "headline")
	assert.True(t, ok)
	assert.Equal(t, "Hi", v)
}

func TestBuildSchemaIndex_NestedObjects(t *testing.T) {
	blobs := []string{
		`{"@type":"Article","author":{"@type":"Person","name":"Jane"}}`,
	}
	idx := buildSchemaIndex(blobs, nil)

	v, ok := idx.queryTyped("Person", "name")
	assert.True(t, ok)
	assert.Equal(t, "Jane", v)
}

func TestBuildSchemaIndex_MalformedBlobIgnored(t *testing.T) {
	blobs := []string{
		`not json`,
		`{"@type":"Article","headline":"Still works"}`,
	}
	idx := buildSchemaIndex(blobs, nil)

	v, ok := idx.queryTyped("Article", "headline")
	assert.True(t, ok)
	assert.Equal(t, "Still works", v)
}

func TestQueryTyped_UnknownType(t *testing.T) {
	idx := buildSchemaIndex([]string{`{"@type":"Article","headline":"Hi"}`}, nil)
	_, ok := idx.queryTyped("Recipe", "headline")
	assert.False(t, ok)
}

func TestQueryShorthand_FirstMatch(t *testing.T) {
	blobs := []string{
		`{"@type":"Article","headline":"Article Headline"}`,
		`{"@type":"WebPage","headline":"Page Headline"}`,
	}
	idx := buildSchemaIndex(blobs, nil)

	v, ok := idx.queryShorthand("headline")
	assert.True(t, ok)
	assert.Equal(t, "Article Headline", v)
}

func TestQueryShorthand_NoMatch(t *testing.T) {
	idx := buildSchemaIndex([]string{`{"@type":"Article","headline":"Hi"}`}, nil)
	_, ok := idx.queryShorthand("nonexistent")
	assert.False(t, ok)
}

func TestCoerceList_NumberedList(t *testing.T) {
	input := "1. First item\n2. Second item\n3. Third item"
	got := coerceList(input)
	arr, ok := got.([]interface{})
	assert.True(t, ok)
	assert.Equal(t, []interface{}{"First item", "Second item", "Third item"}, arr)
}

func TestCoerceList_BulletedList(t *testing.T) {
	input := "- apples\n- oranges"
	got := coerceList(input)
	arr, ok := got.([]interface{})
	assert.True(t, ok)
	assert.Equal(t, []interface{}{"apples", "oranges"}, arr)
}

func TestCoerceList_StarBulleted(t *testing.T) {
	input := "* first\n* second"
	got := coerceList(input)
	arr, ok := got.([]interface{})
	assert.True(t, ok)
	assert.Equal(t, []interface{}{"first", "second"}, arr)
}

func TestCoerceList_PlainTextUntouched(t *testing.T) {
	input := "just a plain sentence"
	got := coerceList(input)
	assert.Equal(t, input, got)
}

func TestCoerceList_NonStringUntouched(t *testing.T) {
	input := []interface{}{"already", "an", "array"}
	got := coerceList(input)
	assert.Equal(t, input, got)
}

func TestCoerceList_SkipsBlankLines(t *testing.T) {
	input := "1. First\n\n2. Second"
	got := coerceList(input)
	arr, ok := got.([]interface{})
	assert.True(t, ok)
	assert.Equal(t, []interface{}{"First", "Second"}, arr)
}
