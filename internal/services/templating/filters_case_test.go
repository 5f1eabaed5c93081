package templating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/inkwell/internal/models"
)

func TestFilterUpper(t *testing.T) {
	v := runFilter(t, "upper", models.NewString("hello"), "")
	assert.Equal(t, "HELLO", v.String())
}

func TestFilterLower(t *testing.T) {
	v := runFilter(t, "lower", models.NewString("HELLO"), "")
	assert.Equal(t, "hello", v.String())
}

func TestFilterTrim(t *testing.T) {
	v := runFilter(t, "trim", models.NewString("  hello  "), "")
	assert.Equal(t, "hello", v.String())
}

func TestFilterCapitalize(t *testing.T) {
	v := runFilter(t, "capitalize", models.NewString("hello world"), "")
	assert.Equal(t, "Hello world", v.String())
}

func TestFilterCamel(t *testing.T) {
	v := runFilter(t, "camel", models.NewString("hello_world"), "")
	assert.Equal(t, "helloWorld", v.String())
}

func TestFilterPascal(t *testing.T) {
	v := runFilter(t, "pascal", models.NewString("hello-world"), "")
	assert.Equal(t, "HelloWorld", v.String())
}

func TestFilterSnake(t *testing.T) {
	v := runFilter(t, "snake", models.NewString("HelloWorld"), "")
	assert.Equal(t, "hello_world", v.String())
}

func TestFilterKebab(t *testing.T) {
	v := runFilter(t, "kebab", models.NewString("HelloWorld"), "")
	assert.Equal(t, "hello-world", v.String())
}

func TestFilterTitle(t *testing.T) {
	v := runFilter(t, "title", models.NewString("hello_world"), "")
	assert.Equal(t, "Hello World", v.String())
}

func TestFilterUncamel(t *testing.T) {
	v := runFilter(t, "uncamel", models.NewString("helloWorld"), "")
	assert.Equal(t, "hello world", v.String())
}

func TestStringFilter_NonStringPassesThrough(t *testing.T) {
	v := runFilter(t, "upper", models.NewJSON([]interface{}{"a"}), "")
	assert.Equal(t, models.KindJSON, v.Kind)
}

func TestCapitalize_EmptyString(t *testing.T) {
	assert.Equal(t, "", capitalize(""))
}

func TestSplitWords_MixedCaseAndSeparators(t *testing.T) {
	words := splitWords("HTTPServer_name-test")
	assert.Contains(t, words, "name")
	assert.Contains(t, words, "test")
}
