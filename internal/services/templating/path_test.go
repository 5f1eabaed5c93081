package templating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePath_SimpleProperty(t *testing.T) {
	steps := parsePath("name")
	assert.Len(t, steps, 1)
	assert.Equal(t, stepProperty, steps[0].kind)
	assert.Equal(t, "name", steps[0].name)
}

func TestParsePath_NestedProperties(t *testing.T) {
	steps := parsePath("author.name")
	assert.Len(t, steps, 2)
	assert.Equal(t, "author", steps[0].name)
	assert.Equal(t, "name", steps[1].name)
}

func TestParsePath_Index(t *testing.T) {
	steps := parsePath("items[0]")
	assert.Len(t, steps, 2)
	assert.Equal(t, stepIndex, steps[1].kind)
	assert.Equal(t, 0, steps[1].index)
}

func TestParsePath_Splat(t *testing.T) {
	steps := parsePath("items[*].name")
	assert.Len(t, steps, 3)
	assert.Equal(t, stepSplat, steps[1].kind)
	assert.Equal(t, "name", steps[2].name)
}

func TestResolvePath_Property(t *testing.T) {
	v := map[string]interface{}{"title": "Hello"}
	got, ok := resolvePath(v, "title")
	assert.True(t, ok)
	assert.Equal(t, "Hello", got)
}

func TestResolvePath_MissingProperty(t *testing.T) {
	v := map[string]interface{}{"title": "Hello"}
	_, ok := resolvePath(v, "subtitle")
	assert.False(t, ok)
}

func TestResolvePath_NestedIndex(t *testing.T) {
	v := map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"name": "first"},
			map[string]interface{}{"name": "second"},
		},
	}
	got, ok := resolvePath(v, "items[1].name")
	assert.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestResolvePath_IndexOutOfRange(t *testing.T) {
	v := map[string]interface{}{"items": []interface{}{"a"}}
	_, ok := resolvePath(v, "items[5]")
	assert.False(t, ok)
}

func TestResolvePath_Splat(t *testing.T) {
	v := map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"name": "first"},
			map[string]interface{}{"name": "second"},
		},
	}
	got, ok := resolvePath(v, "items[*].name")
	assert.True(t, ok)
	arr, ok := got.([]interface{})
	assert.True(t, ok)
	assert.Equal(t, []interface{}{"first", "second"}, arr)
}

func TestResolvePath_SplatWithMissingField(t *testing.T) {
	v := map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"name": "first"},
			map[string]interface{}{"other": "x"},
		},
	}
	got, ok := resolvePath(v, "items[*].name")
	assert.True(t, ok)
	arr, ok := got.([]interface{})
	assert.True(t, ok)
	assert.Equal(t, []interface{}{"first", nil}, arr)
}

func TestResolvePath_AutoParsesStringifiedJSON(t *testing.T) {
	v := map[string]interface{}{"payload": `{"inner":"value"}`}
	got, ok := resolvePath(v, "payload.inner")
	assert.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestResolvePath_WrongStepKindOnScalar(t *testing.T) {
	v := map[string]interface{}{"name": "scalar"}
	_, ok := resolvePath(v, "name.sub")
	assert.False(t, ok)
}

func TestAutoParse_PlainStringUnchanged(t *testing.T) {
	assert.Equal(t, "hello", autoParse("hello"))
}

func TestAutoParse_NonStringUnchanged(t *testing.T) {
	assert.Equal(t, 5, autoParse(5))
}
