package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewString(t *testing.T) {
	v := NewString("hello")
	assert.Equal(t, KindString, v.Kind)
	assert.Equal(t, "hello", v.Str)
	assert.Equal(t, "hello", v.String())
}

func TestNewJSON(t *testing.T) {
	v := NewJSON([]interface{}{"a", "b"})
	assert.Equal(t, KindJSON, v.Kind)
	assert.Equal(t, `["a","b"]`, v.String())
}

func TestUpgrade_ArrayString(t *testing.T) {
	v := NewString(`["a","b","c"]`)
	up := v.Upgrade()
	assert.Equal(t, KindJSON, up.Kind)
	arr, ok := up.JSON.([]interface{})
	assert.True(t, ok)
	assert.Len(t, arr, 3)
}

func TestUpgrade_ObjectString(t *testing.T) {
	v := NewString(`{"a":1}`)
	up := v.Upgrade()
	assert.Equal(t, KindJSON, up.Kind)
	obj, ok := up.JSON.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(1), obj["a"])
}

func TestUpgrade_ScalarStaysString(t *testing.T) {
	cases := []string{"42", `"quoted"`, "plain text", "true"}
	for _, c := range cases {
		v := NewString(c)
		up := v.Upgrade()
		assert.Equal(t, KindString, up.Kind)
		assert.Equal(t, c, up.Str)
	}
}

func TestUpgrade_EmptyString(t *testing.T) {
	v := NewString("")
	up := v.Upgrade()
	assert.Equal(t, KindString, up.Kind)
}

func TestUpgrade_MalformedJSONStaysString(t *testing.T) {
	v := NewString(`[1, 2,`)
	up := v.Upgrade()
	assert.Equal(t, KindString, up.Kind)
}

func TestUpgrade_AlreadyJSONNoOp(t *testing.T) {
	v := NewJSON(map[string]interface{}{"k": "v"})
	up := v.Upgrade()
	assert.Equal(t, v, up)
}

func TestString_JSONNil(t *testing.T) {
	v := NewJSON(nil)
	assert.Equal(t, "", v.String())
}

func TestAsArray_True(t *testing.T) {
	v := NewJSON([]interface{}{1, 2, 3})
	arr, ok := v.AsArray()
	assert.True(t, ok)
	assert.Len(t, arr, 3)
}

func TestAsArray_StringUpgrades(t *testing.T) {
	v := NewString(`[1,2]`)
	arr, ok := v.AsArray()
	assert.True(t, ok)
	assert.Len(t, arr, 2)
}

func TestAsArray_ObjectIsNotArray(t *testing.T) {
	v := NewJSON(map[string]interface{}{"a": 1})
	_, ok := v.AsArray()
	assert.False(t, ok)
}

func TestAsObject_True(t *testing.T) {
	v := NewJSON(map[string]interface{}{"a": float64(1)})
	obj, ok := v.AsObject()
	assert.True(t, ok)
	assert.Equal(t, float64(1), obj["a"])
}

func TestAsObject_ArrayIsNotObject(t *testing.T) {
	v := NewJSON([]interface{}{1, 2})
	_, ok := v.AsObject()
	assert.False(t, ok)
}
