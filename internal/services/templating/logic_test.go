package templating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandLogic_NoBlockReturnsUnchanged(t *testing.T) {
	rc := &renderContext{vars: map[string]string{}}
	out := expandLogic("plain text, no blocks here", rc)
	assert.Equal(t, "plain text, no blocks here", out)
}

func TestExpandLogic_SimpleForOverVariable(t *testing.T) {
	rc := &renderContext{vars: map[string]string{"items": `["a","b","c"]`}}
	out := expandLogic("{% for item in items %}[{{item}}]{% endfor %}", rc)
	assert.Equal(t, "[a][b][c]", out)
}

func TestExpandLogic_EmptyArrayExpandsToNothing(t *testing.T) {
	rc := &renderContext{vars: map[string]string{"items": `[]`}}
	out := expandLogic("before{% for item in items %}[{{item}}]{% endfor %}after", rc)
	assert.Equal(t, "beforeafter", out)
}

func TestExpandLogic_NonArraySourceExpandsToEmpty(t *testing.T) {
	rc := &renderContext{vars: map[string]string{"items": "not an array"}}
	out := expandLogic("before{% for item in items %}[{{item}}]{% endfor %}after", rc)
	assert.Equal(t, "beforeafter", out)
}

func TestExpandLogic_SurroundingTextPreserved(t *testing.T) {
	rc := &renderContext{vars: map[string]string{"items": `["x"]`}}
	out := expandLogic("Start {% for item in items %}mid {{item}} {% endfor %}End", rc)
	assert.Equal(t, "Start mid x End", out)
}

func TestExpandLogic_NestedForBlocks(t *testing.T) {
	rc := &renderContext{vars: map[string]string{
		"groups": `["g1","g2"]`,
		"items":  `["a","b"]`,
	}}
	out := expandLogic(
		"{% for group in groups %}({{group}}:{% for item in items %}{{item}}{% endfor %}){% endfor %}",
		rc,
	)
	assert.Equal(t, "(g1:ab)(g2:ab)", out)
}

func TestExpandLogic_ObjectElementsWithPathRef(t *testing.T) {
	rc := &renderContext{vars: map[string]string{
		"items": `[{"name":"first"},{"name":"second"}]`,
	}}
	out := expandLogic("{% for item in items %}{{item.name}};{% endfor %}", rc)
	assert.Equal(t, "first;second;", out)
}

func TestExpandLogic_UnterminatedBlockLeftLiteral(t *testing.T) {
	rc := &renderContext{vars: map[string]string{"items": `["a"]`}}
	out := expandLogic("{% for item in items %}no end here", rc)
	assert.Equal(t, "{% for item in items %}no end here", out)
}

func TestSubstituteNameRefs_OnlyBindsMatchingName(t *testing.T) {
	iterRC := &renderContext{vars: map[string]string{"item": "bound", "other": "untouched"}}
	out := substituteNameRefs("{{item}} and {{other}}", "item", iterRC)
	assert.Equal(t, "bound and {{other}}", out)
}
