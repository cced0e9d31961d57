package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_ExactTokenPreservesType(t *testing.T) {
	p := New()
	data := map[string]interface{}{"x": 42}

	result := p.Resolve(data, "${x}")

	assert.Equal(t, 42, result)
}

func TestResolve_MixedTextCoercesToString(t *testing.T) {
	p := New()
	data := map[string]interface{}{"name": "primary"}

	result := p.Resolve(data, "hello ${name}!")

	assert.Equal(t, "hello primary!", result)
}

func TestResolve_NestedPath(t *testing.T) {
	p := New()
	data := map[string]interface{}{
		"body": map[string]interface{}{"token": "xyz"},
	}

	result := p.Resolve(data, "${body.token}")

	assert.Equal(t, "xyz", result)
}

func TestResolve_UnresolvedPathIsNullInExactTokenContext(t *testing.T) {
	p := New()
	data := map[string]interface{}{}

	result := p.Resolve(data, "${missing}")

	assert.Nil(t, result)
}

func TestResolve_UnresolvedPathIsEmptyStringInMixedContext(t *testing.T) {
	p := New()
	data := map[string]interface{}{}

	result := p.Resolve(data, "value: ${missing}")

	assert.Equal(t, "value: ", result)
}

func TestResolve_NoTokensReturnsEqualValue(t *testing.T) {
	p := New()
	data := map[string]interface{}{"x": 1}

	result := p.Resolve(data, "plain string")

	assert.Equal(t, "plain string", result)
}

func TestResolve_MapResolvesValueWisePreservingKeys(t *testing.T) {
	p := New()
	data := map[string]interface{}{"token": "xyz"}

	input := map[string]interface{}{
		"auth":  "${token}",
		"other": "unchanged",
	}
	result := p.Resolve(data, input).(map[string]interface{})

	assert.Equal(t, "xyz", result["auth"])
	assert.Equal(t, "unchanged", result["other"])
}

func TestResolve_SliceResolvesElementWisePreservingOrder(t *testing.T) {
	p := New()
	data := map[string]interface{}{"a": "1", "b": "2"}

	input := []interface{}{"${a}", "${b}", "literal"}
	result := p.Resolve(data, input).([]interface{})

	assert.Equal(t, []interface{}{"1", "2", "literal"}, result)
}

func TestResolve_MultipleTokensInOneString(t *testing.T) {
	p := New()
	data := map[string]interface{}{"first": "Jane", "last": "Doe"}

	result := p.Resolve(data, "${first} ${last}")

	assert.Equal(t, "Jane Doe", result)
}
