package dexit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorCollection_SingleError(t *testing.T) {
	c := ValidationErrorCollection{}
	c.Add(ValidationError{ID: "$.api", Message: "duplicate test set name"})

	assert.True(t, c.HasErrors())
	assert.Equal(t, "$.api: duplicate test set name", c.Error())
}

func TestValidationErrorCollection_MultipleErrorsSummarized(t *testing.T) {
	c := ValidationErrorCollection{}
	c.Add(ValidationError{ID: "$.api", Message: "duplicate test set name"})
	c.Add(ValidationError{ID: "$.api.auth", Message: "unknown command foo.bar"})

	assert.Contains(t, c.Error(), "2 validation errors")
}

func TestAssertionError_ErrorMessage(t *testing.T) {
	err := AssertionError{Message: "status mismatch", Expected: 200, Actual: 404}
	assert.Equal(t, "status mismatch (expected 200, got 404)", err.Error())
}

func TestAssertionError_MessageOnlyWhenNoExpectedActual(t *testing.T) {
	err := AssertionError{Message: "missing field"}
	assert.Equal(t, "missing field", err.Error())
}
