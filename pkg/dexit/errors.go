package dexit

import (
	"fmt"
	"strings"
)

// AssertionError is returned (never panicked) by a command's ValidateArgs,
// ValidateExpect, or Expect hook.
type AssertionError struct {
	Message  string
	Expected interface{}
	Actual   interface{}
}

func (e AssertionError) Error() string {
	if e.Expected == nil && e.Actual == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (expected %v, got %v)", e.Message, e.Expected, e.Actual)
}

// ValidationError is a grammar or reference error surfaced while loading
// documents into the Repository: a duplicate set name, an unresolved `do`
// identifier, a schema violation, a dangling `runBeforeAsync` target.
type ValidationError struct {
	// ID is the fully-qualified test-set or task id the error is attached
	// to, empty when the error predates namespace resolution (e.g. a raw
	// schema failure).
	ID      string
	Path    string // source file the offending document came from
	Message string
	// SchemaErrors holds nested JSON-schema validator messages, when the
	// error came from composed-schema validation.
	SchemaErrors []string
}

func (e ValidationError) Error() string {
	var b strings.Builder
	if e.ID != "" {
		b.WriteString(e.ID)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Path != "" {
		fmt.Fprintf(&b, " (%s)", e.Path)
	}
	if len(e.SchemaErrors) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.SchemaErrors, "; "))
	}
	return b.String()
}

// ValidationErrorCollection accumulates ValidationErrors across a whole
// document load.
type ValidationErrorCollection struct {
	Errors []ValidationError
}

func (c ValidationErrorCollection) Error() string {
	if len(c.Errors) == 0 {
		return "no validation errors"
	}
	if len(c.Errors) == 1 {
		return c.Errors[0].Error()
	}
	msgs := make([]string, len(c.Errors))
	for i, e := range c.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d validation errors:\n  %s", len(c.Errors), strings.Join(msgs, "\n  "))
}

func (c *ValidationErrorCollection) Add(err ValidationError) {
	c.Errors = append(c.Errors, err)
}

func (c *ValidationErrorCollection) HasErrors() bool {
	return len(c.Errors) > 0
}
