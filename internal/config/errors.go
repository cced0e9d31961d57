package config

import (
	"fmt"
	"strings"
)

// ConfigurationError represents a structured error encountered while
// loading or validating a manifest.
type ConfigurationError struct {
	FilePath string // path to the manifest file, empty for CLI-only errors
	Field    string // dotted config field path, e.g. "dexit.reporters"
	Message  string
	Details  string
}

func (ce ConfigurationError) Error() string {
	if ce.Field == "" {
		return ce.Message
	}
	return fmt.Sprintf("%s: %s", ce.Field, ce.Message)
}

// DetailedError returns a multi-line message including file path and details.
func (ce ConfigurationError) DetailedError() string {
	var parts []string
	if ce.FilePath != "" {
		parts = append(parts, fmt.Sprintf("Configuration error in %s:", ce.FilePath))
	} else {
		parts = append(parts, "Configuration error:")
	}
	parts = append(parts, "  "+ce.Error())
	if ce.Details != "" {
		parts = append(parts, "  "+ce.Details)
	}
	return strings.Join(parts, "\n")
}

// ConfigurationErrorCollection holds multiple configuration errors
// accumulated while loading and validating a manifest.
type ConfigurationErrorCollection struct {
	Errors []ConfigurationError
}

func (cec ConfigurationErrorCollection) Error() string {
	if len(cec.Errors) == 0 {
		return "no configuration errors"
	}
	if len(cec.Errors) == 1 {
		return cec.Errors[0].Error()
	}
	return fmt.Sprintf("%d configuration errors: %s (and %d more)",
		len(cec.Errors), cec.Errors[0].Error(), len(cec.Errors)-1)
}

func (cec *ConfigurationErrorCollection) HasErrors() bool {
	return len(cec.Errors) > 0
}

func (cec *ConfigurationErrorCollection) Add(err ConfigurationError) {
	cec.Errors = append(cec.Errors, err)
}

func NewConfigurationErrorCollection() *ConfigurationErrorCollection {
	return &ConfigurationErrorCollection{Errors: make([]ConfigurationError, 0)}
}
