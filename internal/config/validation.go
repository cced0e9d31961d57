package config

import "fmt"

// knownReporters is the set of reporter names the CLI ships with. Module
// authors cannot register additional reporter names, so this list is fixed.
var knownReporters = map[string]bool{
	"console": true,
	"json":    true,
	"table":   true,
	"live":    true,
}

// Validate checks a fully-merged Config for values that parsed successfully
// but are not usable, such as an unknown reporter name.
func (c Config) Validate() error {
	errs := NewConfigurationErrorCollection()

	if c.TestsPath == "" {
		errs.Add(ConfigurationError{Field: "dexit.testsPath", Message: "must not be empty"})
	}

	for _, r := range c.Reporters {
		if !knownReporters[r] {
			errs.Add(ConfigurationError{
				Field:   "dexit.reporters",
				Message: fmt.Sprintf("unknown reporter %q", r),
				Details: "known reporters: console, json, table, live",
			})
		}
	}

	if errs.HasErrors() {
		return *errs
	}
	return nil
}
