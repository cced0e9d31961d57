package config

const (
	// DefaultTestsPath is where the CLI looks for test documents when no
	// positional argument is given.
	DefaultTestsPath = "tests"
)

// GetDefaultConfig returns the baseline configuration applied before a
// manifest or CLI flags are considered.
func GetDefaultConfig() Config {
	return Config{
		TestsPath:          DefaultTestsPath,
		LoadBuiltInModules: true,
		AutoloadModules:    true,
		IgnoreInvalidTests: false,
		Reporters:          []string{"console"},
		Debug:              false,
	}
}
