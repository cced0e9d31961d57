package config

// Config is the top-level run configuration for dexit. It is assembled by
// deep-merging the `dexit:` key of a project manifest (if present) with
// CLI-supplied overrides, CLI winning on any key both sides set.
type Config struct {
	// TestsPath is the directory to load test documents from.
	TestsPath string `yaml:"testsPath,omitempty"`
	// BasePath resolves relative module paths and fixture references; defaults
	// to the directory containing the manifest, or the working directory.
	BasePath string `yaml:"basePath,omitempty"`
	// ModulesPath is a directory of additional modules to autoload, beyond
	// the built-in core module.
	ModulesPath string `yaml:"modulesPath,omitempty"`
	// LoadBuiltInModules controls whether the core module (core.sleep,
	// core.echo, core.fail) is registered automatically.
	LoadBuiltInModules bool `yaml:"loadBuiltInModules"`
	// AutoloadModules controls whether ModulesPath is scanned automatically.
	AutoloadModules bool `yaml:"autoloadModules"`
	// IgnoreInvalidTests, when true, drops test sets that fail validation
	// instead of aborting the whole run.
	IgnoreInvalidTests bool `yaml:"ignoreInvalidTests"`
	// Reporters lists the reporter names to broadcast results to, e.g.
	// ["console", "json"]. Defaults to ["console"].
	Reporters []string `yaml:"reporters,omitempty"`
	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`
}

// Manifest is the shape of a project manifest file: a document that may
// carry other top-level keys but whose `dexit:` key is ours to read.
type Manifest struct {
	Dexit Config `yaml:"dexit"`
}
