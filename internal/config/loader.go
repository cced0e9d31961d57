package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dexit/pkg/logging"

	"gopkg.in/yaml.v3"
)

const manifestFileName = "dexit.yaml"

// Overrides carries CLI-flag values that should win over both the built-in
// defaults and the manifest when set. A nil pointer means "flag not passed".
type Overrides struct {
	TestsPath          *string
	BasePath           *string
	ModulesPath        *string
	LoadBuiltInModules *bool
	AutoloadModules    *bool
	IgnoreInvalidTests *bool
	Reporters          []string
	Debug              *bool
}

// Load resolves the final Config for a run: defaults, deep-merged with the
// `dexit:` key of the manifest at manifestPath (if it exists), deep-merged
// with CLI overrides. CLI wins on any key both sides set.
func Load(manifestPath string, overrides Overrides) (Config, error) {
	cfg := GetDefaultConfig()

	manifestData, err := os.ReadFile(manifestPath)
	switch {
	case err == nil:
		var manifest Manifest
		if err := yaml.Unmarshal(manifestData, &manifest); err != nil {
			return Config{}, fmt.Errorf("parsing manifest %s: %w", manifestPath, err)
		}
		logging.Info("Config", "loaded manifest from %s", manifestPath)
		cfg = mergeManifest(cfg, manifest.Dexit)
	case errors.Is(err, os.ErrNotExist):
		logging.Debug("Config", "no manifest at %s, using defaults", manifestPath)
	default:
		return Config{}, fmt.Errorf("reading manifest %s: %w", manifestPath, err)
	}

	cfg = applyOverrides(cfg, overrides)

	if cfg.BasePath == "" {
		cfg.BasePath = filepath.Dir(manifestPath)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultManifestPath returns the manifest path dexit looks for: dexit.yaml
// in the working directory.
func DefaultManifestPath() string {
	return manifestFileName
}

// mergeManifest overlays manifest-supplied fields onto the defaults. Only
// fields the manifest actually set (non-zero) take effect, so a manifest
// with a single key leaves every other default untouched.
func mergeManifest(base, manifest Config) Config {
	if manifest.TestsPath != "" {
		base.TestsPath = manifest.TestsPath
	}
	if manifest.BasePath != "" {
		base.BasePath = manifest.BasePath
	}
	if manifest.ModulesPath != "" {
		base.ModulesPath = manifest.ModulesPath
	}
	if len(manifest.Reporters) > 0 {
		base.Reporters = manifest.Reporters
	}
	base.LoadBuiltInModules = manifest.LoadBuiltInModules || base.LoadBuiltInModules
	base.AutoloadModules = manifest.AutoloadModules || base.AutoloadModules
	base.IgnoreInvalidTests = manifest.IgnoreInvalidTests || base.IgnoreInvalidTests
	base.Debug = manifest.Debug || base.Debug
	return base
}

func applyOverrides(base Config, o Overrides) Config {
	if o.TestsPath != nil {
		base.TestsPath = *o.TestsPath
	}
	if o.BasePath != nil {
		base.BasePath = *o.BasePath
	}
	if o.ModulesPath != nil {
		base.ModulesPath = *o.ModulesPath
	}
	if o.LoadBuiltInModules != nil {
		base.LoadBuiltInModules = *o.LoadBuiltInModules
	}
	if o.AutoloadModules != nil {
		base.AutoloadModules = *o.AutoloadModules
	}
	if o.IgnoreInvalidTests != nil {
		base.IgnoreInvalidTests = *o.IgnoreInvalidTests
	}
	if len(o.Reporters) > 0 {
		base.Reporters = o.Reporters
	}
	if o.Debug != nil {
		base.Debug = *o.Debug
	}
	return base
}
