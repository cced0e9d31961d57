package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"plugin"

	"dexit/pkg/dexit"
	"dexit/pkg/logging"
)

// manifest is the per-package descriptor LoadFromPath looks for. Only
// packages whose manifest sets DexitModule true are eligible for loading.
type manifest struct {
	DexitModule bool   `json:"dexitModule"`
	Entry       string `json:"entry"`
}

const manifestFileName = "module.json"

// ModuleSymbol is the exported symbol each module plugin must provide: a
// zero-argument constructor returning the module to register.
const ModuleSymbol = "DexitModule"

// LoadFromPath enumerates immediate subdirectories of path, loading and
// registering the ones whose module.json marks them as a dexit module.
// A package is a Go plugin (built with `go build -buildmode=plugin`)
// exposing a `DexitModule func() *dexit.Module` symbol. Failures are
// fatal: the first one aborts the scan.
func (r *Registry) LoadFromPath(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debug("Registry", "modules path %s does not exist, nothing to autoload", path)
			return nil
		}
		return fmt.Errorf("reading modules path %s: %w", path, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := r.loadModuleDir(filepath.Join(path, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) loadModuleDir(dir string) error {
	manifestPath := filepath.Join(dir, manifestFileName)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", manifestPath, err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parsing %s: %w", manifestPath, err)
	}
	if !m.DexitModule {
		return nil
	}

	entry := m.Entry
	if entry == "" {
		entry = filepath.Base(dir) + ".so"
	}

	pl, err := plugin.Open(filepath.Join(dir, entry))
	if err != nil {
		return fmt.Errorf("loading module plugin %s: %w", dir, err)
	}

	sym, err := pl.Lookup(ModuleSymbol)
	if err != nil {
		return fmt.Errorf("module plugin %s missing %s symbol: %w", dir, ModuleSymbol, err)
	}

	constructor, ok := sym.(func() *dexit.Module)
	if !ok {
		return fmt.Errorf("module plugin %s: %s has the wrong signature", dir, ModuleSymbol)
	}

	return r.Register(constructor())
}
