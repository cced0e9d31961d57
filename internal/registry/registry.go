package registry

import (
	"fmt"
	"strings"
	"sync"

	"dexit/pkg/dexit"
	"dexit/pkg/logging"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Registry holds registered modules, guarded by a RWMutex over an
// in-memory map.
type Registry struct {
	mu               sync.RWMutex
	modules          map[string]*dexit.Module
	argsValidators   map[string]*jsonschema.Schema
	expectValidators map[string]*jsonschema.Schema
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		modules:          make(map[string]*dexit.Module),
		argsValidators:   make(map[string]*jsonschema.Schema),
		expectValidators: make(map[string]*jsonschema.Schema),
	}
}

// Register adds a module, failing if its name is already taken, if any
// command name carries the reserved "_" prefix, or if a command's schema
// fails to compile.
func (r *Registry) Register(m *dexit.Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[m.Name]; exists {
		return fmt.Errorf("module %q is already registered", m.Name)
	}

	compiledArgs := make(map[string]*jsonschema.Schema, len(m.Commands))
	compiledExpect := make(map[string]*jsonschema.Schema, len(m.Commands))

	for cmdName, cmd := range m.Commands {
		if strings.HasPrefix(cmdName, "_") {
			return fmt.Errorf("module %q: command name %q uses the reserved \"_\" prefix", m.Name, cmdName)
		}

		id := m.Name + "." + cmdName
		if cmd.ArgsSchema != nil {
			schema, err := compileSchema(id+"/args", cmd.ArgsSchema)
			if err != nil {
				return fmt.Errorf("module %q: compiling args schema for %q: %w", m.Name, cmdName, err)
			}
			compiledArgs[id] = schema
		}
		if cmd.ExpectSchema != nil {
			schema, err := compileSchema(id+"/expect", cmd.ExpectSchema)
			if err != nil {
				return fmt.Errorf("module %q: compiling expect schema for %q: %w", m.Name, cmdName, err)
			}
			compiledExpect[id] = schema
		}
	}

	r.modules[m.Name] = m
	for id, schema := range compiledArgs {
		r.argsValidators[id] = schema
	}
	for id, schema := range compiledExpect {
		r.expectValidators[id] = schema
	}

	logging.Info("Registry", "registered module %q with %d commands", m.Name, len(m.Commands))
	return nil
}

func compileSchema(id string, schema map[string]interface{}) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(id, schema); err != nil {
		return nil, err
	}
	return compiler.Compile(id)
}

// ParseCommand splits an identifier at its first '.' into module and
// command name.
func ParseCommand(id string) (module, command string, ok bool) {
	idx := strings.Index(id, ".")
	if idx < 0 {
		return "", "", false
	}
	return id[:idx], id[idx+1:], true
}

// GetCommand resolves a `module.command` identifier to its Command.
func (r *Registry) GetCommand(id string) (*dexit.Command, bool) {
	moduleName, cmdName, ok := ParseCommand(id)
	if !ok {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	module, ok := r.modules[moduleName]
	if !ok {
		return nil, false
	}
	cmd, ok := module.Commands[cmdName]
	return cmd, ok
}

// GetModule returns a registered module by name.
func (r *Registry) GetModule(name string) (*dexit.Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

// GetAllModules returns every registered module, for schema composition.
func (r *Registry) GetAllModules() []*dexit.Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*dexit.Module, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m)
	}
	return out
}

// ValidateArgs validates args against the compiled args schema for id, if
// one was registered. A command with no ArgsSchema always passes.
func (r *Registry) ValidateArgs(id string, args map[string]interface{}) error {
	return r.validate(r.argsValidators, id, args)
}

// ValidateExpect validates expectArgs against the compiled expect schema
// for id, if one was registered.
func (r *Registry) ValidateExpect(id string, expectArgs map[string]interface{}) error {
	return r.validate(r.expectValidators, id, expectArgs)
}

func (r *Registry) validate(validators map[string]*jsonschema.Schema, id string, value map[string]interface{}) error {
	r.mu.RLock()
	schema, ok := validators[id]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return schema.Validate(value)
}
