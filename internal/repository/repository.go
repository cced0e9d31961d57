package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"dexit/internal/registry"
	"dexit/internal/schema"
	"dexit/pkg/dexit"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// node is the raw, pre-inheritance tree the Repository builds while loading
// documents. A node with a nil claimed is a placeholder: an intermediate
// namespace segment implied by some descendant's dotted name, but never
// itself the target of a loaded document.
type node struct {
	id       string
	path     []string
	claimed  *dexit.TestSet
	tests    []rawTest
	children map[string]*node
}

// rawTest is a test as validated, before tag/skip inheritance is resolved
// against its owning node.
type rawTest struct {
	name        string
	description string
	tags        []string
	defaults    map[string]interface{}
	params      map[string]interface{}
	skip        bool
	tasks       []dexit.Task
}

func (n *node) child(segment string, path []string) *node {
	if n.children == nil {
		n.children = make(map[string]*node)
	}
	c, ok := n.children[segment]
	if !ok {
		c = &node{id: "$." + strings.Join(path, "."), path: append([]string{}, path...)}
		n.children[segment] = c
	}
	return c
}

// Repository validates documents against the commands a Registry has
// registered and resolves them into a namespace tree.
type Repository struct {
	modules        *registry.Registry
	documentSchema *jsonschema.Schema
	root           *node
}

// New compiles the document schema for the modules currently registered in
// modules. The schema is fixed at construction time; registering further
// modules afterward has no effect on documents already validated against
// this Repository.
func New(modules *registry.Registry) (*Repository, error) {
	composed := schema.Compose(modules.GetAllModules())

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schema.DocumentSchemaID, composed); err != nil {
		return nil, fmt.Errorf("repository: compiling document schema: %w", err)
	}
	documentSchema, err := compiler.Compile(schema.DocumentSchemaID)
	if err != nil {
		return nil, fmt.Errorf("repository: compiling document schema: %w", err)
	}

	return &Repository{
		modules:        modules,
		documentSchema: documentSchema,
		root:           &node{id: "$"},
	}, nil
}

// LoadDocuments validates and places every document into the namespace
// tree. Validation errors are always returned for reporting; err is
// non-nil only when ignoreInvalid is false and at least one error
// occurred, in which case root is nil and nothing was built. When
// ignoreInvalid is true, documents that failed validation are simply
// absent from the built tree and every other document is still placed.
func (r *Repository) LoadDocuments(docs []dexit.TestDocument, ignoreInvalid bool) (root *dexit.TestSetEntry, errs []dexit.ValidationError, err error) {
	for _, doc := range docs {
		errs = append(errs, r.loadTestSet(doc)...)
	}

	if !ignoreInvalid && len(errs) > 0 {
		return nil, errs, &dexit.ValidationErrorCollection{Errors: errs}
	}

	return r.build(), errs, nil
}

// loadTestSet validates one document and, if every check passes, claims
// its place in the namespace tree.
func (r *Repository) loadTestSet(doc dexit.TestDocument) []dexit.ValidationError {
	generic, err := toGeneric(doc.Set)
	if err != nil {
		return []dexit.ValidationError{{Path: doc.Source, Message: fmt.Sprintf("encoding document: %v", err)}}
	}
	if err := r.documentSchema.Validate(generic); err != nil {
		return []dexit.ValidationError{{Path: doc.Source, Message: "document does not match the test schema", SchemaErrors: []string{err.Error()}}}
	}

	segments := strings.Split(doc.Set.Name, ".")
	target := r.root
	path := make([]string, 0, len(segments))
	for _, segment := range segments {
		path = append(path, segment)
		target = target.child(segment, path)
	}

	if target.claimed != nil {
		return []dexit.ValidationError{{ID: target.id, Path: doc.Source, Message: fmt.Sprintf("duplicate test set name %q", doc.Set.Name)}}
	}

	var errs []dexit.ValidationError
	errs = append(errs, r.validateTaskList(doc.Set.BeforeAll, target.id+".beforeAll", doc.Source)...)
	errs = append(errs, r.validateTaskList(doc.Set.AfterAll, target.id+".afterAll", doc.Source)...)
	errs = append(errs, r.validateTaskList(doc.Set.BeforeEach, target.id+".beforeEach", doc.Source)...)
	errs = append(errs, r.validateTaskList(doc.Set.AfterEach, target.id+".afterEach", doc.Source)...)

	tests := make([]rawTest, 0, len(doc.Set.Tests))
	for i, test := range doc.Set.Tests {
		testID := fmt.Sprintf("%s.tests[%d]", target.id, i)
		errs = append(errs, r.validateTaskList(test.Tasks, testID+".tasks", doc.Source)...)
		tests = append(tests, rawTest{
			name:        test.Name,
			description: test.Description,
			tags:        test.Tags,
			defaults:    test.Defaults,
			params:      test.Params,
			skip:        test.Skip,
			tasks:       test.Tasks,
		})
	}

	if len(errs) > 0 {
		return errs
	}

	set := doc.Set
	target.claimed = &set
	target.tests = tests
	return nil
}

// validateTaskList checks that every task's `do` resolves to a registered
// command, that its args validate against that command's compiled args
// schema (and its expect, when present, against the compiled expect
// schema), and that any runBeforeAsync target names a task in the same
// list. A command's own ValidateArgs/ValidateExpect hooks are not invoked
// here: they run against the interpolated runArgs/resolvedExpect at
// Runner time instead, since at load time a task's args/expect may still
// contain unresolved ${...} tokens with no RunContext yet to resolve them
// against.
func (r *Repository) validateTaskList(tasks []dexit.Task, id, source string) []dexit.ValidationError {
	var errs []dexit.ValidationError

	names := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if t.ID != "" {
			names[t.ID] = true
		}
	}

	for i, t := range tasks {
		taskID := fmt.Sprintf("%s[%d]", id, i)

		_, ok := r.modules.GetCommand(t.Do)
		if !ok {
			errs = append(errs, dexit.ValidationError{ID: taskID, Path: source, Message: fmt.Sprintf("unresolved command %q", t.Do)})
			continue
		}

		if err := r.modules.ValidateArgs(t.Do, t.Args); err != nil {
			errs = append(errs, dexit.ValidationError{ID: taskID, Path: source, Message: "args failed schema validation", SchemaErrors: []string{err.Error()}})
		}

		if len(t.Expect) > 0 {
			if err := r.modules.ValidateExpect(t.Do, t.Expect); err != nil {
				errs = append(errs, dexit.ValidationError{ID: taskID, Path: source, Message: "expect failed schema validation", SchemaErrors: []string{err.Error()}})
			}
		}

		if t.RunBeforeAsync != "" && !names[t.RunBeforeAsync] {
			errs = append(errs, dexit.ValidationError{ID: taskID, Path: source, Message: fmt.Sprintf("runBeforeAsync target %q not found in this task list", t.RunBeforeAsync)})
		}
	}

	return errs
}

// build recursively propagates inheritance top-down from the synthetic
// root over every claimed node.
func (r *Repository) build() *dexit.TestSetEntry {
	root := &dexit.TestSetEntry{ID: "$", Children: map[string]*dexit.TestSetEntry{}}
	root.TestCount = buildChildren(r.root, root)
	return root
}

func buildChildren(n *node, parent *dexit.TestSetEntry) int {
	total := 0
	for segment, child := range n.children {
		entry := buildNode(child, parent, segment)
		parent.Children[segment] = entry
		total += entry.TestCount
	}
	return total
}

// buildNode resolves one node against its already-resolved parent. A node
// with no claimed TestSet is a pure namespace placeholder: it passes its
// parent's inherited state through unchanged so that any claimed
// descendants still inherit correctly.
func buildNode(n *node, parent *dexit.TestSetEntry, name string) *dexit.TestSetEntry {
	entry := &dexit.TestSetEntry{
		ID:       n.id,
		Name:     name,
		Path:     append([]string{}, n.path...),
		Children: map[string]*dexit.TestSetEntry{},
	}

	if n.claimed == nil {
		entry.Tags = parent.Tags
		entry.Defaults = parent.Defaults
		entry.Params = parent.Params
		entry.BeforeEachTasks = parent.BeforeEachTasks
		entry.AfterEachTasks = parent.AfterEachTasks
		entry.Skip = parent.Skip
		entry.TestCount = buildChildren(n, entry)
		return entry
	}

	set := n.claimed
	entry.Description = set.Description
	entry.Tags = append(append([]string{}, parent.Tags...), set.Tags...)
	entry.Defaults = set.Defaults
	entry.Params = set.Params
	entry.BeforeAllTasks = set.BeforeAll
	entry.AfterAllTasks = set.AfterAll
	entry.BeforeEachTasks = append(append([]dexit.Task{}, parent.BeforeEachTasks...), set.BeforeEach...)
	entry.AfterEachTasks = append(append([]dexit.Task{}, parent.AfterEachTasks...), set.AfterEach...)
	entry.ExecutionOrder = set.ExecutionOrder
	entry.Skip = parent.Skip || set.Skip

	entry.Tests = make([]*dexit.TestEntry, 0, len(n.tests))
	for _, test := range n.tests {
		entry.Tests = append(entry.Tests, &dexit.TestEntry{
			Name:        test.name,
			Description: test.description,
			Tags:        append(append([]string{}, entry.Tags...), test.tags...),
			Defaults:    test.defaults,
			Params:      test.params,
			Skip:        entry.Skip || test.skip,
			Tasks:       test.tasks,
		})
	}

	entry.TestCount = len(entry.Tests) + buildChildren(n, entry)
	return entry
}

// GetTests returns root's direct children: the top-level test sets.
func GetTests(root *dexit.TestSetEntry) map[string]*dexit.TestSetEntry {
	return root.Children
}

// toGeneric round-trips v through JSON so it can be validated against a
// compiled JSON Schema, which expects plain map[string]interface{}/
// []interface{}/scalar values rather than tagged Go structs.
func toGeneric(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
